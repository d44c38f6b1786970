// Package tokenstore keeps the operator's bearer token between browser
// requests. It never inspects the token.
package tokenstore

import (
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

// Session value keys
const (
	tokenKey     = "token"
	sessionIDKey = "sid"
)

// Store persists one bearer token per browser
type Store interface {
	// Get returns the stored token; ok is false when none is present
	Get(r *http.Request) (token string, ok bool, err error)
	Set(w http.ResponseWriter, r *http.Request, token string) error
	Clear(w http.ResponseWriter, r *http.Request) error
}

// CookieOptions shape the cookie every store writes
type CookieOptions struct {
	Name   string
	TTL    time.Duration
	Secure bool
	// HashKey signs the cookie. A random key is generated when empty, so
	// cookies then only stay valid for the life of the process.
	HashKey []byte
}

// cookieCodec reads and writes one signed session cookie
type cookieCodec struct {
	name  string
	store *sessions.CookieStore
}

func newCookieCodec(opts CookieOptions) *cookieCodec {
	key := opts.HashKey
	if len(key) == 0 {
		key = securecookie.GenerateRandomKey(32)
	}

	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(int(opts.TTL.Seconds()))

	return &cookieCodec{name: opts.Name, store: store}
}

// load returns the string stored under key. A missing, tampered or expired
// cookie reads as absent.
func (c *cookieCodec) load(r *http.Request, key string) (string, bool) {
	session, err := c.store.Get(r, c.name)
	if err != nil {
		return "", false
	}

	v, ok := session.Values[key].(string)
	return v, ok && v != ""
}

// save replaces the cookie's contents with key=value
func (c *cookieCodec) save(w http.ResponseWriter, r *http.Request, key, value string) error {
	session := sessions.NewSession(c.store, c.name)
	opts := *c.store.Options
	session.Options = &opts
	session.Values[key] = value

	return c.store.Save(r, w, session)
}

func (c *cookieCodec) expire(w http.ResponseWriter, r *http.Request) error {
	session := sessions.NewSession(c.store, c.name)
	opts := *c.store.Options
	opts.MaxAge = -1
	session.Options = &opts

	return c.store.Save(r, w, session)
}
