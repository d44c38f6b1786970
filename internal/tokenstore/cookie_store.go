package tokenstore

import (
	"net/http"
)

// CookieStore keeps the token itself in a signed, persistent HttpOnly cookie
type CookieStore struct {
	codec *cookieCodec
}

func NewCookieStore(opts CookieOptions) *CookieStore {
	return &CookieStore{codec: newCookieCodec(opts)}
}

func (s *CookieStore) Get(r *http.Request) (string, bool, error) {
	token, ok := s.codec.load(r, tokenKey)
	return token, ok, nil
}

func (s *CookieStore) Set(w http.ResponseWriter, r *http.Request, token string) error {
	return s.codec.save(w, r, tokenKey, token)
}

func (s *CookieStore) Clear(w http.ResponseWriter, r *http.Request) error {
	return s.codec.expire(w, r)
}
