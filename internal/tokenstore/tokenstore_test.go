package tokenstore

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catalog-admin/internal/repository"

	"github.com/gorilla/securecookie"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOpts = CookieOptions{Name: "token", TTL: time.Hour, HashKey: []byte("test-hash-key-0123456789abcdef!!")}

// carry replays the cookies set on rec into a fresh request
func carry(rec *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge >= 0 {
			r.AddCookie(c)
		}
	}
	return r
}

// signedCookie builds a cookie the stores accept, holding key=value
func signedCookie(t *testing.T, key, value string) *http.Cookie {
	t.Helper()

	encoded, err := securecookie.EncodeMulti(testOpts.Name, map[any]any{key: value}, securecookie.New(testOpts.HashKey, nil))
	require.NoError(t, err)
	return &http.Cookie{Name: testOpts.Name, Value: encoded}
}

func stores() map[string]Store {
	return map[string]Store{
		"cookie":  NewCookieStore(testOpts),
		"backend": NewBackendStore(testOpts, repository.NewMemorySessionRepository()),
	}
}

func TestProperty_StoredTokenIsReturnedVerbatim(t *testing.T) {
	for name, store := range stores() {
		t.Run(name, func(t *testing.T) {
			properties := gopter.NewProperties(nil)

			properties.Property("Get returns exactly the token passed to Set", prop.ForAll(
				func(token string) bool {
					rec := httptest.NewRecorder()
					if err := store.Set(rec, httptest.NewRequest(http.MethodPost, "/login", nil), token); err != nil {
						t.Logf("FAIL: Set(%q): %v", token, err)
						return false
					}

					got, ok, err := store.Get(carry(rec))
					return err == nil && ok && got == token
				},
				gen.AnyString().SuchThat(func(s string) bool { return s != "" }),
			))

			properties.TestingRun(t, gopter.ConsoleReporter(false))
		})
	}
}

func TestStore_TokensWithCookieUnsafeBytes(t *testing.T) {
	tokens := []string{`abc"def`, "a;b", `back\slash`, "with space", "comma,separated", "ünïcode"}

	for name, store := range stores() {
		t.Run(name, func(t *testing.T) {
			for _, token := range tokens {
				rec := httptest.NewRecorder()
				require.NoError(t, store.Set(rec, httptest.NewRequest(http.MethodPost, "/login", nil), token))

				got, ok, err := store.Get(carry(rec))
				require.NoError(t, err)
				assert.True(t, ok)
				assert.Equal(t, token, got)
			}
		})
	}
}

func TestStore_EmptyRequestHasNoToken(t *testing.T) {
	for name, store := range stores() {
		t.Run(name, func(t *testing.T) {
			_, ok, err := store.Get(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestStore_TamperedCookieHasNoToken(t *testing.T) {
	for name, store := range stores() {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: "token", Value: "T1"})

			_, ok, err := store.Get(req)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestStore_OtherKeyCannotReadCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, NewCookieStore(testOpts).Set(rec, httptest.NewRequest(http.MethodPost, "/login", nil), "T1"))

	other := testOpts
	other.HashKey = []byte("another-hash-key-0123456789abcd!")
	_, ok, err := NewCookieStore(other).Get(carry(rec))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_ClearExpiresCookie(t *testing.T) {
	for name, store := range stores() {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			require.NoError(t, store.Set(rec, httptest.NewRequest(http.MethodPost, "/login", nil), "T1"))
			req := carry(rec)

			clearRec := httptest.NewRecorder()
			require.NoError(t, store.Clear(clearRec, req))

			cookies := clearRec.Result().Cookies()
			require.Len(t, cookies, 1)
			assert.Equal(t, "token", cookies[0].Name)
			assert.Less(t, cookies[0].MaxAge, 0)
		})
	}
}

func TestCookieStore_CookieAttributes(t *testing.T) {
	opts := testOpts
	opts.TTL = 720 * time.Hour
	opts.Secure = true
	store := NewCookieStore(opts)

	rec := httptest.NewRecorder()
	require.NoError(t, store.Set(rec, httptest.NewRequest(http.MethodPost, "/login", nil), "T1"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.NotEqual(t, "T1", c.Value)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, int((720 * time.Hour).Seconds()), c.MaxAge)
}

func TestCookieStore_GeneratesKeyWhenUnset(t *testing.T) {
	store := NewCookieStore(CookieOptions{Name: "token", TTL: time.Hour})

	rec := httptest.NewRecorder()
	require.NoError(t, store.Set(rec, httptest.NewRequest(http.MethodPost, "/login", nil), "T1"))

	got, ok, err := store.Get(carry(rec))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "T1", got)
}

func TestBackendStore_CookieHoldsSessionIDNotToken(t *testing.T) {
	sessions := repository.NewMemorySessionRepository()
	store := NewBackendStore(testOpts, sessions)

	rec := httptest.NewRecorder()
	require.NoError(t, store.Set(rec, httptest.NewRequest(http.MethodPost, "/login", nil), "T1"))

	sid, ok := store.codec.load(carry(rec), sessionIDKey)
	require.True(t, ok)
	assert.NotEqual(t, "T1", sid)

	token, err := sessions.Find(context.Background(), sid)
	require.NoError(t, err)
	assert.Equal(t, "T1", token)

	require.NoError(t, store.Clear(httptest.NewRecorder(), carry(rec)))
	_, err = sessions.Find(context.Background(), sid)
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestBackendStore_UnknownSessionIsUnauthenticated(t *testing.T) {
	store := NewBackendStore(testOpts, repository.NewMemorySessionRepository())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(signedCookie(t, sessionIDKey, "stale"))

	_, ok, err := store.Get(req)
	require.NoError(t, err)
	assert.False(t, ok)
}

type failingSessions struct {
	repository.SessionRepository
}

func (failingSessions) Find(ctx context.Context, sid string) (string, error) {
	return "", errors.New("connection refused")
}

func TestBackendStore_BackendFailureIsError(t *testing.T) {
	store := NewBackendStore(testOpts, failingSessions{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(signedCookie(t, sessionIDKey, "sid"))

	_, ok, err := store.Get(req)
	assert.Error(t, err)
	assert.False(t, ok)
}
