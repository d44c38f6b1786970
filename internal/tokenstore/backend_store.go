package tokenstore

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"catalog-admin/internal/repository"

	"github.com/google/uuid"
)

// BackendStore keeps the token server-side. The signed cookie only carries a
// random session id.
type BackendStore struct {
	codec    *cookieCodec
	ttl      time.Duration
	sessions repository.SessionRepository
}

func NewBackendStore(opts CookieOptions, sessions repository.SessionRepository) *BackendStore {
	return &BackendStore{codec: newCookieCodec(opts), ttl: opts.TTL, sessions: sessions}
}

func (s *BackendStore) Get(r *http.Request) (string, bool, error) {
	sid, ok := s.codec.load(r, sessionIDKey)
	if !ok {
		return "", false, nil
	}

	token, err := s.sessions.Find(r.Context(), sid)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to load session: %w", err)
	}
	return token, token != "", nil
}

// Set stores token under a fresh session id, replacing any previous session
func (s *BackendStore) Set(w http.ResponseWriter, r *http.Request, token string) error {
	if old, ok := s.codec.load(r, sessionIDKey); ok {
		_ = s.sessions.Delete(r.Context(), old)
	}

	sid := uuid.NewString()
	if err := s.sessions.Save(r.Context(), sid, token, s.ttl); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	return s.codec.save(w, r, sessionIDKey, sid)
}

func (s *BackendStore) Clear(w http.ResponseWriter, r *http.Request) error {
	if err := s.codec.expire(w, r); err != nil {
		return err
	}

	sid, ok := s.codec.load(r, sessionIDKey)
	if !ok {
		return nil
	}
	if err := s.sessions.Delete(r.Context(), sid); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
