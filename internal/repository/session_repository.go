package repository

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository keeps operator bearer tokens under opaque session ids.
// TTL only bounds how long a record may be stored; tokens are never checked
// for expiry.
type SessionRepository interface {
	Save(ctx context.Context, sessionID, token string, ttl time.Duration) error
	Find(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}

type memorySession struct {
	token     string
	expiresAt time.Time
}

type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
	now      func() time.Time
}

// NewMemorySessionRepository creates a process-local session repository
func NewMemorySessionRepository() SessionRepository {
	return &memorySessionRepository{
		sessions: make(map[string]memorySession),
		now:      time.Now,
	}
}

func (r *memorySessionRepository) Save(ctx context.Context, sessionID, token string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := memorySession{token: token}
	if ttl > 0 {
		s.expiresAt = r.now().Add(ttl)
	}
	r.sessions[sessionID] = s
	return nil
}

func (r *memorySessionRepository) Find(ctx context.Context, sessionID string) (string, error) {
	r.mu.RLock()
	s, ok := r.sessions[sessionID]
	r.mu.RUnlock()

	if !ok {
		return "", ErrSessionNotFound
	}
	if !s.expiresAt.IsZero() && r.now().After(s.expiresAt) {
		_ = r.Delete(ctx, sessionID)
		return "", ErrSessionNotFound
	}
	return s.token, nil
}

func (r *memorySessionRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionID)
	return nil
}
