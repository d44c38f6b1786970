package service

import (
	"context"
	"errors"

	"catalog-admin/internal/domain"
)

var (
	ErrAuthRequired = errors.New("authentication required")
	ErrLoginFailed  = errors.New("login failed")
	ErrFetchFailed  = errors.New("failed to fetch catalog data")
	ErrSubmitFailed = errors.New("failed to submit product")
)

// SubmitError is a rejected create or update. Its text is the raw cause so it
// can be shown to the operator as is.
type SubmitError struct {
	Err error
}

func (e *SubmitError) Error() string {
	return e.Err.Error()
}

func (e *SubmitError) Unwrap() []error {
	return []error{ErrSubmitFailed, e.Err}
}

// RequireSession returns the authenticated session carried by ctx, or
// ErrAuthRequired when there is none
func RequireSession(ctx context.Context) (domain.Session, error) {
	session, ok := domain.SessionFromContext(ctx)
	if !ok || !session.Authenticated() {
		return domain.Session{}, ErrAuthRequired
	}
	return session, nil
}
