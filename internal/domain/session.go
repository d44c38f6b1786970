package domain

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

type sessionKey struct{}

// Session is the operator's authorization state for one request. A non-empty
// Token is the only authorization signal: its shape and expiry are never
// checked here.
type Session struct {
	Token string
	// Operator is a display label decoded from JWT-shaped tokens, empty otherwise
	Operator string
}

// NewSession builds a session around an opaque bearer token
func NewSession(token string) Session {
	return Session{Token: token, Operator: operatorFromToken(token)}
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}

// WithSession returns a context carrying s
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext is the single accessor for the request's session
func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}

// operatorFromToken reads identity claims without verifying the signature.
// The result is only ever shown to the operator.
func operatorFromToken(token string) string {
	if token == "" {
		return ""
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}

	for _, key := range []string{"email", "name", "sub"} {
		if v, ok := claims[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
