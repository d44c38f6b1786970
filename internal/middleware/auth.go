package middleware

import (
	"net/http"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/service"
	"catalog-admin/internal/tokenstore"

	"go.uber.org/zap"
)

const (
	LoginPath   = "/login"
	CatalogPath = "/products"
)

// LoadSession reads the Token Store once per request and puts the session
// into the request context. The token itself is never validated.
func LoadSession(store tokenstore.Store, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok, err := store.Get(r)
			if err != nil {
				logger.Warn("Failed to read token store", zap.Error(err))
			}

			session := domain.Session{}
			if ok {
				session = domain.NewSession(token)
			}

			next.ServeHTTP(w, r.WithContext(domain.WithSession(r.Context(), session)))
		})
	}
}

// RequireSession sends unauthenticated requests to the login page before any
// protected content is rendered. The redirect carries no message.
func RequireSession(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := service.RequireSession(r.Context()); err != nil {
				logger.Debug("Redirecting to login",
					zap.String("path", r.URL.Path),
					zap.Error(err),
				)
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RedirectIfAuthenticated sends operators who already hold a token from the
// login page to the catalog
func RedirectIfAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := service.RequireSession(r.Context()); err == nil {
			http.Redirect(w, r, CatalogPath, http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}
