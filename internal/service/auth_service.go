package service

import (
	"context"
	"fmt"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/repository"

	"go.uber.org/zap"
)

// AuthService exchanges operator credentials for a session
type AuthService interface {
	Login(ctx context.Context, email, password string) (domain.Session, error)
}

type authService struct {
	authRepo repository.AuthRepository
	logger   *zap.Logger
}

func NewAuthService(authRepo repository.AuthRepository, logger *zap.Logger) AuthService {
	return &authService{authRepo: authRepo, logger: logger}
}

// Login makes exactly one call to the auth endpoint. Every failure is
// reported as ErrLoginFailed; the cause is only logged.
func (s *authService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	token, err := s.authRepo.Login(ctx, email, password)
	if err != nil {
		s.logger.Warn("Login failed", zap.String("email", email), zap.Error(err))
		return domain.Session{}, fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}

	session := domain.NewSession(token)
	s.logger.Info("Operator logged in", zap.String("operator", session.Operator))
	return session, nil
}
