package service

import (
	"context"
	"fmt"
	"strings"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/form"
	"catalog-admin/internal/repository"

	"go.uber.org/zap"
)

// UserService manages the mock users page. Nothing here reaches the remote API.
type UserService interface {
	List(ctx context.Context, term string) ([]domain.User, error)
	Create(ctx context.Context, in form.UserInput) (*domain.User, error)
	Update(ctx context.Context, id int, in form.UserInput) (*domain.User, error)
	Delete(ctx context.Context, id int) error
}

type userService struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, logger *zap.Logger) UserService {
	return &userService{userRepo: userRepo, logger: logger}
}

// List returns users whose name or email contains term, ignoring case
func (s *userService) List(ctx context.Context, term string) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	if term == "" {
		return users, nil
	}

	needle := strings.ToLower(term)
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Name), needle) || strings.Contains(strings.ToLower(u.Email), needle) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *userService) Create(ctx context.Context, in form.UserInput) (*domain.User, error) {
	user := in.User(0)
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Debug("Mock user created", zap.Int("id", user.ID))
	return user, nil
}

func (s *userService) Update(ctx context.Context, id int, in form.UserInput) (*domain.User, error) {
	user := in.User(id)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id int) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Debug("Mock user deleted", zap.Int("id", id))
	return nil
}
