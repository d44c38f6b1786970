package repository

import (
	"context"
	"errors"
	"slices"
	"sync"

	"catalog-admin/internal/domain"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository holds the mock users shown on the users page
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int) error
}

type userRepository struct {
	mu    sync.RWMutex
	users []domain.User
}

// SeedUsers is the fixed list every process starts from
func SeedUsers() []domain.User {
	return []domain.User{
		{ID: 1, Name: "John Doe", Email: "john@example.com", Role: domain.RoleCustomer, Status: domain.StatusActive},
		{ID: 2, Name: "Jane Smith", Email: "jane@example.com", Role: domain.RoleAdmin, Status: domain.StatusActive},
		{ID: 3, Name: "Bob Johnson", Email: "bob@example.com", Role: domain.RoleCustomer, Status: domain.StatusInactive},
		{ID: 4, Name: "Alice Brown", Email: "alice@example.com", Role: domain.RoleModerator, Status: domain.StatusActive},
		{ID: 5, Name: "Charlie Wilson", Email: "charlie@example.com", Role: domain.RoleCustomer, Status: domain.StatusActive},
	}
}

// NewUserRepository creates an in-memory repository holding users
func NewUserRepository(users []domain.User) UserRepository {
	return &userRepository{users: slices.Clone(users)}
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.users), nil
}

// Create assigns the next id (highest existing id plus one) and appends the user
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := 1
	for _, u := range r.users {
		if u.ID >= next {
			next = u.ID + 1
		}
	}

	user.ID = next
	r.users = append(r.users, *user)
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.IndexFunc(r.users, func(u domain.User) bool { return u.ID == user.ID })
	if i < 0 {
		return ErrUserNotFound
	}
	r.users[i] = *user
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.IndexFunc(r.users, func(u domain.User) bool { return u.ID == id })
	if i < 0 {
		return ErrUserNotFound
	}
	r.users = slices.Delete(r.users, i, i+1)
	return nil
}
