package form

import (
	"net/url"
	"strings"

	"catalog-admin/internal/domain"
)

// LoginInput is the posted login form. Only presence is checked.
type LoginInput struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
}

func LoginFromValues(values url.Values) LoginInput {
	return LoginInput{
		Email:    strings.TrimSpace(values.Get("email")),
		Password: values.Get("password"),
	}
}

// UserInput is the posted create/edit user form
type UserInput struct {
	Name   string `form:"name" validate:"required"`
	Email  string `form:"email" validate:"required,email"`
	Role   string `form:"role" validate:"required,oneof=Customer Admin Moderator"`
	Status string `form:"status" validate:"required,oneof=Active Inactive"`
}

func UserFromValues(values url.Values) UserInput {
	in := UserInput{
		Name:   strings.TrimSpace(values.Get("name")),
		Email:  strings.TrimSpace(values.Get("email")),
		Role:   values.Get("role"),
		Status: values.Get("status"),
	}
	if in.Role == "" {
		in.Role = string(domain.RoleCustomer)
	}
	if in.Status == "" {
		in.Status = string(domain.StatusActive)
	}
	return in
}

// User builds the record the input describes; the id is assigned by the store
func (in UserInput) User(id int) *domain.User {
	return &domain.User{
		ID:     id,
		Name:   in.Name,
		Email:  in.Email,
		Role:   domain.Role(in.Role),
		Status: domain.Status(in.Status),
	}
}
