package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"catalog-admin/internal/apiclient"
)

// ErrEmptyToken is returned when the login endpoint succeeds without a token
var ErrEmptyToken = errors.New("login response carried no token")

// AuthRepository exchanges operator credentials for a bearer token
type AuthRepository interface {
	Login(ctx context.Context, email, password string) (string, error)
}

type authRepository struct {
	client *apiclient.Client
}

func NewAuthRepository(client *apiclient.Client) AuthRepository {
	return &authRepository{client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (r *authRepository) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	if err := r.client.DoJSON(ctx, http.MethodPost, "auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return "", fmt.Errorf("failed to log in: %w", err)
	}

	if resp.Token == "" {
		return "", ErrEmptyToken
	}
	return resp.Token, nil
}
