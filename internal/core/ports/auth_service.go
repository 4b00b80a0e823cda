package ports

import (
	"context"

	"github.com/todoapp/todos-api/internal/core/domain"
)

// SignupInput carries an already validated signup request.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// AuthService establishes identity and hands out tokens.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (string, *domain.User, error)
	Signin(ctx context.Context, email, password string) (string, *domain.User, error)
}
