package ports

import (
	"context"

	"github.com/todoapp/todos-api/internal/core/domain"
)

// UserRepository defines the credential store.
type UserRepository interface {
	// FindByEmail matches email case-insensitively and returns
	// domain.ErrUserNotFound when no account exists.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create persists user and returns it with its store-assigned ID.
	// A concurrent duplicate email yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
