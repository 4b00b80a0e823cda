package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todoapp/todos-api/internal/core/domain"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := NewUserRepository()

	created, err := r.Create(ctx, &domain.User{Name: "Alice", Email: "Alice@X.com", PasswordHash: "h"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, "Alice@X.com", created.Email, "email is stored as submitted")

	found, err := r.FindByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestUserRepository_DuplicateEmailIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := NewUserRepository()

	_, err := r.Create(ctx, &domain.User{Name: "Alice", Email: "a@x.com"})
	require.NoError(t, err)
	_, err = r.Create(ctx, &domain.User{Name: "Alias", Email: "A@X.COM"})
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestUserRepository_NotFound(t *testing.T) {
	t.Parallel()

	_, err := NewUserRepository().FindByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
