// Package memory provides process-local implementations of the store ports.
// Data is lost on restart; intended for tests and local development.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/todoapp/todos-api/internal/core/domain"
)

// UserRepository implements ports.UserRepository.
type UserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*domain.User // keyed by lower-cased email
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byEmail: make(map[string]*domain.User)}
}

func emailKey(email string) string {
	return strings.ToLower(email)
}

// FindByEmail matches case-insensitively, like the Mongo collation index.
func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[emailKey(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := emailKey(user.Email)
	if _, exists := r.byEmail[key]; exists {
		return nil, domain.ErrUserExists
	}

	stored := *user
	stored.ID = primitive.NewObjectID().Hex()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	r.byEmail[key] = &stored

	clone := stored
	return &clone, nil
}
