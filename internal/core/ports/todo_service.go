package ports

import (
	"context"
	"time"

	"github.com/todoapp/todos-api/internal/core/domain"
)

// CreateTodoInput is the DTO passed from the transport layer to TodoService.Create.
type CreateTodoInput struct {
	OwnerID    string
	Name       string
	Author     string
	IsComplete bool
	Date       *time.Time // nil = now
	// ClaimedUID is the uid sent by the client. It is advisory only.
	ClaimedUID     string
	IdempotencyKey string
}

// UpdateTodoInput is the DTO for a full replace.
type UpdateTodoInput struct {
	OwnerID string
	ID      string
	Changes domain.TodoChanges
}

// TodoService defines the ownership-scoped todo operations. OwnerID always
// comes from the authenticated identity.
type TodoService interface {
	List(ctx context.Context, ownerID string) ([]*domain.Todo, error)
	Create(ctx context.Context, input CreateTodoInput) (*domain.Todo, error)
	Update(ctx context.Context, input UpdateTodoInput) (*domain.Todo, error)
	Toggle(ctx context.Context, ownerID, id string) (*domain.Todo, error)
	Delete(ctx context.Context, ownerID, id string) (*domain.Todo, error)
}
