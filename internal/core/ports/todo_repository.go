package ports

import (
	"context"

	"github.com/todoapp/todos-api/internal/core/domain"
)

// TodoRepository defines persistence for todos.
//
// The *Owned methods are conditional writes: they only match a document whose
// id AND uid both match, atomically, and return domain.ErrTodoNotFound otherwise.
type TodoRepository interface {
	// ListByOwner returns the owner's items ordered by date descending.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Todo, error)
	FindByID(ctx context.Context, id string) (*domain.Todo, error)
	Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	UpdateOwned(ctx context.Context, id, ownerID string, changes domain.TodoChanges) (*domain.Todo, error)
	ToggleOwned(ctx context.Context, id, ownerID string) (*domain.Todo, error)
	DeleteOwned(ctx context.Context, id, ownerID string) (*domain.Todo, error)
}
