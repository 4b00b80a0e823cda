package ports

import (
	"context"

	"github.com/todoapp/todos-api/internal/core/domain"
)

// ActivityRepository persists the todo audit trail.
type ActivityRepository interface {
	Insert(ctx context.Context, activity *domain.TodoActivity) error
}
