package memory

import (
	"context"
	"sync"

	"github.com/todoapp/todos-api/internal/core/domain"
)

// ActivityRepository implements ports.ActivityRepository.
type ActivityRepository struct {
	mu      sync.Mutex
	entries []domain.TodoActivity
}

func NewActivityRepository() *ActivityRepository {
	return &ActivityRepository{}
}

func (r *ActivityRepository) Insert(_ context.Context, activity *domain.TodoActivity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *activity)
	return nil
}

// ForTodo returns the recorded entries for todoID in insertion order.
func (r *ActivityRepository) ForTodo(todoID string) []domain.TodoActivity {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.TodoActivity
	for _, e := range r.entries {
		if e.TodoID == todoID {
			out = append(out, e)
		}
	}
	return out
}
