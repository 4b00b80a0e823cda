package memory

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/todoapp/todos-api/internal/core/domain"
)

type todoEntry struct {
	todo domain.Todo
	seq  uint64
}

// TodoRepository implements ports.TodoRepository. Each *Owned method checks
// ownership and writes under a single lock, matching the conditional writes of
// the Mongo implementation.
type TodoRepository struct {
	mu    sync.RWMutex
	items map[string]*todoEntry
	seq   uint64
}

func NewTodoRepository() *TodoRepository {
	return &TodoRepository{items: make(map[string]*todoEntry)}
}

// ListByOwner orders by date descending, then by insertion order.
func (r *TodoRepository) ListByOwner(_ context.Context, ownerID string) ([]*domain.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*todoEntry, 0)
	for _, e := range r.items {
		if e.todo.UID == ownerID {
			matched = append(matched, e)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.todo.Date.Equal(b.todo.Date) {
			return a.todo.Date.After(b.todo.Date)
		}
		return a.seq < b.seq
	})

	out := make([]*domain.Todo, len(matched))
	for i, e := range matched {
		clone := e.todo
		out[i] = &clone
	}
	return out, nil
}

func (r *TodoRepository) FindByID(_ context.Context, id string) (*domain.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.items[id]
	if !ok {
		return nil, domain.ErrTodoNotFound
	}
	clone := e.todo
	return &clone, nil
}

func (r *TodoRepository) Create(_ context.Context, todo *domain.Todo) (*domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	stored := *todo
	stored.ID = primitive.NewObjectID().Hex()
	stored.Date = stored.Date.UTC()
	r.items[stored.ID] = &todoEntry{todo: stored, seq: r.seq}

	clone := stored
	return &clone, nil
}

func (r *TodoRepository) UpdateOwned(_ context.Context, id, ownerID string, changes domain.TodoChanges) (*domain.Todo, error) {
	return r.mutateOwned(id, ownerID, func(t *domain.Todo) {
		*t = changes.Apply(*t)
	})
}

func (r *TodoRepository) ToggleOwned(_ context.Context, id, ownerID string) (*domain.Todo, error) {
	return r.mutateOwned(id, ownerID, func(t *domain.Todo) {
		t.IsComplete = !t.IsComplete
	})
}

func (r *TodoRepository) DeleteOwned(_ context.Context, id, ownerID string) (*domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[id]
	if !ok || !e.todo.OwnedBy(ownerID) {
		return nil, domain.ErrTodoNotFound
	}
	delete(r.items, id)

	clone := e.todo
	return &clone, nil
}

func (r *TodoRepository) mutateOwned(id, ownerID string, mutate func(*domain.Todo)) (*domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[id]
	if !ok || !e.todo.OwnedBy(ownerID) {
		return nil, domain.ErrTodoNotFound
	}
	mutate(&e.todo)

	clone := e.todo
	return &clone, nil
}
