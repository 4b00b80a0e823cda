package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/todoapp/todos-api/internal/core/domain"
	"github.com/todoapp/todos-api/internal/core/ports"
)

// IdempotencyStore abstracts the Idempotency-Key cache (Redis).
type IdempotencyStore interface {
	Lookup(ctx context.Context, ownerID, key string) (string, bool, error)
	Remember(ctx context.Context, ownerID, key, todoID string) (bool, error)
}

type todoService struct {
	repo     ports.TodoRepository
	idem     IdempotencyStore
	activity ports.ActivityRecorder
	log      zerolog.Logger
	now      func() time.Time
}

// NewTodoService returns a TodoService implementation. idem and activity may
// be nil, which disables idempotent creates and the audit trail respectively.
func NewTodoService(
	repo ports.TodoRepository,
	idem IdempotencyStore,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) ports.TodoService {
	return &todoService{
		repo:     repo,
		idem:     idem,
		activity: activity,
		log:      log,
		now:      time.Now,
	}
}

func (s *todoService) List(ctx context.Context, ownerID string) ([]*domain.Todo, error) {
	todos, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	if todos == nil {
		todos = []*domain.Todo{}
	}
	return todos, nil
}

// Create stores a new todo owned by the caller. A client supplied uid is
// ignored. With an idempotency key, a repeated request returns the todo the
// first one created.
func (s *todoService) Create(ctx context.Context, in ports.CreateTodoInput) (*domain.Todo, error) {
	if existing := s.replay(ctx, in.OwnerID, in.IdempotencyKey); existing != nil {
		return existing, nil
	}

	if in.ClaimedUID != "" && in.ClaimedUID != in.OwnerID {
		s.log.Warn().
			Str("user_id", in.OwnerID).
			Str("claimed_uid", in.ClaimedUID).
			Msg("client uid does not match caller, overriding")
	}

	date := s.now().UTC()
	if in.Date != nil {
		date = in.Date.UTC()
	}

	todo, err := s.repo.Create(ctx, &domain.Todo{
		Name:       in.Name,
		Author:     in.Author,
		UID:        in.OwnerID,
		IsComplete: in.IsComplete,
		Date:       date,
	})
	if err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}

	if winner := s.settle(ctx, in, todo); winner != nil {
		return winner, nil
	}

	s.record(todo, domain.ActionCreated)
	s.log.Info().Str("todo_id", todo.ID).Str("user_id", in.OwnerID).Msg("todo created")
	return todo, nil
}

func (s *todoService) Update(ctx context.Context, in ports.UpdateTodoInput) (*domain.Todo, error) {
	if err := s.authorize(ctx, in.OwnerID, in.ID); err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}
	todo, err := s.repo.UpdateOwned(ctx, in.ID, in.OwnerID, in.Changes)
	if err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}
	s.record(todo, domain.ActionUpdated)
	return todo, nil
}

func (s *todoService) Toggle(ctx context.Context, ownerID, id string) (*domain.Todo, error) {
	if err := s.authorize(ctx, ownerID, id); err != nil {
		return nil, fmt.Errorf("toggle todo: %w", err)
	}
	todo, err := s.repo.ToggleOwned(ctx, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("toggle todo: %w", err)
	}
	s.record(todo, domain.ActionToggled)
	return todo, nil
}

func (s *todoService) Delete(ctx context.Context, ownerID, id string) (*domain.Todo, error) {
	if err := s.authorize(ctx, ownerID, id); err != nil {
		return nil, fmt.Errorf("delete todo: %w", err)
	}
	todo, err := s.repo.DeleteOwned(ctx, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("delete todo: %w", err)
	}
	s.record(todo, domain.ActionDeleted)
	s.log.Info().Str("todo_id", todo.ID).Str("user_id", ownerID).Msg("todo deleted")
	return todo, nil
}

// authorize tells a missing todo (ErrTodoNotFound) apart from someone else's
// (ErrForbidden). The write that follows is still conditional on the owner.
func (s *todoService) authorize(ctx context.Context, ownerID, id string) error {
	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !todo.OwnedBy(ownerID) {
		s.log.Warn().Str("todo_id", id).Str("user_id", ownerID).Msg("ownership check failed")
		return domain.ErrForbidden
	}
	return nil
}

// replay returns the todo an earlier request with the same key created, or nil.
// Cache failures fall through to a normal create.
func (s *todoService) replay(ctx context.Context, ownerID, key string) *domain.Todo {
	if key == "" || s.idem == nil {
		return nil
	}

	id, found, err := s.idem.Lookup(ctx, ownerID, key)
	if err != nil {
		s.log.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed, creating anyway")
		return nil
	}
	if !found {
		return nil
	}

	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrTodoNotFound) {
			s.log.Warn().Err(err).Str("todo_id", id).Msg("idempotent replay lookup failed")
		}
		return nil
	}
	if !todo.OwnedBy(ownerID) {
		return nil
	}

	s.log.Info().Str("idempotency_key", key).Str("todo_id", id).Msg("idempotent replay")
	return todo
}

// settle claims the idempotency key for a freshly created todo. When a
// concurrent request with the same key claimed it first, the duplicate is
// removed and the winner's todo is returned instead.
func (s *todoService) settle(ctx context.Context, in ports.CreateTodoInput, todo *domain.Todo) *domain.Todo {
	if in.IdempotencyKey == "" || s.idem == nil {
		return nil
	}

	stored, err := s.idem.Remember(ctx, in.OwnerID, in.IdempotencyKey, todo.ID)
	if err != nil {
		s.log.Warn().Err(err).Str("todo_id", todo.ID).Msg("failed to remember idempotency key")
		return nil
	}
	if stored {
		return nil
	}

	winner := s.replay(ctx, in.OwnerID, in.IdempotencyKey)
	if winner == nil || winner.ID == todo.ID {
		return nil
	}

	if _, err := s.repo.DeleteOwned(ctx, todo.ID, in.OwnerID); err != nil {
		s.log.Warn().Err(err).Str("todo_id", todo.ID).Msg("failed to remove duplicate todo")
	}
	s.log.Info().
		Str("idempotency_key", in.IdempotencyKey).
		Str("todo_id", winner.ID).
		Str("duplicate_id", todo.ID).
		Msg("idempotency key claimed by a concurrent request")
	return winner
}

func (s *todoService) record(todo *domain.Todo, action domain.ActivityAction) {
	if s.activity == nil {
		return
	}
	s.activity.Enqueue(ports.ActivityInput{
		TodoID:     todo.ID,
		OwnerID:    todo.UID,
		Action:     string(action),
		IsComplete: todo.IsComplete,
		At:         s.now().UTC(),
	})
}
