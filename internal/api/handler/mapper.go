package handler

import (
	"time"

	"github.com/todoapp/todos-api/internal/core/domain"
	"github.com/todoapp/todos-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req todoRequest, ownerID, idempotencyKey string) ports.CreateTodoInput {
	in := ports.CreateTodoInput{
		OwnerID:        ownerID,
		Name:           req.Name,
		Date:           req.dateValue(),
		IdempotencyKey: idempotencyKey,
	}
	if req.Author != nil {
		in.Author = *req.Author
	}
	if req.IsComplete != nil {
		in.IsComplete = *req.IsComplete
	}
	if req.UID != nil {
		in.ClaimedUID = *req.UID
	}
	return in
}

func toUpdateInput(req todoRequest, ownerID, id string) ports.UpdateTodoInput {
	return ports.UpdateTodoInput{
		OwnerID: ownerID,
		ID:      id,
		Changes: domain.TodoChanges{
			Name:       req.Name,
			Author:     req.Author,
			IsComplete: req.IsComplete,
			Date:       req.dateValue(),
		},
	}
}

func (r todoRequest) dateValue() *time.Time {
	if r.Date == nil {
		return nil
	}
	t := r.Date.Time
	return &t
}
