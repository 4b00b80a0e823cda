package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/todoapp/todos-api/internal/core/domain"
	"github.com/todoapp/todos-api/internal/core/ports"
)

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns an ActivityService that appends to repo.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

func (s *activityService) Process(ctx context.Context, in ports.ActivityInput) error {
	entry := &domain.TodoActivity{
		TodoID:     in.TodoID,
		OwnerID:    in.OwnerID,
		Action:     domain.ActivityAction(in.Action),
		IsComplete: in.IsComplete,
		At:         in.At,
	}
	if err := s.repo.Insert(ctx, entry); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}

	s.log.Debug().
		Str("todo_id", in.TodoID).
		Str("action", in.Action).
		Msg("activity recorded")
	return nil
}
