package ports

import (
	"context"
	"time"
)

// ActivityInput describes a mutation that already succeeded.
type ActivityInput struct {
	TodoID     string
	OwnerID    string
	Action     string
	IsComplete bool
	At         time.Time
}

// ActivityService records a single activity entry.
type ActivityService interface {
	Process(ctx context.Context, input ActivityInput) error
}

// ActivityRecorder accepts activity for asynchronous recording.
type ActivityRecorder interface {
	Enqueue(input ActivityInput)
}
