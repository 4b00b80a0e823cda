package domain

import "time"

// ActivityAction names a mutation recorded in the audit log.
type ActivityAction string

const (
	ActionCreated ActivityAction = "created"
	ActionUpdated ActivityAction = "updated"
	ActionToggled ActivityAction = "toggled"
	ActionDeleted ActivityAction = "deleted"
)

// TodoActivity is an append-only audit entry for a successful mutation.
type TodoActivity struct {
	TodoID     string
	OwnerID    string
	Action     ActivityAction
	IsComplete bool
	At         time.Time
}
