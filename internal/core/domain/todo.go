package domain

import "time"

// Todo is a single to-do item. UID holds the owner's user id.
type Todo struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Author     string    `json:"author,omitempty"`
	UID        string    `json:"uid"`
	IsComplete bool      `json:"isComplete"`
	Date       time.Time `json:"date"`
}

// OwnedBy reports whether userID owns the item.
func (t *Todo) OwnedBy(userID string) bool {
	return userID != "" && t.UID == userID
}

// TodoChanges carries a replacement of a todo's mutable fields. Nil fields
// keep their stored value.
type TodoChanges struct {
	Name       string
	Author     *string
	IsComplete *bool
	Date       *time.Time
}

// Apply returns a copy of t with the changes applied. UID and ID are never touched.
func (c TodoChanges) Apply(t Todo) Todo {
	t.Name = c.Name
	if c.Author != nil {
		t.Author = *c.Author
	}
	if c.IsComplete != nil {
		t.IsComplete = *c.IsComplete
	}
	if c.Date != nil {
		t.Date = c.Date.UTC()
	}
	return t
}
