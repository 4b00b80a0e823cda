package domain

import "time"

// User models a registered account. Users are never mutated or deleted.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the authenticated caller, as carried inside an identity token.
type Identity struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// IdentityOf returns the token identity for u.
func IdentityOf(u *User) Identity {
	return Identity{UserID: u.ID, Name: u.Name, Email: u.Email}
}
