package domain

import "errors"

// Credential errors.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Authentication errors. Every token failure wraps one of the ErrToken* values.
var (
	ErrUnauthenticated       = errors.New("no token provided")
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenInvalid          = errors.New("token invalid")
)

// Resource errors.
var (
	ErrTodoNotFound = errors.New("todo not found")
	ErrForbidden    = errors.New("access forbidden")
)

// IsTokenError reports whether err is an identity-token verification failure.
func IsTokenError(err error) bool {
	return errors.Is(err, ErrTokenMalformed) ||
		errors.Is(err, ErrTokenSignatureInvalid) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrTokenInvalid)
}
