package ports

import "github.com/todoapp/todos-api/internal/core/domain"

// PasswordHasher produces and checks salted one-way password hashes.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// TokenIssuer signs identity tokens.
type TokenIssuer interface {
	Issue(identity domain.Identity) (string, error)
}

// TokenVerifier checks identity tokens. Failures wrap one of the
// domain.ErrToken* errors.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}
