package middleware

import (
	"context"

	"github.com/todoapp/todos-api/internal/core/domain"
)

// IdentityKey is the echo context key under which Auth stores the caller.
const IdentityKey = "identity"

type identityCtxKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, id)
}

// IdentityFrom returns the caller attached by Auth, if any.
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityCtxKey{}).(domain.Identity)
	return id, ok
}
