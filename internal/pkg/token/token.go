// Package token issues and verifies signed identity tokens (JWT, HS256).
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/todoapp/todos-api/internal/core/domain"
)

// ErrMissingSecret is returned by NewManager when no signing secret is configured.
var ErrMissingSecret = errors.New("token: signing secret is not configured")

// claims is the JWT payload. Expiry lives in RegisteredClaims and is only set
// when the manager has a TTL.
type claims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Option configures a Manager.
type Option func(*Manager)

// WithTTL makes issued tokens expire after ttl. Zero or negative disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) { m.ttl = ttl }
}

// WithClock overrides the time source used for iat/exp.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// Manager implements ports.TokenIssuer and ports.TokenVerifier.
// It is safe for concurrent use; the secret is read-only after construction.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// NewManager returns a Manager keyed by secret.
func NewManager(secret string, opts ...Option) (*Manager, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	m := &Manager{
		secret: []byte(secret),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(m.now),
	}
	if m.ttl > 0 {
		parserOpts = append(parserOpts, jwt.WithExpirationRequired())
	}
	m.parser = jwt.NewParser(parserOpts...)
	return m, nil
}

// Issue signs a token binding the identity's user id, name and email.
func (m *Manager) Issue(identity domain.Identity) (string, error) {
	if identity.UserID == "" {
		return "", fmt.Errorf("issue token: %w", domain.ErrTokenInvalid)
	}

	now := m.now()
	c := claims{
		UserID: identity.UserID,
		Name:   identity.Name,
		Email:  identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if m.ttl > 0 {
		c.ExpiresAt = jwt.NewNumericDate(now.Add(m.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature (and expiry, when enabled) and returns the
// embedded identity.
func (m *Manager) Verify(tokenString string) (domain.Identity, error) {
	var c claims
	tkn, err := m.parser.ParseWithClaims(tokenString, &c, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return domain.Identity{}, classify(err)
	}
	if !tkn.Valid || c.UserID == "" {
		return domain.Identity{}, fmt.Errorf("verify token: %w", domain.ErrTokenInvalid)
	}

	return domain.Identity{UserID: c.UserID, Name: c.Name, Email: c.Email}, nil
}

// classify maps jwt errors onto the domain verification errors.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("verify token: %w: %v", domain.ErrTokenMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("verify token: %w: %v", domain.ErrTokenSignatureInvalid, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("verify token: %w", domain.ErrTokenExpired)
	default:
		return fmt.Errorf("verify token: %w: %v", domain.ErrTokenInvalid, err)
	}
}
