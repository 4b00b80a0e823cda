package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/todoapp/todos-api/internal/core/domain"
	"github.com/todoapp/todos-api/internal/core/ports"
)

// AuthService implements signup and signin.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, logger: logger}
}

// Signup registers a new account and returns a token for it. The email must
// not already be registered, compared case-insensitively.
func (s *AuthService) Signup(ctx context.Context, input ports.SignupInput) (string, *domain.User, error) {
	_, err := s.users.FindByEmail(ctx, input.Email)
	switch {
	case err == nil:
		return "", nil, domain.ErrUserExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return "", nil, fmt.Errorf("signup: %w", err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return "", nil, fmt.Errorf("signup: %w", err)
	}

	user, err := s.users.Create(ctx, &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return "", nil, domain.ErrUserExists
		}
		return "", nil, fmt.Errorf("signup: %w", err)
	}

	token, err := s.tokens.Issue(domain.IdentityOf(user))
	if err != nil {
		return "", nil, fmt.Errorf("signup: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user registered")
	return token, user, nil
}

// Signin checks credentials. An unknown email and a wrong password are
// indistinguishable to the caller.
func (s *AuthService) Signin(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("signin: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.Debug().Str("user_id", user.ID).Msg("password mismatch")
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(domain.IdentityOf(user))
	if err != nil {
		return "", nil, fmt.Errorf("signin: %w", err)
	}
	return token, user, nil
}
