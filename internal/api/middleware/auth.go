package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todos-api/internal/api/metrics"
	"github.com/todoapp/todos-api/internal/core/domain"
	"github.com/todoapp/todos-api/internal/core/ports"
)

// HeaderAuthToken is the legacy token header, accepted when no bearer token is sent.
const HeaderAuthToken = "x-auth-token"

// Auth verifies the identity token and injects the caller into the echo
// context and the request context. It never touches a store.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := extractToken(c)
			if raw == "" {
				metrics.AuthGateRejectionsTotal.WithLabelValues("missing_token").Inc()
				return domain.ErrUnauthenticated
			}

			identity, err := verifier.Verify(raw)
			if err != nil {
				metrics.AuthGateRejectionsTotal.WithLabelValues("invalid_token").Inc()
				return err
			}

			c.Set(IdentityKey, identity)
			req := c.Request()
			c.SetRequest(req.WithContext(WithIdentity(req.Context(), identity)))

			return next(c)
		}
	}
}

func extractToken(c echo.Context) string {
	header := c.Request().Header
	if authHeader := header.Get(echo.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	return strings.TrimSpace(header.Get(HeaderAuthToken))
}
