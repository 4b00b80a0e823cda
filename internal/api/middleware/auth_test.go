package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todos-api/internal/core/domain"
	"github.com/todoapp/todos-api/internal/pkg/token"
)

func newManager(t *testing.T) *token.Manager {
	t.Helper()
	m, err := token.NewManager("secret")
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}
	return m
}

func issue(t *testing.T, m *token.Manager) string {
	t.Helper()
	signed, err := m.Issue(domain.Identity{UserID: "u1", Name: "Alice", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	m := newManager(t)
	signed := issue(t, m)

	for _, tc := range []struct {
		name   string
		header string
		value  string
	}{
		{"bearer", echo.HeaderAuthorization, "Bearer " + signed},
		{"lowercase scheme", echo.HeaderAuthorization, "bearer " + signed},
		{"legacy header", HeaderAuthToken, signed},
	} {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(tc.header, tc.value)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			called := false
			handler := Auth(m)(func(c echo.Context) error {
				called = true
				id, ok := c.Get(IdentityKey).(domain.Identity)
				if !ok || id.UserID != "u1" || id.Email != "alice@example.com" {
					t.Fatalf("identity not set on echo context: %+v", id)
				}
				fromCtx, ok := IdentityFrom(c.Request().Context())
				if !ok || fromCtx != id {
					t.Fatalf("identity not set on request context: %+v", fromCtx)
				}
				return c.NoContent(http.StatusOK)
			})

			if err := handler(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if !called {
				t.Fatalf("next not called")
			}
		})
	}
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	for _, value := range []string{"", "Bearer ", "Basic dXNlcjpwYXNz"} {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if value != "" {
			req.Header.Set(echo.HeaderAuthorization, value)
		}
		c := e.NewContext(req, httptest.NewRecorder())

		handler := Auth(newManager(t))(func(c echo.Context) error {
			t.Fatalf("next should not be called")
			return nil
		})

		if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("header %q: expected ErrUnauthenticated, got %v", value, err)
		}
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	m := newManager(t)
	other, err := token.NewManager("another-secret")
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}

	for name, raw := range map[string]string{
		"garbage":      "not-a-jwt",
		"wrong secret": issue(t, other),
	} {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+raw)
			c := e.NewContext(req, httptest.NewRecorder())

			handler := Auth(m)(func(c echo.Context) error {
				t.Fatalf("next should not be called")
				return nil
			})

			err := handler(c)
			if !domain.IsTokenError(err) {
				t.Fatalf("expected token error, got %v", err)
			}
		})
	}
}
