package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/todoapp/todos-api/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"duplicate", domain.ErrUserExists, http.StatusBadRequest, "Email already registered"},
		{"credentials", domain.ErrInvalidCredentials, http.StatusBadRequest, "Invalid email or password"},
		{"no token", domain.ErrUnauthenticated, http.StatusUnauthorized, "Access denied. No token provided"},
		{"bad token", fmt.Errorf("verify: %w", domain.ErrTokenSignatureInvalid), http.StatusUnauthorized, "Invalid token"},
		{"forbidden", fmt.Errorf("toggle todo: %w", domain.ErrForbidden), http.StatusForbidden, "access forbidden"},
		{"not found", fmt.Errorf("delete todo: %w", domain.ErrTodoNotFound), http.StatusNotFound, "To do not found"},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "name is required"), http.StatusBadRequest, "name is required"},
		{"unexpected", errors.New("mongo: connection pool closed"), http.StatusInternalServerError, "internal server error"},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			handler(tt.err, c)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error != tt.wantMsg {
				t.Fatalf("expected %q, got %q", tt.wantMsg, body.Error)
			}
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)

	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Fatalf("committed response was modified: %d %q", rec.Code, rec.Body.String())
	}
}
