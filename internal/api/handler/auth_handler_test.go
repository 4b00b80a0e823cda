package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todos-api/internal/core/domain"
	"github.com/todoapp/todos-api/internal/core/ports"
)

type stubAuthService struct {
	signupFn func(ctx context.Context, in ports.SignupInput) (string, *domain.User, error)
	signinFn func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Signup(ctx context.Context, in ports.SignupInput) (string, *domain.User, error) {
	return s.signupFn(ctx, in)
}

func (s *stubAuthService) Signin(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.signinFn(ctx, email, password)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func httpError(t *testing.T, err error) *echo.HTTPError {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %T (%v)", err, err)
	}
	return he
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		signupFn: func(_ context.Context, in ports.SignupInput) (string, *domain.User, error) {
			if in.Name != "Alice" || in.Email != "a@x.com" || in.Password != "secret1" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return "signed.token.value", &domain.User{ID: "u1"}, nil
		},
	}
	handler := NewAuthHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/signup", `{"name":"Alice","email":"a@x.com","password":"secret1"}`), rec)

	if err := handler.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "signed.token.value" {
		t.Fatalf("expected raw token body, got %q", rec.Body.String())
	}
}

func TestAuthHandler_Signup_Validation(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(context.Context, ports.SignupInput) (string, *domain.User, error) {
			t.Fatalf("service must not be called on invalid input")
			return "", nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	tests := []struct {
		body string
		want string
	}{
		{`{"email":"a@x.com","password":"secret1"}`, "name is required"},
		{`{"name":"Al","email":"a@x.com","password":"secret1"}`, "name must be at least 3 characters long"},
		{`{"name":"Alice","email":"not-an-email","password":"secret1"}`, "email must be a valid email"},
		{`{"name":"Alice","email":"a@x.com","password":"12345"}`, "password must be at least 6 characters long"},
		{`{"name":"Al","email":"bad","password":"1"}`, "name must be at least 3 characters long"},
		{`{"name":`, "invalid payload"},
	}

	for _, tt := range tests {
		e := newEcho()
		c := e.NewContext(jsonRequest(http.MethodPost, "/api/signup", tt.body), httptest.NewRecorder())

		he := httpError(t, handler.Signup(c))
		if he.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tt.body, he.Code)
		}
		if he.Message != tt.want {
			t.Fatalf("%s: expected %q, got %q", tt.body, tt.want, he.Message)
		}
	}
}

func TestAuthHandler_Signup_Duplicate(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		signupFn: func(context.Context, ports.SignupInput) (string, *domain.User, error) {
			return "", nil, domain.ErrUserExists
		},
	}
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/signup", `{"name":"Bob","email":"b@x.com","password":"secret1"}`), httptest.NewRecorder())

	if err := NewAuthHandler(stub).Signup(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Signin(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		signinFn: func(_ context.Context, email, password string) (string, *domain.User, error) {
			if email == "a@x.com" && password == "secret1" {
				return "tok", &domain.User{ID: "u1"}, nil
			}
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/signin", `{"email":"a@x.com","password":"secret1"}`), rec)
	if err := handler.Signin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Body.String() != "tok" {
		t.Fatalf("expected token, got %q", rec.Body.String())
	}

	c = e.NewContext(jsonRequest(http.MethodPost, "/api/signin", `{"email":"a@x.com","password":"wrong-pass"}`), httptest.NewRecorder())
	if err := handler.Signin(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
