package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todos-api/internal/api/metrics"
	"github.com/todoapp/todos-api/internal/core/domain"
	"github.com/todoapp/todos-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup creates a new user account and returns its identity token.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      plain
// @Param        body  body      signupRequest  true  "User registration details"
// @Success      200   {string}  string         "identity token"
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("signup", "rejected").Inc()
		return bindError(err)
	}
	if err := c.Validate(&req); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("signup", "rejected").Inc()
		return validationError(err)
	}

	token, _, err := h.authService.Signup(c.Request().Context(), ports.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	metrics.AuthAttemptsTotal.WithLabelValues("signup", authResult(err)).Inc()
	if err != nil {
		return err
	}

	return c.String(http.StatusOK, token)
}

// Signin authenticates a user and returns an identity token.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      plain
// @Param        body  body      signinRequest  true  "Login credentials"
// @Success      200   {string}  string         "identity token"
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /signin [post]
func (h *AuthHandler) Signin(c echo.Context) error {
	var req signinRequest
	if err := c.Bind(&req); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("signin", "rejected").Inc()
		return bindError(err)
	}
	if err := c.Validate(&req); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("signin", "rejected").Inc()
		return validationError(err)
	}

	token, _, err := h.authService.Signin(c.Request().Context(), req.Email, req.Password)
	metrics.AuthAttemptsTotal.WithLabelValues("signin", authResult(err)).Inc()
	if err != nil {
		return err
	}

	return c.String(http.StatusOK, token)
}

func authResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrUserExists), errors.Is(err, domain.ErrInvalidCredentials):
		return "rejected"
	default:
		return "error"
	}
}
