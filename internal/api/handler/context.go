package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todos-api/internal/api/middleware"
	"github.com/todoapp/todos-api/internal/core/domain"
)

// ctxIdentity returns the caller injected by the Auth middleware. A missing
// identity means the route was mounted without the gate.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	id, _ := c.Get(middleware.IdentityKey).(domain.Identity)
	if id.UserID == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

// bindError turns a decode failure into a 400.
func bindError(err error) error {
	for _, known := range nullErrors {
		if errors.Is(err, known) {
			return echo.NewHTTPError(http.StatusBadRequest, known.Error())
		}
	}
	return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
}

func validationError(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}
