package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todos-api/internal/api/metrics"
	"github.com/todoapp/todos-api/internal/core/domain"
	"github.com/todoapp/todos-api/internal/core/ports"
)

// HeaderIdempotencyKey lets clients retry POST /todos without creating duplicates.
const HeaderIdempotencyKey = "Idempotency-Key"

// TodoHandler handles HTTP requests for the caller's todos. Every route is
// behind the Auth middleware.
type TodoHandler struct {
	service ports.TodoService
}

func NewTodoHandler(service ports.TodoService) *TodoHandler {
	return &TodoHandler{service: service}
}

// List handles GET /todos.
//
// @Summary      List the caller's todos, newest first
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Todo
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /todos [get]
func (h *TodoHandler) List(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	todos, err := h.service.List(c.Request().Context(), id.UserID)
	observe("list", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, todos)
}

// Create handles POST /todos.
//
// @Summary      Create a todo owned by the caller
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string       false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      todoRequest  true   "Todo"
// @Success      200              {object}  domain.Todo
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /todos [post]
func (h *TodoHandler) Create(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	req, err := bindTodo(c)
	if err != nil {
		observe("create", err)
		return err
	}

	idempotencyKey := c.Request().Header.Get(HeaderIdempotencyKey)
	todo, err := h.service.Create(c.Request().Context(), toCreateInput(req, id.UserID, idempotencyKey))
	observe("create", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, todo)
}

// Update handles PUT /todos/:id.
//
// @Summary      Replace a todo
// @Description  Fields omitted from the body keep their stored value. uid cannot be changed.
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Todo id"
// @Param        body  body      todoRequest  true  "Todo"
// @Success      200   {object}  domain.Todo
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /todos/{id} [put]
func (h *TodoHandler) Update(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	req, err := bindTodo(c)
	if err != nil {
		observe("update", err)
		return err
	}

	todo, err := h.service.Update(c.Request().Context(), toUpdateInput(req, id.UserID, c.Param("id")))
	observe("update", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, todo)
}

// Toggle handles PATCH /todos/:id.
//
// @Summary      Flip a todo's isComplete flag
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Todo id"
// @Success      200  {object}  domain.Todo
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /todos/{id} [patch]
func (h *TodoHandler) Toggle(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	todo, err := h.service.Toggle(c.Request().Context(), id.UserID, c.Param("id"))
	observe("toggle", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, todo)
}

// Delete handles DELETE /todos/:id.
//
// @Summary      Delete a todo
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Todo id"
// @Success      200  {object}  domain.Todo
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /todos/{id} [delete]
func (h *TodoHandler) Delete(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	todo, err := h.service.Delete(c.Request().Context(), id.UserID, c.Param("id"))
	observe("delete", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, todo)
}

func bindTodo(c echo.Context) (todoRequest, error) {
	var req todoRequest
	if err := c.Bind(&req); err != nil {
		return req, bindError(err)
	}
	if err := c.Validate(&req); err != nil {
		return req, validationError(err)
	}
	return req, nil
}

func observe(operation string, err error) {
	metrics.TodoOperationsTotal.WithLabelValues(operation, todoResult(err)).Inc()
}

func todoResult(err error) string {
	var he *echo.HTTPError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrTodoNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.As(err, &he) && he.Code == http.StatusBadRequest:
		return "invalid"
	default:
		return "error"
	}
}
