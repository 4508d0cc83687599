package handler

import (
	"net/http"
	"strconv"

	"taskbox/internal/delivery/http/middleware"
	"taskbox/internal/delivery/http/response"
	domainerrors "taskbox/internal/domain/errors"
	"taskbox/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// TodoHandler holds dependencies for todo-related handlers. All routes are
// mounted behind RequireAuth, so IdentityFrom never returns nil here.
type TodoHandler struct {
	uc usecase.TodoUsecase
}

// NewTodoHandler is the constructor for TodoHandler, injected by Fx.
func NewTodoHandler(uc usecase.TodoUsecase) *TodoHandler {
	return &TodoHandler{uc: uc}
}

type createTodoRequest struct {
	Text string `json:"text" validate:"required,max=500"`
}

type updateTodoRequest struct {
	Text *string `json:"text" validate:"omitempty,max=500"`
	Done *bool   `json:"done"`
}

// List returns all todos owned by the caller.
func (h *TodoHandler) List(c echo.Context) error {
	todos, err := h.uc.List(c.Request().Context(), middleware.IdentityFrom(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, todos, "")
}

// Get returns a single todo by id.
func (h *TodoHandler) Get(c echo.Context) error {
	id, err := parseTodoID(c)
	if err != nil {
		return err
	}

	todo, err := h.uc.Get(c.Request().Context(), middleware.IdentityFrom(c), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, todo, "")
}

// Create stores a new todo for the caller.
func (h *TodoHandler) Create(c echo.Context) error {
	var req createTodoRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid todo input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	todo, err := h.uc.Create(c.Request().Context(), middleware.IdentityFrom(c), &usecase.CreateTodoInput{
		Text: req.Text,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, todo, "Todo created")
}

// Update applies a partial update to one of the caller's todos.
func (h *TodoHandler) Update(c echo.Context) error {
	id, err := parseTodoID(c)
	if err != nil {
		return err
	}

	var req updateTodoRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid todo input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	todo, err := h.uc.Update(c.Request().Context(), middleware.IdentityFrom(c), id, &usecase.UpdateTodoInput{
		Text: req.Text,
		Done: req.Done,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, todo, "Todo updated")
}

// Delete removes one of the caller's todos.
func (h *TodoHandler) Delete(c echo.Context) error {
	id, err := parseTodoID(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), middleware.IdentityFrom(c), id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func parseTodoID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domainerrors.ErrValidationFailed.WrapMessage("todo id must be a positive integer")
	}

	return id, nil
}
