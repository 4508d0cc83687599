package impl

import (
	"context"
	"log/slog"

	deliverycontext "taskbox/internal/delivery/context"
	"taskbox/internal/domain/entity"
	domainerrors "taskbox/internal/domain/errors"
	"taskbox/internal/domain/repository"
	"taskbox/internal/domain/service"
	"taskbox/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// todoService implements the TodoUsecase interface.
type todoService struct {
	todoRepo repository.TodoRepository
	guard    *service.OwnershipGuard
	logger   *slog.Logger
}

// TodoServiceParams holds dependencies for TodoService, injected by Fx.
type TodoServiceParams struct {
	fx.In

	TodoRepo repository.TodoRepository
	Guard    *service.OwnershipGuard
	Logger   *slog.Logger
}

// NewTodoService is the constructor for todoService.
func NewTodoService(params TodoServiceParams) usecase.TodoUsecase {
	return &todoService{
		todoRepo: params.TodoRepo,
		guard:    params.Guard,
		logger:   params.Logger,
	}
}

func (srv *todoService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns the caller's own todos. An account with no todos gets an
// empty list, never an error.
func (srv *todoService) List(ctx context.Context, identity *entity.Identity) ([]*entity.Todo, error) {
	if identity == nil {
		return nil, domainerrors.ErrAuthRequired
	}

	todos, err := srv.todoRepo.ListByOwner(ctx, identity.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list todos")
	}

	if todos == nil {
		todos = []*entity.Todo{}
	}

	return todos, nil
}

// Get returns a single todo. A todo owned by someone else is reported
// exactly like a missing one.
func (srv *todoService) Get(ctx context.Context, identity *entity.Identity, id int64) (*entity.Todo, error) {
	return srv.findOwned(ctx, identity, id)
}

// Create stores a new todo owned by the caller.
func (srv *todoService) Create(ctx context.Context, identity *entity.Identity, input *usecase.CreateTodoInput) (*entity.Todo, error) {
	if identity == nil {
		return nil, domainerrors.ErrAuthRequired
	}

	todo := &entity.Todo{
		Text:    input.Text,
		OwnerID: identity.ID,
	}

	if err := srv.todoRepo.Create(ctx, todo); err != nil {
		return nil, errors.Wrap(err, "failed to create todo")
	}

	srv.log(ctx).Debug("Todo created", slog.Int64("todoID", todo.ID), slog.Int64("ownerID", identity.ID))

	return todo, nil
}

// Update applies a partial update to the caller's todo. At least one field
// must be provided.
func (srv *todoService) Update(ctx context.Context, identity *entity.Identity, id int64, input *usecase.UpdateTodoInput) (*entity.Todo, error) {
	if input.Text == nil && input.Done == nil {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("update requires at least one field")
	}

	todo, err := srv.findOwned(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	if input.Text != nil {
		todo.Text = *input.Text
	}
	if input.Done != nil {
		todo.Done = *input.Done
	}

	if err := srv.todoRepo.Update(ctx, todo); err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, domainerrors.ErrTodoNotFound.WrapMessage("todo vanished during update")
		}

		return nil, errors.Wrap(err, "failed to update todo")
	}

	return todo, nil
}

// Delete removes the caller's todo.
func (srv *todoService) Delete(ctx context.Context, identity *entity.Identity, id int64) error {
	if _, err := srv.findOwned(ctx, identity, id); err != nil {
		return err
	}

	if err := srv.todoRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return domainerrors.ErrTodoNotFound.WrapMessage("todo vanished during delete")
		}

		return errors.Wrap(err, "failed to delete todo")
	}

	srv.log(ctx).Debug("Todo deleted", slog.Int64("todoID", id))

	return nil
}

// findOwned loads a todo and checks ownership. Absence and denial collapse
// into the same not-found error on purpose.
func (srv *todoService) findOwned(ctx context.Context, identity *entity.Identity, id int64) (*entity.Todo, error) {
	if identity == nil {
		return nil, domainerrors.ErrAuthRequired
	}

	todo, err := srv.todoRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrTodoNotFound) {
		return nil, domainerrors.ErrTodoNotFound.WrapMessage("todo lookup failed")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find todo")
	}

	if !srv.guard.Authorize(identity, todo) {
		srv.log(ctx).Warn("Ownership check failed", slog.Int64("todoID", id), slog.Int64("callerID", identity.ID))

		return nil, domainerrors.ErrTodoNotFound.WrapMessage("todo does not belong to caller")
	}

	return todo, nil
}
