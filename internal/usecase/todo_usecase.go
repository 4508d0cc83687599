package usecase

import (
	"context"

	"taskbox/internal/domain/entity"
)

// CreateTodoInput defines the data required to create a todo.
type CreateTodoInput struct {
	Text string
}

// UpdateTodoInput carries a partial update. Nil fields are left untouched;
// at least one field must be set.
type UpdateTodoInput struct {
	Text *string
	Done *bool
}

// TodoUsecase defines the interface for todo-related business operations.
// Every operation acts on behalf of an authenticated identity; ownership is
// enforced here, and a denied access is reported exactly like an absent
// todo so callers cannot probe for other users' ids.
type TodoUsecase interface {
	List(ctx context.Context, identity *entity.Identity) ([]*entity.Todo, error)
	Get(ctx context.Context, identity *entity.Identity, id int64) (*entity.Todo, error)
	Create(ctx context.Context, identity *entity.Identity, input *CreateTodoInput) (*entity.Todo, error)
	Update(ctx context.Context, identity *entity.Identity, id int64, input *UpdateTodoInput) (*entity.Todo, error)
	Delete(ctx context.Context, identity *entity.Identity, id int64) error
}
