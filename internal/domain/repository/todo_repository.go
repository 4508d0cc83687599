package repository

import (
	"context"
	"errors"

	"taskbox/internal/domain/entity"
)

// ErrTodoNotFound is a domain-specific error returned when a todo is not found.
var ErrTodoNotFound = errors.New("todo not found")

// TodoRepository defines the standard operations for todo persistence.
type TodoRepository interface {
	// FindByID retrieves a single todo by its unique ID, regardless of owner.
	// Ownership is the caller's concern; the repository only reports absence.
	FindByID(ctx context.Context, id int64) (*entity.Todo, error)

	// ListByOwner retrieves all todos belonging to the given owner.
	ListByOwner(ctx context.Context, ownerID int64) ([]*entity.Todo, error)

	// Create persists a new todo entity to the storage.
	Create(ctx context.Context, todo *entity.Todo) error

	// Update modifies an existing todo entity in the storage.
	Update(ctx context.Context, todo *entity.Todo) error

	// Delete removes a todo by its unique ID.
	Delete(ctx context.Context, id int64) error
}
