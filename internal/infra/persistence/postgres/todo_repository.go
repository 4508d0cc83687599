package postgres

import (
	"context"

	"taskbox/internal/domain/entity"
	domainerrors "taskbox/internal/domain/errors"
	"taskbox/internal/domain/repository"
	"taskbox/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// todoRepository implements the repository.TodoRepository interface using GORM.
type todoRepository struct {
	db *gorm.DB
}

// NewTodoRepository is the constructor for todoRepository.
func NewTodoRepository(db *gorm.DB) repository.TodoRepository {
	return &todoRepository{db: db}
}

// FindByID retrieves a single todo by its unique ID.
func (repo *todoRepository) FindByID(ctx context.Context, id int64) (*entity.Todo, error) {
	var todoM model.TodoModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&todoM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTodoNotFound
		}

		return nil, errors.Wrap(err, "failed to find todo by id")
	}

	return toTodoDomain(&todoM), nil
}

// ListByOwner retrieves all todos belonging to the given owner, oldest first.
func (repo *todoRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*entity.Todo, error) {
	var todoMs []model.TodoModel
	err := repo.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id").
		Find(&todoMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list todos by owner")
	}

	todos := make([]*entity.Todo, 0, len(todoMs))
	for i := range todoMs {
		todos = append(todos, toTodoDomain(&todoMs[i]))
	}

	return todos, nil
}

// Create persists a new todo entity to the database.
func (repo *todoRepository) Create(ctx context.Context, todo *entity.Todo) error {
	todoM := fromTodoDomain(todo)

	if err := repo.db.WithContext(ctx).Create(todoM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("todo owner does not exist")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required todo information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create todo")
	}

	todo.ID = todoM.ID
	todo.CreatedAt = todoM.CreatedAt
	todo.UpdatedAt = todoM.UpdatedAt

	return nil
}

// Update modifies an existing todo entity in the database.
func (repo *todoRepository) Update(ctx context.Context, todo *entity.Todo) error {
	todoM := fromTodoDomain(todo)

	result := repo.db.WithContext(ctx).
		Model(&model.TodoModel{}).
		Where("id = ?", todoM.ID).
		Updates(map[string]any{
			"text": todoM.Text,
			"done": todoM.Done,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update todo")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTodoNotFound
	}

	return nil
}

// Delete removes a todo by its unique ID.
func (repo *todoRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.TodoModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete todo")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTodoNotFound
	}

	return nil
}

// toTodoDomain converts a GORM TodoModel to a domain Todo entity.
func toTodoDomain(data *model.TodoModel) *entity.Todo {
	if data == nil {
		return nil
	}

	return &entity.Todo{
		ID:        data.ID,
		Text:      data.Text,
		Done:      data.Done,
		OwnerID:   data.OwnerID,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromTodoDomain converts a domain Todo entity to a GORM TodoModel for persistence.
func fromTodoDomain(data *entity.Todo) *model.TodoModel {
	if data == nil {
		return nil
	}

	return &model.TodoModel{
		ID:      data.ID,
		Text:    data.Text,
		Done:    data.Done,
		OwnerID: data.OwnerID,
	}
}
