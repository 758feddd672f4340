// Package adapters provides repository implementations for the tasks feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"task_backend/internal/feature/tasks/domain/entity"
	"task_backend/internal/feature/tasks/usecase"
	userentity "task_backend/internal/feature/users/domain/entity"
)

// taskGorm is a GORM implementation of the TaskRepository interface.
type taskGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure taskGorm implements TaskRepository.
var _ usecase.TaskRepository = (*taskGorm)(nil)

// NewTaskRepository creates a new instance of taskGorm with the given gorm.DB connection.
func NewTaskRepository(db *gorm.DB) *taskGorm {
	return &taskGorm{db: db}
}

// Create inserts the task after verifying, in the same transaction, that
// the owning user exists. A task is never persisted against a missing
// owner; that case returns usecase.ErrOwnerNotFound.
func (r *taskGorm) Create(ctx context.Context, task *entity.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&userentity.User{}).Where("id = ?", task.UserID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return usecase.ErrOwnerNotFound
		}
		return tx.Create(task).Error
	})
}

// FindByID retrieves a task by ID.
// It returns usecase.ErrTaskNotFound if the task does not exist.
func (r *taskGorm) FindByID(ctx context.Context, id string) (*entity.Task, error) {
	var t entity.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindAll retrieves every task ordered by creation time.
func (r *taskGorm) FindAll(ctx context.Context) ([]*entity.Task, error) {
	var models []entity.Task
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	tasks := make([]*entity.Task, len(models))
	for i := range models {
		tasks[i] = &models[i]
	}
	return tasks, nil
}

// Update persists the mutable fields of the given task inside one transaction.
func (r *taskGorm) Update(ctx context.Context, t *entity.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Task{}).Where("id = ?", t.ID).
			Updates(map[string]any{
				"title": t.Title,
				"body":  t.Body,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return usecase.ErrTaskNotFound
		}
		return nil
	})
}

// Delete removes the task with the given ID.
// It returns usecase.ErrTaskNotFound if no row was deleted.
func (r *taskGorm) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&entity.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrTaskNotFound
	}
	return nil
}
