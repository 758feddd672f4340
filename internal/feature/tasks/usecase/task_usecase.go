package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"task_backend/internal/feature/tasks/domain/entity"
	userentity "task_backend/internal/feature/users/domain/entity"
	userusecase "task_backend/internal/feature/users/usecase"
)

// TaskRepository abstracts the persistence layer for task entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type TaskRepository interface {
	// Create persists a new task. The owner reference is checked in the
	// same transaction as the insert; if the owner does not exist the
	// task is not persisted and ErrOwnerNotFound is returned.
	Create(ctx context.Context, task *entity.Task) error

	// FindByID retrieves a task by ID.
	// It returns ErrTaskNotFound if the task does not exist.
	FindByID(ctx context.Context, id string) (*entity.Task, error)

	// FindAll retrieves every task, ordered by creation time.
	FindAll(ctx context.Context) ([]*entity.Task, error)

	// Update persists changes to an existing task.
	Update(ctx context.Context, task *entity.Task) error

	// Delete removes the task with the given ID.
	// It returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id string) error
}

// UserResolver resolves owner references to user entities. It is
// satisfied by the users feature's repository.
type UserResolver interface {
	FindByID(ctx context.Context, id string) (*userentity.User, error)
}

// TaskWithOwner pairs a task with its resolved owner's username.
type TaskWithOwner struct {
	Task          *entity.Task
	OwnerUsername string
}

// taskUsecase implements the task CRUD business logic.
type taskUsecase struct {
	tasks TaskRepository
	users UserResolver
}

// NewTaskUsecase creates a new instance of taskUsecase.
func NewTaskUsecase(tasks TaskRepository, users UserResolver) *taskUsecase {
	return &taskUsecase{tasks: tasks, users: users}
}

// Create persists a new task with a generated ID. The owner id must
// resolve to an existing user or nothing is persisted.
func (u *taskUsecase) Create(ctx context.Context, title, body, ownerID string) (*entity.Task, error) {
	if title == "" || ownerID == "" {
		return nil, ErrMissingFields
	}
	if len(title) > entity.MaxTitleLength {
		return nil, ErrTitleTooLong
	}
	task := &entity.Task{
		ID:     uuid.NewString(),
		Title:  title,
		Body:   body,
		UserID: ownerID,
	}
	if err := u.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Get returns the task with the given ID together with its owner's
// username. A task whose owner no longer exists fails with
// ErrDanglingOwner.
func (u *taskUsecase) Get(ctx context.Context, id string) (*TaskWithOwner, error) {
	task, err := u.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	owner, err := u.users.FindByID(ctx, task.UserID)
	if err != nil {
		if errors.Is(err, userusecase.ErrUserNotFound) {
			return nil, ErrDanglingOwner
		}
		return nil, err
	}
	return &TaskWithOwner{Task: task, OwnerUsername: owner.Username}, nil
}

// List returns every task with its owner's username resolved.
func (u *taskUsecase) List(ctx context.Context) ([]*TaskWithOwner, error) {
	tasks, err := u.tasks.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*TaskWithOwner, 0, len(tasks))
	for _, task := range tasks {
		owner, err := u.users.FindByID(ctx, task.UserID)
		if err != nil {
			if errors.Is(err, userusecase.ErrUserNotFound) {
				return nil, ErrDanglingOwner
			}
			return nil, err
		}
		out = append(out, &TaskWithOwner{Task: task, OwnerUsername: owner.Username})
	}
	return out, nil
}

// taskMutableFields is the allow-list for partial updates. Any submitted
// field outside this set is silently ignored, never applied.
var taskMutableFields = map[string]bool{
	"title": true,
	"body":  true,
}

// Update applies a partial update to the task with the given ID.
// Only allow-listed fields (title, body) are applied.
func (u *taskUsecase) Update(ctx context.Context, id string, fields map[string]any) (*entity.Task, error) {
	task, err := u.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for key, value := range fields {
		if !taskMutableFields[key] {
			continue
		}
		s, ok := value.(string)
		if !ok {
			continue
		}
		switch key {
		case "title":
			if s == "" {
				return nil, ErrMissingFields
			}
			if len(s) > entity.MaxTitleLength {
				return nil, ErrTitleTooLong
			}
			task.Title = s
		case "body":
			task.Body = s
		}
	}
	if err := u.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes the task with the given ID.
func (u *taskUsecase) Delete(ctx context.Context, id string) error {
	return u.tasks.Delete(ctx, id)
}
