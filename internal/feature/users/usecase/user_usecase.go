package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"task_backend/internal/feature/users/domain/entity"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user to the storage.
	// It returns ErrEmailAlreadyExists if a user with the same email exists.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user matching the specified ID.
	// It returns ErrUserNotFound if the user does not exist.
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// FindByEmail retrieves a user matching the specified email address.
	// It returns ErrUserNotFound if the user does not exist.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Update persists changes to an existing user.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes the user with the given ID.
	// It returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id string) error
}

// userUsecase implements the user CRUD business logic.
type userUsecase struct {
	users UserRepository
}

// NewUserUsecase creates a new instance of userUsecase.
func NewUserUsecase(users UserRepository) *userUsecase {
	return &userUsecase{users: users}
}

// Create registers a new user with a generated ID and a hashed password.
// Missing required fields fail with ErrMissingFields.
func (u *userUsecase) Create(ctx context.Context, username, email, password string) (*entity.User, error) {
	if username == "" || email == "" {
		return nil, ErrMissingFields
	}
	user := &entity.User{
		ID:       uuid.NewString(),
		Username: username,
		Email:    email,
	}
	if err := user.SetPassword(password); err != nil {
		if errors.Is(err, entity.ErrEmptyPassword) {
			return nil, ErrMissingFields
		}
		return nil, err
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Get returns the user with the given ID.
func (u *userUsecase) Get(ctx context.Context, id string) (*entity.User, error) {
	return u.users.FindByID(ctx, id)
}

// userMutableFields is the allow-list for partial updates. Any submitted
// field outside this set is silently ignored, never applied.
var userMutableFields = map[string]bool{
	"username": true,
	"email":    true,
}

// Update applies a partial update to the user with the given ID.
// Only allow-listed fields (username, email) are applied.
func (u *userUsecase) Update(ctx context.Context, id string, fields map[string]any) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for key, value := range fields {
		if !userMutableFields[key] {
			continue
		}
		s, ok := value.(string)
		if !ok {
			continue
		}
		switch key {
		case "username":
			user.Username = s
		case "email":
			user.Email = s
		}
	}
	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the user with the given ID.
func (u *userUsecase) Delete(ctx context.Context, id string) error {
	return u.users.Delete(ctx, id)
}
