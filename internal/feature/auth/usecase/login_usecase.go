// Package usecase implements the business logic for the auth feature.
package usecase

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"task_backend/internal/feature/users/domain/entity"
)

// ErrInvalidCredentials is returned for any login failure: unknown email
// or wrong password. The two cases are deliberately indistinguishable to
// avoid user enumeration.
var ErrInvalidCredentials = errors.New("invalid email or password")

// UserFinder resolves login emails to user entities. It is satisfied by
// the users feature's repository.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// TokenIssuer creates signed tokens bound to a user identity.
type TokenIssuer interface {
	GenerateToken(userID string) (string, error)
}

// loginUsecase authenticates users and issues tokens.
type loginUsecase struct {
	users  UserFinder
	tokens TokenIssuer
}

// NewLoginUsecase creates a new instance of loginUsecase.
func NewLoginUsecase(users UserFinder, tokens TokenIssuer) *loginUsecase {
	return &loginUsecase{users: users, tokens: tokens}
}

// Login authenticates the user and returns a signed token on success.
// A bcrypt comparison runs even when the email does not resolve, so the
// unknown-email and wrong-password paths take comparable time.
func (u *loginUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, email)

	// Dummy hash keeps bcrypt.CompareHashAndPassword on the miss path.
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = user.PasswordHash
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if err != nil || compareErr != nil {
		return "", ErrInvalidCredentials
	}

	token, tokenErr := u.tokens.GenerateToken(user.ID)
	if tokenErr != nil {
		return "", tokenErr
	}

	return token, nil
}
