// Package entity defines the domain entities for the users feature.
package entity

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword is returned when an empty plaintext password is supplied.
var ErrEmptyPassword = errors.New("password must not be empty")

// User represents a registered user in the system.
// It contains authentication credentials and metadata for user management.
type User struct {
	// ID is the unique identifier for the user, generated at creation.
	// It is never client-supplied.
	ID string `gorm:"primaryKey;size:64" json:"user_id"`

	// Username is the user's display name.
	Username string `gorm:"size:18;not null" json:"username"`

	// Email is the user's email address used for login.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Plaintext passwords are never stored, and the hash is never
	// serialized or exposed through the public projection.
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time `json:"updated_at"`
}

// SetPassword hashes the given plaintext with bcrypt and stores the hash
// on the user. The plaintext itself is discarded.
func (u *User) SetPassword(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashed)
	return nil
}

// VerifyPassword reports whether the given plaintext matches the stored
// hash. It returns false on any mismatch, including an empty string and
// the hash value itself.
func (u *User) VerifyPassword(plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext)) == nil
}

// PublicAttributes returns the user's externally visible fields.
// The password hash is deliberately absent. Key names follow the wire
// format of the service's original API.
func (u *User) PublicAttributes() map[string]any {
	return map[string]any{
		"Username":      u.Username,
		"Email Address": u.Email,
		"Created On":    u.CreatedAt,
		"Updated On":    u.UpdatedAt,
		"user_id":       u.ID,
	}
}
