// Package usecase implements the business logic for the tasks feature.
package usecase

import "errors"

var (
	// ErrTaskNotFound is returned when a task cannot be found by ID.
	ErrTaskNotFound = errors.New("task not found")

	// ErrMissingFields is returned when a required field is absent or empty.
	ErrMissingFields = errors.New("missing required fields")

	// ErrTitleTooLong is returned when a task title exceeds the bounded length.
	ErrTitleTooLong = errors.New("title exceeds maximum length")

	// ErrOwnerNotFound is returned when the supplied owner id does not
	// resolve to an existing user. Creation must fail without persisting.
	ErrOwnerNotFound = errors.New("owning user not found")

	// ErrDanglingOwner is returned when a stored task references a user
	// that no longer exists.
	ErrDanglingOwner = errors.New("task references a missing user")
)
