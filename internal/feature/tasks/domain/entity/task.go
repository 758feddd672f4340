// Package entity defines the domain entities for the tasks feature.
package entity

import "time"

// MaxTitleLength bounds the task title, matching the storage column size.
const MaxTitleLength = 128

// Task represents a unit of work owned by a user.
type Task struct {
	// ID is the unique identifier for the task, generated at creation.
	ID string `gorm:"primaryKey;size:64" json:"task_id"`

	// Title is a required, bounded-length summary of the task.
	Title string `gorm:"size:128;not null" json:"title"`

	// Body is the free-text description of the task.
	Body string `gorm:"type:text" json:"body"`

	// UserID references the owning user. Every task must reference an
	// existing user at creation time.
	UserID string `gorm:"size:64;not null;index" json:"user_id"`

	// CreatedAt is the timestamp when the task was created.
	CreatedAt time.Time `json:"created_at"`
}

// PublicAttributes returns the task's externally visible fields, with the
// owning user's username in place of the raw foreign key. Key names follow
// the wire format of the service's original API.
func (t *Task) PublicAttributes(ownerUsername string) map[string]any {
	return map[string]any{
		"Title":      t.Title,
		"Body":       t.Body,
		"task_id":    t.ID,
		"Created On": t.CreatedAt,
		"User":       ownerUsername,
	}
}
