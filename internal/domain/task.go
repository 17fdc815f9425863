package domain

import (
	"time"
)

// TaskStatus is the free-form workflow state of a task.
type TaskStatus string

// Status values used by the landing page. Other values are stored as given.
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// DefaultTaskStatus is applied when a task is created without a status.
const DefaultTaskStatus = TaskStatusPending

// Task is the single persisted entity: a to-do item.
// ID and CreatedAt are assigned by storage and never modified afterwards.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      TaskStatus `json:"status"`
	CreatedAt   *time.Time `json:"created_at"`
}

// NewTask builds an unsaved task. An empty status falls back to
// DefaultTaskStatus.
func NewTask(title string, description *string, status TaskStatus) *Task {
	if status == "" {
		status = DefaultTaskStatus
	}
	return &Task{
		Title:       title,
		Description: description,
		Status:      status,
	}
}

// Validate checks the invariants storage relies on.
func (t *Task) Validate() error {
	if t.ID < 0 {
		return NewValidationError("id", "must not be negative", ErrInvalidID)
	}
	if t.Status == "" {
		return NewValidationError("status", "cannot be null", ErrValidation)
	}
	return nil
}
