package store

import (
	"context"

	"github.com/phrazzld/task-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
type TaskStore interface {
	// List returns every task, newest first (created_at descending, ties
	// broken by id descending). An empty table yields an empty, non-nil slice.
	List(ctx context.Context) ([]domain.Task, error)

	// Create inserts the task and returns the ID assigned by storage.
	// ID and CreatedAt on the argument are ignored.
	Create(ctx context.Context, task *domain.Task) (int64, error)

	// Update overwrites title, description and status of the task with
	// task.ID and returns the number of rows changed. A missing ID is not an
	// error: it yields 0.
	Update(ctx context.Context, task *domain.Task) (int64, error)

	// Delete removes the task and returns the number of rows removed.
	// A missing ID is not an error: it yields 0.
	Delete(ctx context.Context, id int64) (int64, error)

	// Count returns the number of stored tasks.
	Count(ctx context.Context) (int64, error)
}
