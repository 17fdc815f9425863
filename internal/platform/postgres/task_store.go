package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
)

const (
	listTasksQuery = `
		SELECT id, title, description, status, created_at
		FROM tasks
		ORDER BY created_at DESC, id DESC
	`

	insertTaskQuery = `
		INSERT INTO tasks (title, description, status)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	updateTaskQuery = `
		UPDATE tasks
		SET title = $1, description = $2, status = $3
		WHERE id = $4
	`

	deleteTaskQuery = `DELETE FROM tasks WHERE id = $1`

	countTasksQuery = `SELECT COUNT(*) FROM tasks`
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// List implements store.TaskStore.List
func (s *PostgresTaskStore) List(ctx context.Context) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("listing tasks")

	rows, err := s.db.QueryContext(ctx, listTasksQuery)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "query failed", MapError(err))
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close task rows", slog.String("error", closeErr.Error()))
		}
	}()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("task", "list", "scan failed", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "row iteration failed", MapError(err))
	}

	log.Debug("tasks listed", slog.Int("count", len(tasks)))
	return tasks, nil
}

// Create implements store.TaskStore.Create
// It ignores task.ID and task.CreatedAt; both are assigned by the database.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if task == nil {
		return 0, domain.NewValidationError("task", "cannot be nil", domain.ErrValidation)
	}
	toInsert := *task
	toInsert.ID = 0
	if toInsert.Status == "" {
		toInsert.Status = domain.DefaultTaskStatus
	}
	if err := toInsert.Validate(); err != nil {
		log.Warn("task validation failed during create", slog.String("error", err.Error()))
		return 0, err
	}
	task = &toInsert

	log.Debug("creating task", slog.String("status", string(task.Status)))

	var id int64
	err := s.db.QueryRowContext(
		ctx,
		insertTaskQuery,
		task.Title,
		nullString(task.Description),
		string(task.Status),
	).Scan(&id)
	if err != nil {
		logWriteFailure(log, "failed to create task", err)
		return 0, store.NewStoreError("task", "create", "insert failed", MapError(err))
	}

	log.Info("task created", slog.Int64("task_id", id))
	return id, nil
}

// Update implements store.TaskStore.Update
// Only title, description and status are written; a missing ID yields 0 rows.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if task == nil {
		return 0, domain.NewValidationError("task", "cannot be nil", domain.ErrValidation)
	}
	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return 0, err
	}

	log.Debug("updating task", slog.Int64("task_id", task.ID))

	result, err := s.db.ExecContext(
		ctx,
		updateTaskQuery,
		task.Title,
		nullString(task.Description),
		string(task.Status),
		task.ID,
	)
	if err != nil {
		logWriteFailure(log, "failed to update task", err, slog.Int64("task_id", task.ID))
		return 0, store.NewStoreError("task", "update", "update failed", MapError(err))
	}

	n, err := rowsAffected(result)
	if err != nil {
		return 0, store.NewStoreError("task", "update", "result unavailable", err)
	}

	if n == 0 {
		log.Debug("no task updated", slog.Int64("task_id", task.ID))
	} else {
		log.Info("task updated", slog.Int64("task_id", task.ID))
	}
	return n, nil
}

// Delete implements store.TaskStore.Delete
// A missing ID yields 0 rows and no error.
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("deleting task", slog.Int64("task_id", id))

	result, err := s.db.ExecContext(ctx, deleteTaskQuery, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return 0, store.NewStoreError("task", "delete", "delete failed", MapError(err))
	}

	n, err := rowsAffected(result)
	if err != nil {
		return 0, store.NewStoreError("task", "delete", "result unavailable", err)
	}

	if n == 0 {
		log.Debug("no task deleted", slog.Int64("task_id", id))
	} else {
		log.Info("task deleted", slog.Int64("task_id", id))
	}
	return n, nil
}

// Count implements store.TaskStore.Count
func (s *PostgresTaskStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, countTasksQuery).Scan(&n); err != nil {
		return 0, store.NewStoreError("task", "count", "query failed", MapError(err))
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// logWriteFailure logs a failed insert or update. NOT NULL rejections log at
// warn, everything else at error.
func logWriteFailure(log *slog.Logger, msg string, err error, attrs ...any) {
	attrs = append(attrs, slog.String("error", err.Error()))
	if IsNotNullViolation(err) {
		log.Warn(msg, append(attrs, slog.String("reason", "not_null_violation"))...)
		return
	}
	log.Error(msg, attrs...)
}

func scanTask(row rowScanner) (domain.Task, error) {
	var (
		task        domain.Task
		description sql.NullString
		status      sql.NullString
		createdAt   sql.NullTime
	)

	if err := row.Scan(&task.ID, &task.Title, &description, &status, &createdAt); err != nil {
		return domain.Task{}, fmt.Errorf("failed to scan task: %w", err)
	}

	if description.Valid {
		d := description.String
		task.Description = &d
	}
	task.Status = domain.TaskStatus(status.String)
	if createdAt.Valid {
		ts := createdAt.Time
		task.CreatedAt = &ts
	}
	return task, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
