package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/phrazzld/task-api/internal/redact"
	"github.com/pressly/goose/v3"
)

// MigrationTableName is the name of the table used by goose to track migrations.
const MigrationTableName = "schema_migrations"

const migrationsDir = "migrations"

//go:embed migrations/*.sql
var migrationFS embed.FS

// goose keeps its configuration in package-level state.
var gooseMu sync.Mutex

// EnsureSchema creates the tasks table when it does not exist yet and logs
// how many tasks are already stored. It is safe to call on every start.
// Failures are logged and reported as false; they never propagate.
func EnsureSchema(ctx context.Context, db *sql.DB, logger *slog.Logger) bool {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(slog.String("component", "schema"))

	if db == nil {
		log.Error("cannot initialize database schema without a connection")
		return false
	}

	if err := MigrateUp(ctx, db, log); err != nil {
		log.Error("failed to initialize database schema",
			slog.String("error", redact.Error(err)))
		return false
	}

	count, err := NewPostgresTaskStore(db, logger).Count(ctx)
	if err != nil {
		log.Error("failed to count existing tasks",
			slog.String("error", redact.Error(err)))
		return false
	}

	log.Info("database initialized", slog.Int64("existing_tasks", count))
	return true
}

// MigrateUp applies every pending embedded migration.
func MigrateUp(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	return withGoose(logger, func() error {
		if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		return nil
	})
}

// MigrationStatus logs the applied/pending state of each embedded migration.
func MigrationStatus(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	return withGoose(logger, func() error {
		if err := goose.StatusContext(ctx, db, migrationsDir); err != nil {
			return fmt.Errorf("failed to get migration status: %w", err)
		}
		return nil
	})
}

// MigrationVersion returns the version of the most recently applied migration.
func MigrationVersion(ctx context.Context, db *sql.DB, logger *slog.Logger) (int64, error) {
	var version int64
	err := withGoose(logger, func() error {
		v, err := goose.GetDBVersionContext(ctx, db)
		if err != nil {
			return fmt.Errorf("failed to get migration version: %w", err)
		}
		version = v
		return nil
	})
	return version, err
}

func withGoose(logger *slog.Logger, fn func() error) error {
	if logger == nil {
		logger = slog.Default()
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationFS)
	defer goose.SetBaseFS(nil)

	goose.SetTableName(MigrationTableName)
	goose.SetLogger(&slogGooseLogger{logger: logger})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	return fn()
}

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf forwards goose progress messages at info level.
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)), slog.String("source", "goose"))
}

// Fatalf logs at error level without exiting; the failing call returns an
// error to its caller.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), slog.String("source", "goose"))
}
