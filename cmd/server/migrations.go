package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/postgres"
)

// Supported values of the -migrate flag.
const (
	migrateUp      = "up"
	migrateStatus  = "status"
	migrateVersion = "version"
)

// handleMigrations connects to the database and runs a single migration
// command. It is used from main() when the -migrate flag is set.
func handleMigrations(ctx context.Context, cfg *config.Config, logger *slog.Logger, migrateCmd string) error {
	if err := validateMigrateCommand(migrateCmd); err != nil {
		return err
	}

	db, err := postgres.NewConnector(cfg.Database, logger).Connect(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database connection", slog.String("error", err.Error()))
		}
	}()

	logger.Info("executing migration command", slog.String("command", migrateCmd))

	switch migrateCmd {
	case migrateUp:
		if err := postgres.MigrateUp(ctx, db, logger); err != nil {
			return fmt.Errorf("migration up failed: %w", err)
		}
	case migrateStatus:
		if err := postgres.MigrationStatus(ctx, db, logger); err != nil {
			return fmt.Errorf("migration status failed: %w", err)
		}
	case migrateVersion:
		version, err := postgres.MigrationVersion(ctx, db, logger)
		if err != nil {
			return fmt.Errorf("migration version failed: %w", err)
		}
		logger.Info("current schema version", slog.Int64("version", version))
	}

	return nil
}

func validateMigrateCommand(cmd string) error {
	switch cmd {
	case migrateUp, migrateStatus, migrateVersion:
		return nil
	default:
		return fmt.Errorf("unknown migration command %q: expected %s, %s or %s",
			cmd, migrateUp, migrateStatus, migrateVersion)
	}
}
