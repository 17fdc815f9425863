// Package main implements the entry point for the task API server, which
// exposes CRUD operations over tasks stored in PostgreSQL.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "", "Run a migration command instead of serving: up, status or version")
	flag.Parse()

	if err := run(context.Background(), *migrateCmd); err != nil {
		slog.Error("task API exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run loads configuration, sets up logging and either executes a migration
// command or serves HTTP until shutdown.
func run(ctx context.Context, migrateCmd string) error {
	cfg, err := initializeApp()
	if err != nil {
		return err
	}

	log := slog.Default().With(slog.String("instance_id", uuid.NewString()))

	if migrateCmd != "" {
		return handleMigrations(ctx, cfg, log, migrateCmd)
	}

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return err
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}

// initializeApp loads configuration and installs the configured logger as
// the slog default.
func initializeApp() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if _, err := logger.Setup(cfg.Server); err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("server configuration loaded",
		slog.String("addr", cfg.Server.Addr()),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database", cfg.Database.SafeString()),
		slog.Bool("cache_enabled", cfg.Cache.Enabled()),
		slog.Bool("strict_not_found", cfg.API.StrictNotFound))

	return cfg, nil
}
