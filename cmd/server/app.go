package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/task-api/internal/api"
	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/cache"
	"github.com/phrazzld/task-api/internal/platform/postgres"
	"github.com/phrazzld/task-api/internal/store"
)

// cachePingTimeout bounds the reachability check made when a Redis address
// is configured.
const cachePingTimeout = 2 * time.Second

// application holds the dependencies shared by the HTTP layer.
type application struct {
	config    *config.Config
	logger    *slog.Logger
	db        *sql.DB
	taskStore store.TaskStore
	health    api.HealthChecker
	cache     *cache.RedisBackend
	listCache *cache.CachedTaskStore
}

// newApplication waits out the startup delay, connects to the database with
// retries, initializes the schema and wires the stores. A failed connection
// is fatal; a failed schema initialization is logged and serving continues.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	if err := waitStartupDelay(ctx, cfg.Startup.Delay, logger); err != nil {
		return nil, err
	}

	db, err := postgres.NewConnector(cfg.Database, logger).Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if !postgres.EnsureSchema(ctx, db, logger) {
		logger.Warn("continuing without a verified schema")
	}

	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
		health: postgres.NewHealthProbe(db, cfg.Database.ConnectTimeout),
	}

	var taskStore store.TaskStore = postgres.NewPostgresTaskStore(db, logger)
	if cfg.Cache.Enabled() {
		backend, err := connectCache(ctx, cfg.Cache, logger)
		if err != nil {
			logger.Warn("task list cache disabled",
				slog.String("redis_addr", cfg.Cache.RedisAddr),
				slog.String("error", err.Error()))
		} else {
			app.cache = backend
			app.listCache = cache.NewCachedTaskStore(taskStore, backend, cfg.Cache.TTL, logger)
			taskStore = app.listCache
		}
	}
	app.taskStore = taskStore

	return app, nil
}

// connectCache builds the Redis backend and verifies it answers a ping.
func connectCache(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) (*cache.RedisBackend, error) {
	backend := cache.NewRedisBackend(cache.NewRedisClient(cfg), cache.DefaultPrefix)

	pingCtx, cancel := context.WithTimeout(ctx, cachePingTimeout)
	defer cancel()

	if err := backend.Ping(pingCtx); err != nil {
		_ = backend.Close()
		return nil, err
	}

	logger.Info("task list cache enabled",
		slog.String("redis_addr", cfg.RedisAddr),
		slog.Duration("ttl", cfg.TTL))
	return backend, nil
}

// waitStartupDelay blocks for delay, giving the database time to come up.
// It returns early with the context error if ctx is canceled.
func waitStartupDelay(ctx context.Context, delay time.Duration, logger *slog.Logger) error {
	if delay <= 0 {
		return nil
	}

	logger.Info("waiting before connecting to database", slog.Duration("delay", delay))

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("startup delay interrupted: %w", ctx.Err())
	}
}

// cleanup releases the database pool and the cache client.
func (app *application) cleanup() {
	if app.listCache != nil {
		stats := app.listCache.Stats()
		app.logger.Info("task list cache stats",
			slog.Uint64("hits", stats.Hits),
			slog.Uint64("misses", stats.Misses),
			slog.Uint64("errors", stats.Errors))
	}
	if app.cache != nil {
		if err := app.cache.Close(); err != nil {
			app.logger.Error("failed to close cache client", slog.String("error", err.Error()))
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", slog.String("error", err.Error()))
		} else {
			app.logger.Info("database connection closed")
		}
	}
}
