package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/sethvargo/go-retry"
)

// Fallbacks used when the configuration carries non-positive values.
const (
	DefaultMaxAttempts    = 5
	DefaultRetryDelay     = 2 * time.Second
	DefaultConnectTimeout = 5 * time.Second
)

// OpenFunc opens a database handle for dsn and verifies that it is reachable.
// A returned handle must be usable; on failure no handle is returned.
type OpenFunc func(ctx context.Context, dsn string) (*sql.DB, error)

// Connector establishes the PostgreSQL connection pool, retrying failed
// attempts with a constant delay between them.
type Connector struct {
	cfg    config.DatabaseConfig
	logger *slog.Logger
	open   OpenFunc
}

// NewConnector creates a Connector for the given database settings.
// If logger is nil, the default logger is used.
func NewConnector(cfg config.DatabaseConfig, logger *slog.Logger) *Connector {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Connector{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "db_connector")),
	}
	c.open = c.openAndPing
	return c
}

// Connect opens the pool, making up to MaxRetries attempts in total and
// waiting RetryDelay between consecutive attempts. It returns as soon as an
// attempt succeeds. When every attempt fails, the error of the last attempt
// is returned wrapped. Cancelling ctx aborts the wait between attempts.
func (c *Connector) Connect(ctx context.Context) (*sql.DB, error) {
	maxAttempts := c.cfg.MaxRetries
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	delay := c.cfg.RetryDelay
	if delay <= 0 {
		delay = DefaultRetryDelay
	}

	base := retry.WithMaxRetries(uint64(maxAttempts-1), retry.NewConstant(delay))
	backoff := retry.BackoffFunc(func() (time.Duration, bool) {
		next, stop := base.Next()
		if !stop {
			c.logger.Info("waiting before retrying database connection",
				slog.Duration("delay", next))
		}
		return next, stop
	})

	dsn := c.cfg.URL()
	target := c.cfg.SafeString()

	var (
		db      *sql.DB
		attempt int
	)
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		conn, err := c.open(ctx, dsn)
		if err == nil && conn == nil {
			err = errors.New("opener returned no database handle")
		}
		if err != nil {
			c.logger.Warn("database connection attempt failed",
				slog.Int("attempt", attempt),
				slog.Int("max_attempts", maxAttempts),
				slog.String("target", target),
				slog.String("error", redact.Error(err)))
			return retry.RetryableError(err)
		}

		c.logger.Info("database connection established",
			slog.Int("attempt", attempt),
			slog.String("target", target))
		db = conn
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, fmt.Errorf("database connection canceled after %d attempts: %w", attempt, err)
		}
		c.logger.Error("giving up on database connection",
			slog.Int("attempts", attempt),
			slog.String("target", target),
			slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", attempt, err)
	}

	c.configurePool(db)
	return db, nil
}

func (c *Connector) configurePool(db *sql.DB) {
	if c.cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.cfg.MaxOpenConns)
	}
	if c.cfg.MaxIdleConns >= 0 {
		db.SetMaxIdleConns(c.cfg.MaxIdleConns)
	}
	if c.cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(c.cfg.ConnMaxLifetime)
	}
}

// openAndPing is the default OpenFunc: it opens a pgx-backed handle and pings
// it within the configured connect timeout.
func (c *Connector) openAndPing(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	timeout := c.cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}
