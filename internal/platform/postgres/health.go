package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/phrazzld/task-api/internal/store"
)

// HealthProbe checks database reachability with a trivial query.
type HealthProbe struct {
	db      store.DBTX
	timeout time.Duration
}

// NewHealthProbe creates a probe that runs SELECT 1 against db.
// A non-positive timeout falls back to DefaultConnectTimeout.
func NewHealthProbe(db store.DBTX, timeout time.Duration) *HealthProbe {
	if db == nil {
		panic("db cannot be nil")
	}
	if timeout <= 0 {
		timeout = DefaultConnectTimeout
	}
	return &HealthProbe{db: db, timeout: timeout}
}

// Check returns nil when the database answers SELECT 1.
func (p *HealthProbe) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var one int
	if err := p.db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}
