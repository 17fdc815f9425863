package mocks

import (
	"context"
	"sync/atomic"
)

// MockHealthChecker implements api.HealthChecker for testing
type MockHealthChecker struct {
	CheckFn func(ctx context.Context) error
	Err     error

	calls atomic.Int64
}

// Check implements the HealthChecker interface
func (m *MockHealthChecker) Check(ctx context.Context) error {
	m.calls.Add(1)
	if m.CheckFn != nil {
		return m.CheckFn(ctx)
	}
	return m.Err
}

// Calls returns how many times Check was invoked.
func (m *MockHealthChecker) Calls() int64 {
	return m.calls.Load()
}
