package postgres

import (
	"context"
	"database/sql"
	"errors"
)

// mockResult implements sql.Result for testing
type mockResult struct {
	rowsAffected int64
	err          error
}

func (m mockResult) LastInsertId() (int64, error) {
	return 0, errors.New("not supported")
}

func (m mockResult) RowsAffected() (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.rowsAffected, nil
}

// mockDBTX records exec calls and returns canned results.
// QueryRowContext cannot produce a usable *sql.Row without a driver, so
// code paths using it are covered by the integration tests.
type mockDBTX struct {
	execResult sql.Result
	execErr    error
	queryErr   error

	lastQuery string
	lastArgs  []any
}

func (m *mockDBTX) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	m.lastQuery = query
	m.lastArgs = args
	return m.execResult, m.execErr
}

func (m *mockDBTX) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	m.lastQuery = query
	m.lastArgs = args
	return nil, m.queryErr
}

func (m *mockDBTX) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return nil
}
