package db

import (
	"context"
	"database/sql"
)

// Executor is the subset of *sql.DB used by repositories, so they can run
// against a live pool or a transaction.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
