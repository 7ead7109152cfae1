package dialect

import (
	"context"
	"database/sql/driver"
)

// SQLite is the name of the single dialect strata speaks.
const SQLite = "sqlite"

// ExecQuerier wraps the Exec and Query operations of a database handle.
//
// The v argument of Exec is either nil or a *sql.Result. The v argument
// of Query is a *sql.Rows wrapper owned by the caller.
type ExecQuerier interface {
	// Exec executes a statement that does not return rows.
	Exec(ctx context.Context, query string, args, v any) error
	// Query executes a statement that returns rows.
	Query(ctx context.Context, query string, args, v any) error
}

// Driver is the interface the generated code executes against.
type Driver interface {
	ExecQuerier
	// Tx starts and returns a new transaction.
	Tx(context.Context) (Tx, error)
	// Close closes the underlying connection.
	Close() error
	// Dialect returns the dialect name.
	Dialect() string
}

// Tx is the transaction counterpart of Driver.
type Tx interface {
	ExecQuerier
	driver.Tx
}

// nopTx implements driver.Tx with no-op Commit and Rollback.
type nopTx struct {
	Driver
}

func (nopTx) Commit() error   { return nil }
func (nopTx) Rollback() error { return nil }

// NopTx returns a Tx whose Commit and Rollback do nothing, backed by the
// given driver. Useful for callers that run statement-at-a-time.
func NopTx(d Driver) Tx {
	return nopTx{d}
}

// Wrapper is implemented by drivers that decorate another driver.
type Wrapper interface {
	Unwrap() Driver
}
