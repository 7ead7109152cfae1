// Package dialect describes the embedded SQL dialect strata generates
// code for, and the database abstraction the generated code runs on.
//
// The dialect is SQLite-flavored. Unlike general-purpose ORMs there is a
// single dialect constant:
//
//	dialect.SQLite = "sqlite"
//
// # Driver Interface
//
// Generated clients execute their statements through the Driver interface:
//
//	type Driver interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	    Tx(ctx context.Context) (Tx, error)
//	    Close() error
//	    Dialect() string
//	}
//
// The Tx interface pairs ExecQuerier with Commit and Rollback.
//
// # Reserved Words
//
// The package also carries the dialect's reserved-word table, shared by
// the tokenizer (keyword classification) and the SQL builder (identifier
// quoting):
//
//	dialect.ReservedWord("order") // true
//
// # Sub-packages
//
//   - dialect/sql: typed expression algebra, SQL rendering, and the
//     database/sql backed driver implementation.
package dialect
