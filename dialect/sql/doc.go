// Package sql provides the typed expression algebra of the dialect, the
// precedence-aware SQL emitter, and the database/sql-backed driver the
// generated code executes against.
//
// Expressions are immutable values constructed through typed helpers
// (Col, Bind, EQ, And, In, ...). Rendering an expression walks the tree
// through a Builder that accumulates SQL text together with the ordered
// parameter vector, parenthesizing sub-expressions only where operator
// precedence demands it:
//
//	eq, _ := sql.EQ(sql.Col("config", "config_key", field.TypeString), sql.Bind("k", field.TypeString))
//	text, params := sql.Render(eq)
//	// text   = `config.config_key = ?`
//	// params = [{k string}]
package sql
