// Package gen is the code generation back-end. It takes the parsed
// schema and emits one Go file per table plus a client file for the
// named queries: entity structs, table and column constants, typed
// column handles bound to the dialect/sql expression algebra, scan
// helpers, and one method per named query. Files are generated in
// parallel and run through goimports before they are written.
package gen
