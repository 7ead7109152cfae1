// Package schema holds the typed in-memory model produced from
// definition files: tables with their columns and constraints, named
// queries with their classified placeholders, and the post-parse
// validation that checks uniqueness and foreign-key resolution.
package schema
