package schema

import (
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/syssam/strata/schema/field"
)

// Schema is the parsed content of one set of definition files: the
// declared tables, the named queries, and the table-to-struct bindings
// consumed by the code generator.
type Schema struct {
	Tables  []*Table
	Queries []*NamedQuery
}

// Table returns the declared table with the given name. Lookup is
// case-insensitive.
func (s *Schema) Table(name string) (*Table, bool) {
	for _, t := range s.Tables {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return nil, false
}

// Query returns the named query with the given label.
func (s *Schema) Query(label string) (*NamedQuery, bool) {
	for _, q := range s.Queries {
		if q.Label == label {
			return q, true
		}
	}
	return nil, false
}

// EntityBindings returns the mapping from each table to the struct name
// generated for it.
func (s *Schema) EntityBindings() map[string]string {
	bindings := make(map[string]string, len(s.Tables))
	for _, t := range s.Tables {
		bindings[t.Name] = t.EntityName()
	}
	return bindings
}

// Table is one CREATE TABLE declaration.
type Table struct {
	Name string
	// Columns in declaration order. Names are unique per table.
	Columns []*Column
	// PrimaryKey lists the primary-key column names, from either a
	// column constraint or a table constraint. Empty means the implicit
	// rowid key.
	PrimaryKey []string
	// WithoutRowid is set by the WITHOUT ROWID table option.
	WithoutRowid bool
	// ForeignKeys holds the table-level FOREIGN KEY constraints plus
	// one entry per column-level REFERENCES clause.
	ForeignKeys []*ForeignKey
	// MappedName is the class name attached with AS "Name", empty when
	// the declaration carries none.
	MappedName string
	// Pos is the byte offset of the declaration in its source file.
	Pos int
}

// Column returns the column with the given name. Lookup is
// case-insensitive.
func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return nil, false
}

// HasColumns reports whether every named column exists in the table.
func (t *Table) HasColumns(names []string) bool {
	for _, n := range names {
		if _, ok := t.Column(n); !ok {
			return false
		}
	}
	return true
}

var rules = inflect.NewDefaultRuleset()

// EntityName returns the struct name generated for the table: the
// mapped name when AS "Name" was given, the pascal-cased singular of
// the table name otherwise.
func (t *Table) EntityName() string {
	if t.MappedName != "" {
		return t.MappedName
	}
	return rules.Camelize(rules.Singularize(t.Name))
}

// Column is one column definition inside a table.
type Column struct {
	Name string
	Type field.Type
	// RawType preserves the declared SQL type text, including any
	// parenthesized size or precision such as VARCHAR(40).
	RawType string
	// Nullable is false once NOT NULL or PRIMARY KEY appears.
	Nullable bool
	// Default holds the DEFAULT expression text, empty when absent.
	Default string
	// PrimaryKey marks a column-level PRIMARY KEY constraint.
	PrimaryKey bool
	// AutoIncrement marks PRIMARY KEY AUTOINCREMENT.
	AutoIncrement bool
	// Unique marks a column-level UNIQUE constraint.
	Unique bool
	// References holds the column-level REFERENCES clause, nil when
	// absent.
	References *Reference
	// Pos is the byte offset of the definition in its source file.
	Pos int
}

// Reference is the target of a column-level REFERENCES clause.
type Reference struct {
	Table   string
	Columns []string
	// OnDelete and OnUpdate carry the referential actions verbatim,
	// e.g. "CASCADE" or "SET NULL". Empty when unspecified.
	OnDelete string
	OnUpdate string
}

// ForeignKey is a resolved or unresolved foreign-key constraint: the
// referencing columns and the referenced table and column tuple.
type ForeignKey struct {
	Columns    []string
	RefTable   string
	RefColumns []string
	// Pos is the byte offset of the constraint in its source file.
	Pos int
}
