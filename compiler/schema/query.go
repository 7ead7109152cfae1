package schema

import "github.com/syssam/strata/schema/field"

// NamedQuery is a labeled statement from a definition file. Its body is
// kept as an ordered list of fragments alternating literal SQL with
// placeholders; the literal parts are forwarded verbatim at render
// time.
type NamedQuery struct {
	Label     string
	Fragments []Fragment
	// Pos is the byte offset of the label in its source file.
	Pos int
}

// Placeholders returns the query's placeholder fragments in order.
func (q *NamedQuery) Placeholders() []Placeholder {
	var ps []Placeholder
	for _, f := range q.Fragments {
		if p, ok := f.(Placeholder); ok {
			ps = append(ps, p)
		}
	}
	return ps
}

// Fragment is one piece of a named query: literal SQL or a placeholder.
type Fragment interface {
	fragment()
}

// Placeholder is a hole in a named query, resolved at call time to a
// bound parameter or an injected SQL fragment.
type Placeholder interface {
	Fragment
	// ParamName returns the placeholder's name, empty for anonymous
	// placeholders.
	ParamName() string
}

// LiteralSQL is verbatim statement text between placeholders.
type LiteralSQL struct {
	Text string
}

func (LiteralSQL) fragment() {}

// Positional is a bare "?" placeholder. Index carries the explicit N of
// the "?N" form, zero when unnumbered.
type Positional struct {
	Index int
}

func (Positional) fragment()         {}
func (Positional) ParamName() string { return "" }

// ValueParam is a named placeholder bound to a single value at call
// time, rendered as "?".
type ValueParam struct {
	Name string
	// Type is the expected SQL type when the surrounding statement
	// reveals one, TypeInvalid otherwise.
	Type field.Type
}

func (ValueParam) fragment()           {}
func (p ValueParam) ParamName() string { return p.Name }

// InList is an "IN ?" or "IN $name" placeholder. It expands at call
// time to a parenthesized list with one "?" per element.
type InList struct {
	// Name is empty for the anonymous "IN ?" form.
	Name string
}

func (InList) fragment()           {}
func (p InList) ParamName() string { return p.Name }

// ClauseKind distinguishes the two dynamic-clause roles.
type ClauseKind uint8

const (
	// ClausePredicate injects a rendered boolean predicate.
	ClausePredicate ClauseKind = iota
	// ClauseOrderBy injects a rendered ORDER BY tail. The clause text
	// is treated as opaque, so forms like NULLS LAST pass through
	// unchanged.
	ClauseOrderBy
)

// String returns the clause-kind name.
func (k ClauseKind) String() string {
	switch k {
	case ClausePredicate:
		return "predicate"
	case ClauseOrderBy:
		return "order_by"
	}
	return "unknown"
}

// DynamicClause is a placeholder whose value is itself rendered SQL
// supplied by the caller, not a bound value.
type DynamicClause struct {
	Name string
	Kind ClauseKind
}

func (DynamicClause) fragment()           {}
func (p DynamicClause) ParamName() string { return p.Name }
