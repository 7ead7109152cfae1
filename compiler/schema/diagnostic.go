package schema

import "fmt"

// Severity ranks a diagnostic. Only CriticalError aborts code
// generation; the consumer still obtains the partial schema for
// tooling.
type Severity uint8

const (
	SeverityWarning Severity = iota
	SeverityError
	SeverityCritical
)

var severityNames = [...]string{
	SeverityWarning:  "warning",
	SeverityError:    "error",
	SeverityCritical: "criticalError",
}

// String returns the severity name.
func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return fmt.Sprintf("severity(%d)", s)
}

// DiagKind identifies one class of parser or schema diagnostic. The
// set is closed.
type DiagKind uint8

const (
	// UnexpectedToken marks a required token kind met by another.
	UnexpectedToken DiagKind = iota
	// DuplicateTable marks a table name declared twice.
	DuplicateTable
	// DuplicateColumn marks a column name declared twice in one table.
	DuplicateColumn
	// UnresolvedReference marks a foreign key naming an unknown target.
	UnresolvedReference
	// InvalidPlaceholder marks a $name with no defined interpretation.
	InvalidPlaceholder
	// NoPrimaryKey marks WITHOUT ROWID on a table without one.
	NoPrimaryKey
	// LexError wraps a tokenizer diagnostic.
	LexError
)

var diagKindNames = [...]string{
	UnexpectedToken:     "unexpected token",
	DuplicateTable:      "duplicate table",
	DuplicateColumn:     "duplicate column",
	UnresolvedReference: "unresolved reference",
	InvalidPlaceholder:  "invalid placeholder",
	NoPrimaryKey:        "missing primary key",
	LexError:            "lex error",
}

// String returns the diagnostic class name.
func (k DiagKind) String() string {
	if int(k) < len(diagKindNames) {
		return diagKindNames[k]
	}
	return fmt.Sprintf("diagkind(%d)", k)
}

// Diagnostic is one problem found while parsing or validating a
// definition file. Parsing never aborts; it accumulates diagnostics
// and continues, so one run reports as many problems as possible.
type Diagnostic struct {
	Severity Severity
	Kind     DiagKind
	// Offset is the byte offset in the source file, -1 when the
	// diagnostic has no source position.
	Offset  int
	Message string
}

// Error returns the diagnostic string.
func (d *Diagnostic) Error() string {
	if d.Offset >= 0 {
		return fmt.Sprintf("schema: %s at offset %d: %s", d.Kind, d.Offset, d.Message)
	}
	return fmt.Sprintf("schema: %s: %s", d.Kind, d.Message)
}

// HasCritical reports whether any diagnostic carries the critical
// severity.
func HasCritical(diags []*Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityCritical {
			return true
		}
	}
	return false
}
