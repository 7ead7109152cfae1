package gen

import (
	"errors"
	"strings"

	"github.com/syssam/strata/compiler/schema"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidSchema indicates the schema carries critical diagnostics.
	ErrInvalidSchema = errors.New("strata: invalid schema")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("strata: missing configuration")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("strata: code generation failed")
)

// SchemaError reports that generation was refused because the parsed
// schema carries critical diagnostics.
type SchemaError struct {
	Diagnostics []*schema.Diagnostic
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("strata: schema has critical diagnostics")
	for _, d := range e.Diagnostics {
		if d.Severity == schema.SeverityCritical {
			b.WriteString("\n\t")
			b.WriteString(d.Error())
		}
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for SchemaError.
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}

// GenError represents a failure while generating one output file.
type GenError struct {
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenError) Error() string {
	var b strings.Builder
	b.WriteString("strata: generate ")
	b.WriteString(e.File)
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenError.
func (e *GenError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// IsInvalidSchema reports whether the error is a schema error.
func IsInvalidSchema(err error) bool {
	return errors.Is(err, ErrInvalidSchema)
}
