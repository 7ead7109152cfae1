package sql

import (
	"errors"
	"fmt"

	"github.com/syssam/strata/schema/field"
)

// ErrTypeMismatch is the sentinel every TypeMismatchError matches, so
// callers can test with errors.Is without inspecting the operand types.
var ErrTypeMismatch = errors.New("sql: operand type mismatch")

// TypeMismatchError is returned by an expression constructor whose
// operands do not satisfy its typing rule.
type TypeMismatchError struct {
	// Op is the SQL operator whose construction was rejected.
	Op string
	// Left and Right are the operand types. Right is TypeInvalid for
	// unary operators.
	Left, Right field.Type
	// Message overrides the default rendering when set.
	Message string
}

// Error returns the error string.
func (e *TypeMismatchError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("sql: %s %s", e.Op, e.Message)
	}
	if e.Right == field.TypeInvalid {
		return fmt.Sprintf("sql: operator %s rejects operand of type %s", e.Op, e.Left)
	}
	return fmt.Sprintf("sql: operator %s rejects operands %s, %s", e.Op, e.Left, e.Right)
}

// Is reports whether the target matches the type-mismatch sentinel.
func (e *TypeMismatchError) Is(err error) bool {
	return err == ErrTypeMismatch
}

// IsTypeMismatch reports whether err is a TypeMismatchError.
func IsTypeMismatch(err error) bool {
	return errors.Is(err, ErrTypeMismatch)
}
