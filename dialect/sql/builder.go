package sql

import (
	"strings"

	"github.com/syssam/strata/dialect"
	"github.com/syssam/strata/schema/field"
)

// Param is one bound statement parameter: the Go value together with the
// SQL type it is bound as.
type Param struct {
	Value any
	Type  field.Type
}

// Builder accumulates SQL text and the ordered parameter vector of one
// render. A Builder is created per render and must not be shared between
// goroutines; independent renders use independent builders.
//
// Parameters are appended in emission order, so the i-th "?" in the text
// always corresponds to the i-th entry of the vector.
type Builder struct {
	sb         strings.Builder
	args       []Param
	serializer field.ValueSerializer
}

// NewBuilder returns an empty Builder. Time values are serialized as
// integer milliseconds unless SetSerializer installs another strategy.
func NewBuilder() *Builder {
	return &Builder{serializer: field.UnixMilliSerializer{}}
}

// SetSerializer installs the strategy used by Args to convert bound
// values into driver values. It returns the builder for chaining.
func (b *Builder) SetSerializer(s field.ValueSerializer) *Builder {
	b.serializer = s
	return b
}

// WriteString appends raw SQL text.
func (b *Builder) WriteString(s string) {
	b.sb.WriteString(s)
}

// WriteByte appends a single byte of SQL text.
func (b *Builder) WriteByte(c byte) {
	b.sb.WriteByte(c)
}

// Pad appends a single space unless the buffer is empty or already ends
// in a space, an opening parenthesis or a dot.
func (b *Builder) Pad() {
	s := b.sb.String()
	if s == "" {
		return
	}
	switch s[len(s)-1] {
	case ' ', '(', '.':
	default:
		b.sb.WriteByte(' ')
	}
}

// Arg appends a "?" placeholder bound to v with type t and returns the
// zero-based slot index.
func (b *Builder) Arg(v any, t field.Type) int {
	b.sb.WriteByte('?')
	b.args = append(b.args, Param{Value: v, Type: t})
	return len(b.args) - 1
}

// Ident appends name as a SQL identifier. Names that collide with a
// reserved word, or that contain characters outside the bare-identifier
// set, are wrapped in double quotes with embedded quotes doubled.
func (b *Builder) Ident(name string) {
	if needsQuoting(name) {
		b.sb.WriteByte('"')
		b.sb.WriteString(strings.ReplaceAll(name, `"`, `""`))
		b.sb.WriteByte('"')
		return
	}
	b.sb.WriteString(name)
}

func needsQuoting(name string) bool {
	if name == "" || dialect.ReservedWord(name) {
		return true
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return true
			}
		default:
			return true
		}
	}
	return false
}

// Len returns the current length of the SQL text.
func (b *Builder) Len() int {
	return b.sb.Len()
}

// String returns the SQL text accumulated so far.
func (b *Builder) String() string {
	return b.sb.String()
}

// Query returns the SQL text and the ordered parameter vector. The text
// contains exactly one "?" per vector entry, in matching order.
func (b *Builder) Query() (string, []Param) {
	return b.sb.String(), b.args
}

// Args returns the parameter vector converted into driver values through
// the builder's serializer.
func (b *Builder) Args() ([]any, error) {
	args := make([]any, len(b.args))
	for i, p := range b.args {
		v, err := b.serializer.Serialize(p.Value, p.Type)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}
