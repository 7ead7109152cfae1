// Package field defines the closed set of SQL storage types of the
// dialect and their mapping to Go value kinds.
package field

import (
	"fmt"
	"strings"
	"time"
)

// A Type is one SQL storage type of the dialect. The zero value is
// invalid; the set is closed.
type Type uint8

const (
	TypeInvalid Type = iota
	TypeInt
	TypeFloat
	TypeString
	TypeBytes
	TypeBool
	TypeTime
	endTypes
)

var typeNames = [...]string{
	TypeInvalid: "invalid",
	TypeInt:     "int",
	TypeFloat:   "float",
	TypeString:  "string",
	TypeBytes:   "bytes",
	TypeBool:    "bool",
	TypeTime:    "time",
}

// String returns the Go-facing name of the type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return fmt.Sprintf("invalid(%d)", t)
}

// Valid reports whether t is a member of the closed type set.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < endTypes
}

// Numeric reports whether t is stored as a number.
func (t Type) Numeric() bool {
	return t == TypeInt || t == TypeFloat
}

var columnTypes = [...]string{
	TypeInvalid: "",
	TypeInt:     "INTEGER",
	TypeFloat:   "REAL",
	TypeString:  "TEXT",
	TypeBytes:   "BLOB",
	TypeBool:    "BOOLEAN",
	TypeTime:    "DATETIME",
}

// ColumnType returns the SQL type name used in CREATE TABLE statements.
func (t Type) ColumnType() string {
	if t < endTypes {
		return columnTypes[t]
	}
	return ""
}

var goTypes = [...]string{
	TypeInvalid: "",
	TypeInt:     "int64",
	TypeFloat:   "float64",
	TypeString:  "string",
	TypeBytes:   "[]byte",
	TypeBool:    "bool",
	TypeTime:    "time.Time",
}

// GoType returns the canonical in-memory Go type for t.
func (t Type) GoType() string {
	if t < endTypes {
		return goTypes[t]
	}
	return ""
}

var nullTypes = [...]string{
	TypeInvalid: "",
	TypeInt:     "NullInt64",
	TypeFloat:   "NullFloat64",
	TypeString:  "NullString",
	TypeBytes:   "RawBytes",
	TypeBool:    "NullBool",
	TypeTime:    "NullTime",
}

// NullType returns the database/sql scanner type name for t, used by the
// generated scan helpers.
func (t Type) NullType() string {
	if t < endTypes {
		return nullTypes[t]
	}
	return ""
}

// columnAliases maps SQL type names, as they appear in schema files, to
// their Type. Size or precision suffixes like VARCHAR(40) are handled by
// the parser and do not reach this table.
var columnAliases = map[string]Type{
	"INT":       TypeInt,
	"INTEGER":   TypeInt,
	"TINYINT":   TypeInt,
	"SMALLINT":  TypeInt,
	"MEDIUMINT": TypeInt,
	"BIGINT":    TypeInt,
	"REAL":      TypeFloat,
	"DOUBLE":    TypeFloat,
	"FLOAT":     TypeFloat,
	"NUMERIC":   TypeFloat,
	"DECIMAL":   TypeFloat,
	"TEXT":      TypeString,
	"CHAR":      TypeString,
	"VARCHAR":   TypeString,
	"NCHAR":     TypeString,
	"NVARCHAR":  TypeString,
	"CLOB":      TypeString,
	"BLOB":      TypeBytes,
	"BOOL":      TypeBool,
	"BOOLEAN":   TypeBool,
	"DATE":      TypeTime,
	"DATETIME":  TypeTime,
	"TIMESTAMP": TypeTime,
}

// FromColumnType resolves a SQL type name to its Type. The match is
// case-insensitive. The second result is false for unknown names.
func FromColumnType(name string) (Type, bool) {
	t, ok := columnAliases[strings.ToUpper(name)]
	return t, ok
}

// Literal renders v as an inline SQL literal of type t, used for DEFAULT
// expressions. Strings are quoted with doubled inner quotes.
func (t Type) Literal(v any) string {
	switch t {
	case TypeString:
		s := fmt.Sprint(v)
		return "'" + strings.ReplaceAll(s, "'", "''") + "'"
	case TypeBool:
		if b, ok := v.(bool); ok && b {
			return "1"
		}
		return "0"
	case TypeTime:
		if tv, ok := v.(time.Time); ok {
			return fmt.Sprint(tv.UnixMilli())
		}
		return fmt.Sprint(v)
	default:
		return fmt.Sprint(v)
	}
}
