package gen

import (
	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"

	"github.com/syssam/strata/compiler/schema"
	"github.com/syssam/strata/schema/field"
)

// Import paths of the runtime packages the generated code depends on.
const (
	sqlPkg   = "github.com/syssam/strata/dialect/sql"
	fieldPkg = "github.com/syssam/strata/schema/field"
)

// Config carries the knobs of one generation run.
type Config struct {
	// Package is the package name of the generated files.
	Package string
	// OutDir is the directory the files are written to.
	OutDir string
	// Workers bounds the number of files generated concurrently.
	// Zero means one worker per CPU.
	Workers int
	// TextTime switches the generated clients to the text datetime
	// serializer instead of integer milliseconds.
	TextTime bool
}

// Generator emits Go source from a parsed schema.
type Generator struct {
	cfg    Config
	schema *schema.Schema
}

// NewGenerator validates the inputs and returns a generator. A schema
// with critical diagnostics is refused with a SchemaError; warnings
// and plain errors do not block generation.
func NewGenerator(cfg Config, s *schema.Schema, diags []*schema.Diagnostic) (*Generator, error) {
	if cfg.Package == "" || cfg.OutDir == "" {
		return nil, ErrMissingConfig
	}
	if schema.HasCritical(diags) {
		return nil, &SchemaError{Diagnostics: diags}
	}
	return &Generator{cfg: cfg, schema: s}, nil
}

var rules = inflect.NewDefaultRuleset()

// fieldName maps a column name to its exported struct field name.
func fieldName(column string) string {
	return rules.Camelize(column)
}

// paramName maps a placeholder name to a Go parameter name. An empty
// name (an anonymous placeholder) maps to the empty string.
func paramName(name string) string {
	if name == "" {
		return ""
	}
	return rules.CamelizeDownFirst(name)
}

// typeIdent returns the field package constant naming t.
func typeIdent(t field.Type) string {
	switch t {
	case field.TypeInt:
		return "TypeInt"
	case field.TypeFloat:
		return "TypeFloat"
	case field.TypeString:
		return "TypeString"
	case field.TypeBytes:
		return "TypeBytes"
	case field.TypeBool:
		return "TypeBool"
	case field.TypeTime:
		return "TypeTime"
	default:
		return "TypeInvalid"
	}
}

// goType returns the Go type of the struct field generated for c.
// Nullable columns become pointers, except blobs, whose slice type
// already has a null state.
func goType(c *schema.Column) jen.Code {
	base := baseType(c.Type)
	if c.Nullable && c.Type != field.TypeBytes && c.Type != field.TypeInvalid {
		return jen.Op("*").Add(base)
	}
	return base
}

func baseType(t field.Type) jen.Code {
	switch t {
	case field.TypeInt:
		return jen.Int64()
	case field.TypeFloat:
		return jen.Float64()
	case field.TypeString:
		return jen.String()
	case field.TypeBytes:
		return jen.Index().Byte()
	case field.TypeBool:
		return jen.Bool()
	case field.TypeTime:
		return jen.Qual("time", "Time")
	default:
		return jen.Id("any")
	}
}
