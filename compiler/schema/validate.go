package schema

import (
	"fmt"
	"strings"
)

// Validate runs the post-parse schema checks and returns their
// diagnostics: table and column uniqueness, WITHOUT ROWID requiring a
// primary key, and foreign keys resolving to an existing table and a
// column tuple of matching arity.
func Validate(s *Schema) []*Diagnostic {
	var diags []*Diagnostic
	report := func(sev Severity, kind DiagKind, pos int, format string, args ...any) {
		diags = append(diags, &Diagnostic{
			Severity: sev,
			Kind:     kind,
			Offset:   pos,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	seenTables := make(map[string]struct{}, len(s.Tables))
	for _, t := range s.Tables {
		key := strings.ToLower(t.Name)
		if _, ok := seenTables[key]; ok {
			report(SeverityCritical, DuplicateTable, t.Pos, "table %q declared twice", t.Name)
		}
		seenTables[key] = struct{}{}

		seenColumns := make(map[string]struct{}, len(t.Columns))
		for _, c := range t.Columns {
			ck := strings.ToLower(c.Name)
			if _, ok := seenColumns[ck]; ok {
				report(SeverityCritical, DuplicateColumn, c.Pos, "column %q declared twice in table %q", c.Name, t.Name)
			}
			seenColumns[ck] = struct{}{}
		}

		if t.WithoutRowid && len(t.PrimaryKey) == 0 {
			report(SeverityCritical, NoPrimaryKey, t.Pos, "WITHOUT ROWID table %q requires a primary key", t.Name)
		}
		for _, pk := range t.PrimaryKey {
			if _, ok := t.Column(pk); !ok {
				report(SeverityCritical, UnresolvedReference, t.Pos, "primary key of %q names unknown column %q", t.Name, pk)
			}
		}

		for _, fk := range t.ForeignKeys {
			validateForeignKey(s, t, fk, report)
		}
	}
	return diags
}

func validateForeignKey(s *Schema, t *Table, fk *ForeignKey, report func(Severity, DiagKind, int, string, ...any)) {
	for _, col := range fk.Columns {
		if _, ok := t.Column(col); !ok {
			report(SeverityCritical, UnresolvedReference, fk.Pos, "foreign key of %q names unknown column %q", t.Name, col)
		}
	}
	target, ok := s.Table(fk.RefTable)
	if !ok {
		report(SeverityCritical, UnresolvedReference, fk.Pos, "foreign key of %q references unknown table %q", t.Name, fk.RefTable)
		return
	}
	if len(fk.RefColumns) != len(fk.Columns) {
		report(SeverityCritical, UnresolvedReference, fk.Pos,
			"foreign key of %q has %d columns but references %d", t.Name, len(fk.Columns), len(fk.RefColumns))
	}
	for _, col := range fk.RefColumns {
		if _, ok := target.Column(col); !ok {
			report(SeverityCritical, UnresolvedReference, fk.Pos,
				"foreign key of %q references unknown column %q.%q", t.Name, fk.RefTable, col)
		}
	}
}
