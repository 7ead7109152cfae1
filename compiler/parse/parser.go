package parse

import (
	"fmt"
	"strings"

	"github.com/syssam/strata/compiler/lex"
	"github.com/syssam/strata/compiler/schema"
	"github.com/syssam/strata/schema/field"
)

// Parse tokenizes and parses one definition file and returns the schema
// together with all diagnostics. Parsing never aborts: on an
// unrecognized token the parser records a diagnostic, resynchronizes to
// the next top-level semicolon, and continues, so one run reports as
// many problems as possible.
func Parse(source string) (*schema.Schema, []*schema.Diagnostic) {
	tokens, lexErrs := lex.Tokenize(source)
	p := &parser{src: source, tokens: tokens}
	for _, e := range lexErrs {
		p.report(schema.SeverityError, schema.LexError, e.Offset, "%s", e.Message)
	}
	p.run()
	p.resolveValueTypes()
	p.diags = append(p.diags, schema.Validate(p.schema)...)
	return p.schema, p.diags
}

type parser struct {
	src    string
	tokens []lex.Token
	pos    int
	schema *schema.Schema
	diags  []*schema.Diagnostic

	// pending value-placeholder type resolutions, applied once every
	// table declaration has been parsed.
	pending []pendingType
}

// pendingType defers the type lookup of a value placeholder until the
// whole file is parsed, so queries may precede the tables they read.
type pendingType struct {
	query    *schema.NamedQuery
	fragment int
	table    string
	column   string
}

func (p *parser) run() {
	p.schema = &schema.Schema{}
	for !p.atEnd() {
		switch {
		case p.cur().Kind == lex.Identifier && p.peek(1).Kind == lex.Colon:
			p.parseNamedQuery()
		case p.cur().Is("CREATE"):
			p.parseCreateTable()
		default:
			p.reportToken(p.cur(), "expected CREATE TABLE or a labeled statement")
			p.resync()
		}
	}
}

func (p *parser) cur() lex.Token { return p.tokens[p.pos] }

func (p *parser) peek(n int) lex.Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+n]
}

func (p *parser) advance() lex.Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *parser) atEnd() bool { return p.cur().Kind == lex.EOF }

func (p *parser) report(sev schema.Severity, kind schema.DiagKind, offset int, format string, args ...any) {
	p.diags = append(p.diags, &schema.Diagnostic{
		Severity: sev,
		Kind:     kind,
		Offset:   offset,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (p *parser) reportToken(t lex.Token, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.report(schema.SeverityError, schema.UnexpectedToken, t.Span.Start, "%s, found %q", msg, t.Span.Lexeme)
}

// resync skips to the token after the next top-level semicolon.
func (p *parser) resync() {
	for !p.atEnd() {
		if p.advance().Kind == lex.Semicolon {
			return
		}
	}
}

// expectKeyword consumes the given keyword or reports and resyncs.
func (p *parser) expectKeyword(kw string) bool {
	if p.cur().Is(kw) {
		p.advance()
		return true
	}
	p.reportToken(p.cur(), "expected %s", kw)
	p.resync()
	return false
}

// identifier consumes an identifier token and returns its name.
func (p *parser) identifier(what string) (string, bool) {
	if p.cur().Kind == lex.Identifier {
		return p.advance().Value, true
	}
	p.reportToken(p.cur(), "expected %s", what)
	p.resync()
	return "", false
}

// parseCreateTable parses one CREATE TABLE statement:
//
//	CREATE TABLE name ( column_def (, column_def)* (, table_constraint)* )
//	    [WITHOUT ROWID] [AS "ClassName"] ;
func (p *parser) parseCreateTable() {
	start := p.cur().Span.Start
	p.advance() // CREATE
	if !p.expectKeyword("TABLE") {
		return
	}
	name, ok := p.identifier("table name")
	if !ok {
		return
	}
	t := &schema.Table{Name: name, Pos: start}
	if p.cur().Kind != lex.LeftParen {
		p.reportToken(p.cur(), "expected ( after table name")
		p.resync()
		return
	}
	p.advance()
	for {
		if !p.parseTableEntry(t) {
			return
		}
		if p.cur().Kind == lex.Comma {
			p.advance()
			continue
		}
		break
	}
	if p.cur().Kind != lex.RightParen {
		p.reportToken(p.cur(), "expected , or ) in table definition")
		p.resync()
		return
	}
	p.advance()
	if p.cur().Is("WITHOUT") {
		p.advance()
		if p.cur().IsIdent("ROWID") || p.cur().Is("ROWID") {
			p.advance()
			t.WithoutRowid = true
		} else {
			p.reportToken(p.cur(), "expected ROWID after WITHOUT")
			p.resync()
			return
		}
	}
	if p.cur().Is("AS") {
		p.advance()
		switch p.cur().Kind {
		case lex.Identifier, lex.String:
			t.MappedName = p.advance().Value
		default:
			p.reportToken(p.cur(), "expected quoted class name after AS")
			p.resync()
			return
		}
	}
	if p.cur().Kind != lex.Semicolon {
		p.reportToken(p.cur(), "expected ; after table definition")
		p.resync()
	} else {
		p.advance()
	}
	p.schema.Tables = append(p.schema.Tables, t)
}

// parseTableEntry parses one column definition or table constraint.
func (p *parser) parseTableEntry(t *schema.Table) bool {
	switch {
	case p.cur().Is("PRIMARY"):
		p.advance()
		if !p.expectKeyword("KEY") {
			return false
		}
		cols, ok := p.columnNameList()
		if !ok {
			return false
		}
		t.PrimaryKey = append(t.PrimaryKey, cols...)
		return true
	case p.cur().Is("UNIQUE"):
		p.advance()
		cols, ok := p.columnNameList()
		if !ok {
			return false
		}
		for _, name := range cols {
			if c, found := t.Column(name); found {
				c.Unique = true
			}
		}
		return true
	case p.cur().Is("FOREIGN"):
		p.advance()
		if !p.expectKeyword("KEY") {
			return false
		}
		start := p.cur().Span.Start
		cols, ok := p.columnNameList()
		if !ok {
			return false
		}
		if !p.expectKeyword("REFERENCES") {
			return false
		}
		ref, ok := p.parseReference()
		if !ok {
			return false
		}
		t.ForeignKeys = append(t.ForeignKeys, &schema.ForeignKey{
			Columns:    cols,
			RefTable:   ref.Table,
			RefColumns: ref.Columns,
			Pos:        start,
		})
		return true
	default:
		return p.parseColumnDef(t)
	}
}

// columnNameList parses a parenthesized, comma-separated identifier
// list.
func (p *parser) columnNameList() ([]string, bool) {
	if p.cur().Kind != lex.LeftParen {
		p.reportToken(p.cur(), "expected ( before column list")
		p.resync()
		return nil, false
	}
	p.advance()
	var cols []string
	for {
		name, ok := p.identifier("column name")
		if !ok {
			return nil, false
		}
		cols = append(cols, name)
		if p.cur().Kind == lex.Comma {
			p.advance()
			continue
		}
		break
	}
	if p.cur().Kind != lex.RightParen {
		p.reportToken(p.cur(), "expected ) after column list")
		p.resync()
		return nil, false
	}
	p.advance()
	return cols, true
}

// parseColumnDef parses: name sql_type (column_constraint)*.
func (p *parser) parseColumnDef(t *schema.Table) bool {
	if p.cur().Kind == lex.Named {
		p.report(schema.SeverityError, schema.InvalidPlaceholder, p.cur().Span.Start,
			"placeholder $%s has no interpretation inside a table definition", p.cur().Value)
		p.resync()
		return false
	}
	start := p.cur().Span.Start
	name, ok := p.identifier("column name")
	if !ok {
		return false
	}
	typeName, ok := p.identifier("column type")
	if !ok {
		return false
	}
	raw := typeName
	// A parenthesized size or precision is preserved textually.
	if p.cur().Kind == lex.LeftParen {
		open := p.advance()
		depth := 1
		for depth > 0 && !p.atEnd() {
			switch p.cur().Kind {
			case lex.LeftParen:
				depth++
			case lex.RightParen:
				depth--
			}
			p.advance()
		}
		raw += p.src[open.Span.Start:p.cur().Span.Start]
		raw = strings.TrimRight(raw, " \t\n\r")
	}
	typ, known := field.FromColumnType(typeName)
	if !known {
		p.report(schema.SeverityError, schema.UnexpectedToken, start, "unknown column type %q", typeName)
	}
	c := &schema.Column{Name: name, Type: typ, RawType: raw, Nullable: true, Pos: start}
	if !p.parseColumnConstraints(t, c) {
		return false
	}
	t.Columns = append(t.Columns, c)
	return true
}

func (p *parser) parseColumnConstraints(t *schema.Table, c *schema.Column) bool {
	for {
		switch {
		case p.cur().Is("PRIMARY"):
			p.advance()
			if !p.expectKeyword("KEY") {
				return false
			}
			if p.cur().Is("ASC") || p.cur().Is("DESC") {
				p.advance()
			}
			if p.cur().Is("AUTOINCREMENT") {
				p.advance()
				c.AutoIncrement = true
			}
			c.PrimaryKey = true
			c.Nullable = false
			t.PrimaryKey = append(t.PrimaryKey, c.Name)
		case p.cur().Is("NOT"):
			p.advance()
			if !p.expectKeyword("NULL") {
				return false
			}
			c.Nullable = false
		case p.cur().Is("UNIQUE"):
			p.advance()
			c.Unique = true
		case p.cur().Is("DEFAULT"):
			p.advance()
			expr, ok := p.parseDefaultExpr()
			if !ok {
				return false
			}
			c.Default = expr
		case p.cur().Is("REFERENCES"):
			p.advance()
			ref, ok := p.parseReference()
			if !ok {
				return false
			}
			c.References = ref
			t.ForeignKeys = append(t.ForeignKeys, &schema.ForeignKey{
				Columns:    []string{c.Name},
				RefTable:   ref.Table,
				RefColumns: ref.Columns,
				Pos:        c.Pos,
			})
		default:
			return true
		}
	}
}

// parseDefaultExpr consumes a DEFAULT expression and returns its source
// text: a literal, a signed number, a keyword constant like
// CURRENT_TIMESTAMP, or a balanced parenthesized expression.
func (p *parser) parseDefaultExpr() (string, bool) {
	switch cur := p.cur(); {
	case cur.Kind == lex.Number || cur.Kind == lex.String || cur.Kind == lex.Identifier:
		return p.advance().Span.Lexeme, true
	case cur.Kind == lex.Minus || cur.Kind == lex.Plus:
		sign := p.advance()
		if p.cur().Kind != lex.Number {
			p.reportToken(p.cur(), "expected number after sign in DEFAULT")
			p.resync()
			return "", false
		}
		return sign.Span.Lexeme + p.advance().Span.Lexeme, true
	case cur.Is("NULL") || cur.Is("CURRENT_TIME") || cur.Is("CURRENT_DATE") || cur.Is("CURRENT_TIMESTAMP"):
		return strings.ToUpper(p.advance().Span.Lexeme), true
	case cur.Kind == lex.LeftParen:
		open := p.advance()
		depth := 1
		for depth > 0 && !p.atEnd() {
			switch p.cur().Kind {
			case lex.LeftParen:
				depth++
			case lex.RightParen:
				depth--
			}
			p.advance()
		}
		return p.src[open.Span.Start:p.cur().Span.Start], true
	default:
		p.reportToken(cur, "expected expression after DEFAULT")
		p.resync()
		return "", false
	}
}

// parseReference parses: name ( cols ) [ON DELETE action] [ON UPDATE action].
func (p *parser) parseReference() (*schema.Reference, bool) {
	name, ok := p.identifier("referenced table")
	if !ok {
		return nil, false
	}
	cols, ok := p.columnNameList()
	if !ok {
		return nil, false
	}
	ref := &schema.Reference{Table: name, Columns: cols}
	for p.cur().Is("ON") {
		p.advance()
		var target *string
		switch {
		case p.cur().Is("DELETE"):
			target = &ref.OnDelete
		case p.cur().Is("UPDATE"):
			target = &ref.OnUpdate
		default:
			p.reportToken(p.cur(), "expected DELETE or UPDATE after ON")
			p.resync()
			return nil, false
		}
		p.advance()
		action, ok := p.parseAction()
		if !ok {
			return nil, false
		}
		*target = action
	}
	return ref, true
}

func (p *parser) parseAction() (string, bool) {
	switch cur := p.cur(); {
	case cur.Is("CASCADE") || cur.Is("RESTRICT"):
		return strings.ToUpper(p.advance().Span.Lexeme), true
	case cur.Is("SET"):
		p.advance()
		if p.cur().Is("NULL") || p.cur().Is("DEFAULT") {
			return "SET " + strings.ToUpper(p.advance().Span.Lexeme), true
		}
	case cur.Is("NO"):
		p.advance()
		if p.cur().Is("ACTION") {
			p.advance()
			return "NO ACTION", true
		}
	}
	p.reportToken(p.cur(), "expected referential action")
	p.resync()
	return "", false
}
