package parse

import (
	"github.com/syssam/strata/compiler/lex"
	"github.com/syssam/strata/compiler/schema"
)

// parseNamedQuery parses one labeled statement:
//
//	label: SELECT ... ;
//
// The SQL text between placeholders is preserved verbatim from the
// source, so the generated code reproduces the author's spelling and
// spacing exactly. Placeholders are classified from their syntactic
// position: after IN they expand to a list, a $name inside an ORDER BY
// clause or standing alone after WHERE/AND/OR splices a dynamic
// clause, and everything else binds a single value.
func (p *parser) parseNamedQuery() {
	label := p.advance() // identifier
	p.advance()          // colon
	q := &schema.NamedQuery{Label: label.Value, Pos: label.Span.Start}

	segStart := p.cur().Span.Start
	flush := func(end int) {
		if end > segStart {
			q.Fragments = append(q.Fragments, schema.LiteralSQL{Text: p.src[segStart:end]})
		}
	}

	var (
		fromTable string
		wantTable bool
		inOrderBy bool
	)
	for !p.atEnd() && p.cur().Kind != lex.Semicolon {
		tok := p.cur()
		switch tok.Kind {
		case lex.Keyword:
			switch {
			case tok.Is("BY") && p.prev(1).Is("ORDER"):
				inOrderBy = true
			case tok.Is("ASC"), tok.Is("DESC"), tok.Is("NULLS"), tok.Is("FIRST"), tok.Is("LAST"):
				// still inside the ORDER BY term list
			default:
				inOrderBy = false
			}
			wantTable = tok.Is("FROM")
		case lex.Identifier:
			if wantTable && fromTable == "" {
				fromTable = tok.Value
			}
			wantTable = false
		case lex.Positional, lex.Named:
			flush(tok.Span.Start)
			q.Fragments = append(q.Fragments, p.classifyPlaceholder(q, tok, fromTable, inOrderBy))
			segStart = tok.Span.End
			wantTable = false
		default:
			wantTable = false
		}
		p.advance()
	}
	flush(p.cur().Span.Start)
	if p.cur().Kind != lex.Semicolon {
		p.reportToken(p.cur(), "expected ; after query %q", q.Label)
	} else {
		p.advance()
	}
	p.schema.Queries = append(p.schema.Queries, q)
}

// prev returns the token n positions before the cursor, or the first
// token when looking past the beginning.
func (p *parser) prev(n int) lex.Token {
	if p.pos-n < 0 {
		return p.tokens[0]
	}
	return p.tokens[p.pos-n]
}

// classifyPlaceholder interprets one placeholder token from its
// position in the query. The cursor still points at the token.
func (p *parser) classifyPlaceholder(q *schema.NamedQuery, tok lex.Token, fromTable string, inOrderBy bool) schema.Fragment {
	if p.prev(1).Is("IN") {
		return schema.InList{Name: tok.Value}
	}
	if tok.Kind == lex.Positional {
		return schema.Positional{Index: tok.Index}
	}
	if inOrderBy {
		return schema.DynamicClause{Name: tok.Value, Kind: schema.ClauseOrderBy}
	}
	prev := p.prev(1)
	if (prev.Is("WHERE") || prev.Is("AND") || prev.Is("OR")) && !isComparison(p.peek(1)) {
		return schema.DynamicClause{Name: tok.Value, Kind: schema.ClausePredicate}
	}
	vp := schema.ValueParam{Name: tok.Value}
	if table, column, ok := p.comparedColumn(fromTable); ok {
		p.pending = append(p.pending, pendingType{
			query:    q,
			fragment: len(q.Fragments),
			table:    table,
			column:   column,
		})
	}
	return vp
}

// comparedColumn looks back from the cursor for a "column op" or
// "table.column op" pattern and returns the column the placeholder is
// compared against.
func (p *parser) comparedColumn(fromTable string) (table, column string, ok bool) {
	if !isComparison(p.prev(1)) || p.prev(2).Kind != lex.Identifier {
		return "", "", false
	}
	column = p.prev(2).Value
	if p.prev(3).Kind == lex.Dot && p.prev(4).Kind == lex.Identifier {
		return p.prev(4).Value, column, true
	}
	if fromTable == "" {
		return "", "", false
	}
	return fromTable, column, true
}

// isComparison reports whether the token is a binary comparison
// operator, the position in which a value placeholder binds.
func isComparison(t lex.Token) bool {
	switch t.Kind {
	case lex.Equal, lex.NotEqual, lex.Less, lex.LessEqual, lex.Greater, lex.GreaterEqual:
		return true
	}
	return t.Is("LIKE") || t.Is("GLOB") || t.Is("MATCH")
}

// resolveValueTypes runs after the whole file is parsed and fills in
// the expected type of each value placeholder, so queries may precede
// the tables they read.
func (p *parser) resolveValueTypes() {
	for _, pt := range p.pending {
		tbl, ok := p.schema.Table(pt.table)
		if !ok {
			continue
		}
		col, ok := tbl.Column(pt.column)
		if !ok {
			continue
		}
		vp := pt.query.Fragments[pt.fragment].(schema.ValueParam)
		vp.Type = col.Type
		pt.query.Fragments[pt.fragment] = vp
	}
}
