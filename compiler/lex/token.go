package lex

import (
	"fmt"
	"strings"
)

// Kind classifies a token. The set is closed.
type Kind uint8

const (
	// EOF terminates every token stream, regardless of diagnostics.
	EOF Kind = iota

	// Punctuation.
	LeftParen
	RightParen
	Comma
	Dot
	Plus
	Minus
	Star
	Slash
	Less
	LessEqual
	Greater
	GreaterEqual
	Equal
	NotEqual
	Semicolon
	Colon

	// Literals.
	Number
	String

	Identifier
	Keyword

	// Positional marks a "?" or "?N" placeholder.
	Positional
	// Named marks a "$name", ":name" or "@name" placeholder.
	Named
)

var kindNames = map[Kind]string{
	EOF:          "eof",
	LeftParen:    "(",
	RightParen:   ")",
	Comma:        ",",
	Dot:          ".",
	Plus:         "+",
	Minus:        "-",
	Star:         "*",
	Slash:        "/",
	Less:         "<",
	LessEqual:    "<=",
	Greater:      ">",
	GreaterEqual: ">=",
	Equal:        "=",
	NotEqual:     "!=",
	Semicolon:    ";",
	Colon:        ":",
	Number:       "number",
	String:       "string",
	Identifier:   "identifier",
	Keyword:      "keyword",
	Positional:   "?",
	Named:        "$name",
}

// String returns a short printable name of the kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Span is a half-open byte range in the source, together with the text
// it covers. The eof token carries a zero-length span at len(source).
type Span struct {
	Start, End int
	Lexeme     string
}

// Token is one lexical unit of the dialect.
type Token struct {
	Kind Kind
	Span Span

	// Value holds the decoded payload: a string literal's content with
	// quote escapes resolved, a quoted identifier's name, a named
	// placeholder's name, or a numeric literal's canonical form.
	Value string
	// Binary marks string literals written in the x'...' form.
	Binary bool
	// Index is the explicit index of a "?N" placeholder, zero when the
	// placeholder is unnumbered.
	Index int
}

// Is reports whether the token is the given keyword. The comparison is
// case-insensitive; it is false for non-keyword tokens.
func (t Token) Is(keyword string) bool {
	return t.Kind == Keyword && strings.EqualFold(t.Span.Lexeme, keyword)
}

// IsIdent reports whether the token is an identifier (bare or quoted)
// with the given name, compared case-insensitively.
func (t Token) IsIdent(name string) bool {
	return t.Kind == Identifier && strings.EqualFold(t.Value, name)
}

// Text returns the token's preferred textual form: the decoded value
// when one exists, the raw lexeme otherwise.
func (t Token) Text() string {
	if t.Value != "" {
		return t.Value
	}
	return t.Span.Lexeme
}
