package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []Kind {
	ks := make([]Kind, len(tokens))
	for i, t := range tokens {
		ks[i] = t.Kind
	}
	return ks
}

func lexemes(tokens []Token) []string {
	ls := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t.Kind == EOF {
			continue
		}
		ls = append(ls, t.Span.Lexeme)
	}
	return ls
}

func TestTokenizeAlwaysEndsInEOF(t *testing.T) {
	t.Parallel()
	for _, src := range []string{"", "   ", "SELECT", "'unterminated", "0x", "!", "\x80\x80"} {
		tokens, _ := Tokenize(src)
		require.NotEmpty(t, tokens, "input %q", src)
		last := tokens[len(tokens)-1]
		assert.Equal(t, EOF, last.Kind, "input %q", src)
		assert.Equal(t, len(src), last.Span.Start, "input %q", src)
		assert.Equal(t, len(src), last.Span.End, "input %q", src)
	}
}

func TestPunctuation(t *testing.T) {
	t.Parallel()
	tokens, errs := Tokenize("( ) , . + - * / < <= > >= = != ; :")
	require.Empty(t, errs)
	assert.Equal(t, []Kind{
		LeftParen, RightParen, Comma, Dot, Plus, Minus, Star, Slash,
		Less, LessEqual, Greater, GreaterEqual, Equal, NotEqual,
		Semicolon, Colon, EOF,
	}, kinds(tokens))
}

func TestNumericLiterals(t *testing.T) {
	t.Parallel()
	tokens, errs := Tokenize("0x1F 12.5e+3 .25")
	require.Empty(t, errs)
	require.Equal(t, []Kind{Number, Number, Number, EOF}, kinds(tokens))
	assert.Equal(t, []string{"0x1F", "12.5e+3", ".25"}, lexemes(tokens))
}

func TestNumericEdgeCases(t *testing.T) {
	t.Parallel()
	tests := []struct {
		src    string
		lexeme string
	}{
		{"42", "42"},
		{"3.", "3."},
		{".5e-3", ".5e-3"},
		{"1E9", "1E9"},
		{"0xdeadBEEF", "0xdeadBEEF"},
		{"0", "0"},
	}
	for _, tt := range tests {
		tokens, errs := Tokenize(tt.src)
		require.Empty(t, errs, "input %q", tt.src)
		require.Equal(t, []Kind{Number, EOF}, kinds(tokens), "input %q", tt.src)
		assert.Equal(t, tt.lexeme, tokens[0].Span.Lexeme)
		assert.Equal(t, tt.lexeme, tokens[0].Value)
	}
}

func TestNumericDiagnostics(t *testing.T) {
	t.Parallel()
	// Hex marker without digits.
	tokens, errs := Tokenize("0x")
	require.Len(t, errs, 1)
	assert.Equal(t, ExpectedDigit, errs[0].Kind)
	require.Equal(t, []Kind{Number, EOF}, kinds(tokens), "best-effort token is still emitted")

	// Exponent marker without digits.
	tokens, errs = Tokenize("1e+")
	require.Len(t, errs, 1)
	assert.Equal(t, ExpectedDigit, errs[0].Kind)
	assert.Equal(t, []Kind{Number, EOF}, kinds(tokens))
	assert.Equal(t, "1e+", tokens[0].Span.Lexeme)
}

func TestDotWithoutDigitIsPunctuation(t *testing.T) {
	t.Parallel()
	tokens, errs := Tokenize("config.key")
	require.Empty(t, errs)
	// KEY is a reserved word, so the qualified part lexes as a keyword.
	require.Equal(t, []Kind{Identifier, Dot, Keyword, EOF}, kinds(tokens))
}

func TestStringLiteral(t *testing.T) {
	t.Parallel()
	tokens, errs := Tokenize("'it''s'")
	require.Empty(t, errs)
	require.Equal(t, []Kind{String, EOF}, kinds(tokens))
	assert.Equal(t, "it's", tokens[0].Value)
	assert.False(t, tokens[0].Binary)

	// Round trip: re-quoting the payload tokenizes to the same value.
	again, errs := Tokenize("'it''s'")
	require.Empty(t, errs)
	assert.Equal(t, tokens[0].Value, again[0].Value)
}

func TestBinaryStringLiteral(t *testing.T) {
	t.Parallel()
	tokens, errs := Tokenize("x'deadbeef'")
	require.Empty(t, errs)
	require.Equal(t, []Kind{String, EOF}, kinds(tokens))
	assert.Equal(t, "deadbeef", tokens[0].Value)
	assert.True(t, tokens[0].Binary)

	// Upper-case marker.
	tokens, _ = Tokenize("X'00ff'")
	assert.True(t, tokens[0].Binary)

	// x without a quote is an identifier lead.
	tokens, errs = Tokenize("xylophone")
	require.Empty(t, errs)
	require.Equal(t, []Kind{Identifier, EOF}, kinds(tokens))
	assert.Equal(t, "xylophone", tokens[0].Value)
}

func TestUnterminatedString(t *testing.T) {
	t.Parallel()
	tokens, errs := Tokenize("'never ends")
	require.Len(t, errs, 1)
	assert.Equal(t, UnterminatedString, errs[0].Kind)
	require.Equal(t, []Kind{String, EOF}, kinds(tokens))
	assert.Equal(t, "never ends", tokens[0].Value, "token carries the text read so far")
}

func TestQuotedIdentifier(t *testing.T) {
	t.Parallel()
	tokens, errs := Tokenize(`"a""b"`)
	require.Empty(t, errs)
	require.Equal(t, []Kind{Identifier, EOF}, kinds(tokens))
	assert.Equal(t, `a"b`, tokens[0].Value)

	// A quoted reserved word stays an identifier.
	tokens, _ = Tokenize(`"order"`)
	require.Equal(t, []Kind{Identifier, EOF}, kinds(tokens))
	assert.Equal(t, "order", tokens[0].Value)

	tokens, errs = Tokenize(`"open`)
	require.Len(t, errs, 1)
	assert.Equal(t, UnterminatedString, errs[0].Kind)
	require.Equal(t, []Kind{Identifier, EOF}, kinds(tokens))
}

func TestKeywordsAreCaseInsensitive(t *testing.T) {
	t.Parallel()
	tokens, errs := Tokenize("select FROM WhErE config")
	require.Empty(t, errs)
	require.Equal(t, []Kind{Keyword, Keyword, Keyword, Identifier, EOF}, kinds(tokens))
	assert.True(t, tokens[0].Is("SELECT"))
	assert.True(t, tokens[2].Is("where"))
	assert.False(t, tokens[3].Is("config"), "identifiers never match keywords")
	assert.True(t, tokens[3].IsIdent("CONFIG"))
}

func TestPlaceholders(t *testing.T) {
	t.Parallel()
	tokens, errs := Tokenize("? ?3 $name :other @third")
	require.Empty(t, errs)
	require.Equal(t, []Kind{Positional, Positional, Named, Named, Named, EOF}, kinds(tokens))
	assert.Equal(t, 0, tokens[0].Index)
	assert.Equal(t, 3, tokens[1].Index)
	assert.Equal(t, "name", tokens[2].Value)
	assert.Equal(t, "other", tokens[3].Value)
	assert.Equal(t, "third", tokens[4].Value)
}

func TestLabelShape(t *testing.T) {
	t.Parallel()
	// The tokenizer emits identifier then colon; the parser classifies
	// the pair as a label.
	tokens, errs := Tokenize("readAll: SELECT * FROM config;")
	require.Empty(t, errs)
	assert.Equal(t, []Kind{
		Identifier, Colon, Keyword, Star, Keyword, Identifier, Semicolon, EOF,
	}, kinds(tokens))
}

func TestComments(t *testing.T) {
	t.Parallel()
	src := `
-- leading comment
SELECT /* inline
block */ 1; -- trailing`
	tokens, errs := Tokenize(src)
	require.Empty(t, errs)
	assert.Equal(t, []Kind{Keyword, Number, Semicolon, EOF}, kinds(tokens))

	// Block comments do not nest.
	tokens, errs = Tokenize("/* outer /* inner */ 1")
	require.Empty(t, errs)
	assert.Equal(t, []Kind{Number, EOF}, kinds(tokens))
}

func TestUnexpectedCharacter(t *testing.T) {
	t.Parallel()
	tokens, errs := Tokenize("a # b")
	require.Len(t, errs, 1)
	assert.Equal(t, UnexpectedCharacter, errs[0].Kind)
	// Scanning continues past the bad byte.
	assert.Equal(t, []Kind{Identifier, Identifier, EOF}, kinds(tokens))
}

func TestSourceSpans(t *testing.T) {
	t.Parallel()
	src := "SELECT 'v' FROM t"
	tokens, errs := Tokenize(src)
	require.Empty(t, errs)
	for _, tok := range tokens[:len(tokens)-1] {
		assert.Equal(t, src[tok.Span.Start:tok.Span.End], tok.Span.Lexeme)
	}
	assert.Equal(t, Span{Start: 7, End: 10, Lexeme: "'v'"}, tokens[1].Span)
}

func TestNonASCIIIdentifier(t *testing.T) {
	t.Parallel()
	tokens, errs := Tokenize("naïve = 1")
	require.Empty(t, errs)
	require.Equal(t, []Kind{Identifier, Equal, Number, EOF}, kinds(tokens))
	assert.Equal(t, "naïve", tokens[0].Value)
}
