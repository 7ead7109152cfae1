package sql

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/strata/schema/field"
)

func TestBuilderIdent(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		want string
	}{
		{"config_key", "config_key"},
		{"order", `"order"`},
		{"SELECT", `"SELECT"`},
		{`a"b`, `"a""b"`},
		{"with space", `"with space"`},
		{"1st", `"1st"`},
		{"", `""`},
	}
	for _, tt := range tests {
		b := NewBuilder()
		b.Ident(tt.name)
		got, _ := b.Query()
		assert.Equal(t, tt.want, got)
	}
}

func TestBuilderArgOrdering(t *testing.T) {
	t.Parallel()
	b := NewBuilder()
	b.WriteString("a = ")
	assert.Equal(t, 0, b.Arg("x", field.TypeString))
	b.WriteString(" AND b = ")
	assert.Equal(t, 1, b.Arg(7, field.TypeInt))
	text, params := b.Query()
	assert.Equal(t, "a = ? AND b = ?", text)
	require.Len(t, params, 2)
	assert.Equal(t, "x", params[0].Value)
	assert.Equal(t, 7, params[1].Value)
}

func TestBuilderPad(t *testing.T) {
	t.Parallel()
	b := NewBuilder()
	b.Pad() // empty buffer stays empty
	assert.Equal(t, "", b.String())
	b.WriteString("SELECT")
	b.Pad()
	b.Pad() // second pad is a no-op
	b.WriteString("*")
	assert.Equal(t, "SELECT *", b.String())
	b.WriteByte('(')
	b.Pad() // no space after an opening parenthesis
	assert.Equal(t, "SELECT *(", b.String())
}

func TestBuilderArgsSerialization(t *testing.T) {
	t.Parallel()
	ts := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)

	b := NewBuilder()
	b.Arg(ts, field.TypeTime)
	b.Arg("plain", field.TypeString)
	args, err := b.Args()
	require.NoError(t, err)
	require.Len(t, args, 2)
	assert.Equal(t, ts.UnixMilli(), args[0])
	assert.Equal(t, "plain", args[1])

	b = NewBuilder()
	b.SetSerializer(field.TextTimeSerializer{})
	b.Arg(ts, field.TypeTime)
	args, err = b.Args()
	require.NoError(t, err)
	assert.Equal(t, ts.Format(time.RFC3339Nano), args[0])
}

func TestBuilderArgsSerializationError(t *testing.T) {
	t.Parallel()
	b := NewBuilder()
	b.Arg(struct{}{}, field.TypeTime)
	_, err := b.Args()
	assert.Error(t, err)
}

func TestRenderInto(t *testing.T) {
	t.Parallel()
	b := NewBuilder()
	b.WriteString("SELECT * FROM t WHERE ")
	eq, err := EQ(Col("", "a", field.TypeInt), Bind(1, field.TypeInt))
	require.NoError(t, err)
	RenderInto(b, eq)
	b.WriteString(" ORDER BY ")
	b.Ident("a")
	text, params := b.Query()
	assert.Equal(t, "SELECT * FROM t WHERE a = ? ORDER BY a", text)
	assert.Len(t, params, 1)
}
