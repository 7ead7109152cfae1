package field

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeMapping(t *testing.T) {
	t.Parallel()
	tests := []struct {
		typ    Type
		column string
		goType string
		null   string
	}{
		{TypeInt, "INTEGER", "int64", "NullInt64"},
		{TypeFloat, "REAL", "float64", "NullFloat64"},
		{TypeString, "TEXT", "string", "NullString"},
		{TypeBytes, "BLOB", "[]byte", "RawBytes"},
		{TypeBool, "BOOLEAN", "bool", "NullBool"},
		{TypeTime, "DATETIME", "time.Time", "NullTime"},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			assert.True(t, tt.typ.Valid())
			assert.Equal(t, tt.column, tt.typ.ColumnType())
			assert.Equal(t, tt.goType, tt.typ.GoType())
			assert.Equal(t, tt.null, tt.typ.NullType())
		})
	}
	assert.False(t, TypeInvalid.Valid())
	assert.False(t, Type(200).Valid())
}

func TestFromColumnType(t *testing.T) {
	t.Parallel()
	for name, want := range map[string]Type{
		"integer":   TypeInt,
		"BIGINT":    TypeInt,
		"Varchar":   TypeString,
		"clob":      TypeString,
		"blob":      TypeBytes,
		"boolean":   TypeBool,
		"datetime":  TypeTime,
		"TIMESTAMP": TypeTime,
		"real":      TypeFloat,
	} {
		got, ok := FromColumnType(name)
		require.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
	_, ok := FromColumnType("point")
	assert.False(t, ok)
}

func TestLiteral(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "'it''s'", TypeString.Literal("it's"))
	assert.Equal(t, "1", TypeBool.Literal(true))
	assert.Equal(t, "0", TypeBool.Literal(false))
	assert.Equal(t, "42", TypeInt.Literal(42))
	ts := time.UnixMilli(1500)
	assert.Equal(t, "1500", TypeTime.Literal(ts))
}

func TestUnixMilliSerializer(t *testing.T) {
	t.Parallel()
	s := UnixMilliSerializer{}

	v, err := s.Serialize(time.UnixMilli(250), TypeTime)
	require.NoError(t, err)
	assert.Equal(t, int64(250), v)

	v, err = s.Serialize("plain", TypeString)
	require.NoError(t, err)
	assert.Equal(t, "plain", v)

	v, err = s.Serialize(nil, TypeTime)
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = s.Serialize("not a time", TypeTime)
	require.Error(t, err)
}

func TestTextTimeSerializer(t *testing.T) {
	t.Parallel()
	s := TextTimeSerializer{}
	ts := time.Date(2024, 4, 1, 10, 30, 0, 0, time.UTC)

	v, err := s.Serialize(ts, TypeTime)
	require.NoError(t, err)
	assert.Equal(t, "2024-04-01T10:30:00Z", v)

	v, err = s.Serialize(7, TypeInt)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}
