package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/strata/compiler/schema"
	"github.com/syssam/strata/schema/field"
)

func TestParseCreateTable(t *testing.T) {
	t.Parallel()
	src := `
CREATE TABLE config (
    config_key TEXT PRIMARY KEY,
    config_value TEXT NOT NULL DEFAULT '',
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`
	s, diags := Parse(src)
	require.Empty(t, diags)
	require.Len(t, s.Tables, 1)

	tbl := s.Tables[0]
	assert.Equal(t, "config", tbl.Name)
	assert.Equal(t, []string{"config_key"}, tbl.PrimaryKey)
	require.Len(t, tbl.Columns, 3)

	key, ok := tbl.Column("config_key")
	require.True(t, ok)
	assert.Equal(t, field.TypeString, key.Type)
	assert.True(t, key.PrimaryKey)
	assert.False(t, key.Nullable)

	val, ok := tbl.Column("config_value")
	require.True(t, ok)
	assert.False(t, val.Nullable)
	assert.Equal(t, "''", val.Default)

	upd, ok := tbl.Column("updated_at")
	require.True(t, ok)
	assert.Equal(t, field.TypeTime, upd.Type)
	assert.True(t, upd.Nullable)
	assert.Equal(t, "CURRENT_TIMESTAMP", upd.Default)
}

func TestParseColumnOptions(t *testing.T) {
	t.Parallel()
	src := `
CREATE TABLE measurements (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    label VARCHAR(32) UNIQUE,
    ratio REAL DEFAULT -1.5,
    payload BLOB
) AS "Sample";
`
	s, diags := Parse(src)
	require.Empty(t, diags)
	tbl := s.Tables[0]
	assert.Equal(t, "Sample", tbl.MappedName)
	assert.Equal(t, "Sample", tbl.EntityName())

	id, _ := tbl.Column("id")
	assert.True(t, id.AutoIncrement)
	assert.True(t, id.PrimaryKey)

	label, _ := tbl.Column("label")
	assert.True(t, label.Unique)
	assert.Equal(t, field.TypeString, label.Type)
	assert.Equal(t, "VARCHAR(32)", label.RawType)

	ratio, _ := tbl.Column("ratio")
	assert.Equal(t, "-1.5", ratio.Default)

	payload, _ := tbl.Column("payload")
	assert.Equal(t, field.TypeBytes, payload.Type)
}

func TestParseForeignKeys(t *testing.T) {
	t.Parallel()
	src := `
CREATE TABLE with_defaults (
    a TEXT,
    b INTEGER,
    PRIMARY KEY (a, b)
) WITHOUT ROWID;

CREATE TABLE with_constraints (
    a TEXT,
    b INTEGER REFERENCES with_defaults (b) ON DELETE CASCADE,
    FOREIGN KEY (a, b) REFERENCES with_defaults (a, b) ON UPDATE SET NULL
);
`
	s, diags := Parse(src)
	require.Empty(t, diags)
	require.Len(t, s.Tables, 2)

	first := s.Tables[0]
	assert.True(t, first.WithoutRowid)
	assert.Equal(t, []string{"a", "b"}, first.PrimaryKey)

	second := s.Tables[1]
	require.Len(t, second.ForeignKeys, 2)

	b, _ := second.Column("b")
	require.NotNil(t, b.References)
	assert.Equal(t, "with_defaults", b.References.Table)
	assert.Equal(t, "CASCADE", b.References.OnDelete)

	compound := second.ForeignKeys[1]
	assert.Equal(t, []string{"a", "b"}, compound.Columns)
	assert.Equal(t, []string{"a", "b"}, compound.RefColumns)
}

func TestParseNamedQueryFragments(t *testing.T) {
	t.Parallel()
	src := `
CREATE TABLE config (
    config_key TEXT PRIMARY KEY,
    config_value TEXT
);

readMultiple: SELECT * FROM config WHERE config_key IN ? ORDER BY $clause;
`
	s, diags := Parse(src)
	require.Empty(t, diags)
	require.Len(t, s.Queries, 1)

	q := s.Queries[0]
	assert.Equal(t, "readMultiple", q.Label)
	require.Len(t, q.Fragments, 4)
	assert.Equal(t, schema.LiteralSQL{Text: "SELECT * FROM config WHERE config_key IN "}, q.Fragments[0])
	assert.Equal(t, schema.InList{}, q.Fragments[1])
	assert.Equal(t, schema.LiteralSQL{Text: " ORDER BY "}, q.Fragments[2])
	assert.Equal(t, schema.DynamicClause{Name: "clause", Kind: schema.ClauseOrderBy}, q.Fragments[3])
}

func TestParseValueParamTypes(t *testing.T) {
	t.Parallel()
	// The query precedes the table it reads; type resolution is
	// deferred until the whole file is parsed.
	src := `
readOne: SELECT config_value FROM config WHERE config_key = $key;

CREATE TABLE config (
    config_key TEXT PRIMARY KEY,
    config_value TEXT
);
`
	s, diags := Parse(src)
	require.Empty(t, diags)
	q, ok := s.Query("readOne")
	require.True(t, ok)

	ps := q.Placeholders()
	require.Len(t, ps, 1)
	assert.Equal(t, schema.ValueParam{Name: "key", Type: field.TypeString}, ps[0])
}

func TestParseQualifiedColumnType(t *testing.T) {
	t.Parallel()
	src := `
CREATE TABLE users (
    id INTEGER PRIMARY KEY,
    age INTEGER
);

adults: SELECT * FROM users WHERE users.age >= $min;
`
	s, diags := Parse(src)
	require.Empty(t, diags)
	q, _ := s.Query("adults")
	ps := q.Placeholders()
	require.Len(t, ps, 1)
	assert.Equal(t, schema.ValueParam{Name: "min", Type: field.TypeInt}, ps[0])
}

func TestParsePredicateClause(t *testing.T) {
	t.Parallel()
	src := `
CREATE TABLE users (id INTEGER PRIMARY KEY);

find: SELECT * FROM users WHERE $cond AND id > ?2;
`
	s, diags := Parse(src)
	require.Empty(t, diags)
	q, _ := s.Query("find")
	ps := q.Placeholders()
	require.Len(t, ps, 2)
	assert.Equal(t, schema.DynamicClause{Name: "cond", Kind: schema.ClausePredicate}, ps[0])
	assert.Equal(t, schema.Positional{Index: 2}, ps[1])
}

func TestParseNamedComparisonIsValueParam(t *testing.T) {
	t.Parallel()
	// A $name followed by a comparison is an operand, not a spliced
	// predicate.
	src := `
CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT);

odd: SELECT * FROM users WHERE $low < id AND name LIKE $pattern;
`
	s, diags := Parse(src)
	require.Empty(t, diags)
	q, _ := s.Query("odd")
	ps := q.Placeholders()
	require.Len(t, ps, 2)
	assert.Equal(t, schema.ValueParam{Name: "low"}, ps[0])
	assert.Equal(t, schema.ValueParam{Name: "pattern", Type: field.TypeString}, ps[1])
}

func TestParsePlaceholderInTableDefinition(t *testing.T) {
	t.Parallel()
	src := `CREATE TABLE bad ($oops TEXT);`
	_, diags := Parse(src)
	require.NotEmpty(t, diags)
	assert.Equal(t, schema.InvalidPlaceholder, diags[0].Kind)
}

func TestParseRecoversAtSemicolon(t *testing.T) {
	t.Parallel()
	src := `
CREATE TABLE broken (;

CREATE TABLE intact (id INTEGER PRIMARY KEY);
`
	s, diags := Parse(src)
	require.NotEmpty(t, diags)
	assert.Equal(t, schema.UnexpectedToken, diags[0].Kind)
	require.Len(t, s.Tables, 1)
	assert.Equal(t, "intact", s.Tables[0].Name)
}

func TestParseReportsManyProblems(t *testing.T) {
	t.Parallel()
	src := `
CREATE nonsense;
CREATE TABLE t (a WIBBLE);
CREATE TABLE t (a TEXT);
`
	s, diags := Parse(src)
	// Missing TABLE keyword, unknown column type, and the duplicate
	// table from validation.
	require.Len(t, diags, 3)
	assert.Equal(t, schema.UnexpectedToken, diags[0].Kind)
	assert.Equal(t, schema.UnexpectedToken, diags[1].Kind)
	assert.Equal(t, schema.DuplicateTable, diags[2].Kind)
	assert.Len(t, s.Tables, 2)
}

func TestParseLexErrorsBecomeDiagnostics(t *testing.T) {
	t.Parallel()
	_, diags := Parse(`CREATE TABLE t (a TEXT DEFAULT 'unterminated`)
	require.NotEmpty(t, diags)
	assert.Equal(t, schema.LexError, diags[0].Kind)
}

func TestParseMissingSemicolonAfterQuery(t *testing.T) {
	t.Parallel()
	s, diags := Parse(`everything: SELECT 1`)
	require.Len(t, s.Queries, 1)
	require.NotEmpty(t, diags)
	assert.Equal(t, schema.UnexpectedToken, diags[0].Kind)
}

func TestParseEmptySource(t *testing.T) {
	t.Parallel()
	s, diags := Parse("")
	assert.Empty(t, diags)
	assert.Empty(t, s.Tables)
	assert.Empty(t, s.Queries)
}
