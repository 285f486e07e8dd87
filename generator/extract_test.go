package generator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalbasit/surqlgen/generator"
	"github.com/kalbasit/surqlgen/surql"
)

// Test Plan for extraction:
// - annotations are read in file order, unrelated lines ignored, duplicates kept
// - definition filters keep order and tolerate empty input
// - field kinds map to string or models.RecordID
// - annotation types map to Go parameter types
// - struct fields start with id, keep first-seen order and let the last type win
// - $value usage is a recursive fold defaulting to used

func parse(t *testing.T, src string) []surql.Statement {
	t.Helper()

	stmts, err := surql.Parse(src)
	require.NoError(t, err)

	return stmts
}

func TestExtractQueryVariables(t *testing.T) {
	t.Parallel()

	text := "// $post_id: String\n" +
		"SELECT * FROM post;\n" +
		"-- $ignored: String\n" +
		"# $count: Int\r\n" +
		"// not an annotation\n" +
		"/// $limit : Option<Int>  \n" +
		"  ## $post_id: String\n"

	got := generator.ExtractQueryVariables(text)

	assert.Equal(t, []generator.QueryVariable{
		{Name: "post_id", Type: "String"},
		{Name: "count", Type: "Int"},
		{Name: "limit", Type: "Option<Int>"},
		{Name: "post_id", Type: "String"},
	}, got)

	assert.Empty(t, generator.ExtractQueryVariables(""))
	assert.Empty(t, generator.ExtractQueryVariables("SELECT * FROM post WHERE id = $id;"))
}

func TestDefinitionExtractors(t *testing.T) {
	t.Parallel()

	stmts := parse(t, `
DEFINE TABLE post SCHEMAFULL;
DEFINE FIELD title ON post TYPE string;
DEFINE INDEX title_idx ON post COLUMNS title;
DEFINE TABLE user;
DEFINE FIELD name ON TABLE user TYPE string;
DEFINE EVENT notify ON post WHEN $event = "CREATE" THEN (CREATE log SET post = $after.id);
SELECT * FROM post;
`)

	tables := generator.DefineTables(stmts)
	require.Len(t, tables, 2)
	assert.Equal(t, "post", tables[0].Name)
	assert.Equal(t, "user", tables[1].Name)

	fields := generator.DefineFields(stmts)
	require.Len(t, fields, 2)
	assert.Equal(t, "title", fields[0].Name)
	assert.Equal(t, "post", fields[0].Table)
	assert.Equal(t, "name", fields[1].Name)
	assert.Equal(t, "user", fields[1].Table)

	events := generator.DefineEvents(stmts)
	require.Len(t, events, 1)
	assert.Equal(t, "notify", events[0].Name)
	assert.Equal(t, "post", events[0].Table)

	assert.Empty(t, generator.DefineTables(nil))
	assert.Empty(t, generator.DefineFields(parse(t, "SELECT * FROM post;")))
	assert.Empty(t, generator.DefineEvents(parse(t, "")))
}

func TestMapKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		def      string
		expected string
	}{
		{"DEFINE FIELD f ON t TYPE string", "string"},
		{"DEFINE FIELD f ON t TYPE record<user>", "models.RecordID"},
		{"DEFINE FIELD f ON t TYPE record<user | post>", "models.RecordID"},
		{"DEFINE FIELD f ON t TYPE record", "models.RecordID"},
		{"DEFINE FIELD f ON t TYPE int", "string"},
		{"DEFINE FIELD f ON t TYPE datetime", "string"},
		{"DEFINE FIELD f ON t TYPE option<string>", "string"},
		{"DEFINE FIELD f ON t TYPE string | int", "string"},
		{"DEFINE FIELD f ON t", "string"},
	}

	for _, tt := range tests {
		t.Run(tt.def, func(t *testing.T) {
			t.Parallel()

			fields := generator.DefineFields(parse(t, tt.def))
			require.Len(t, fields, 1)
			assert.Equal(t, tt.expected, generator.MapKind(fields[0].Kind))
		})
	}

	assert.Equal(t, "string", generator.MapKind(nil))
}

func TestParamType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"String", "string"},
		{"string", "string"},
		{"&str", "string"},
		{"Int", "int64"},
		{"i64", "int64"},
		{"Float", "float64"},
		{"Decimal", "float64"},
		{"Bool", "bool"},
		{"Datetime", "time.Time"},
		{"Duration", "time.Duration"},
		{"Thing", "models.RecordID"},
		{"RecordID", "models.RecordID"},
		{"Object", "any"},
		{"Option<String>", "*string"},
		{"option<int>", "*int64"},
		{"Vec<String>", "[]string"},
		{"array<Option<Bool>>", "[]*bool"},
		{"uuid.UUID", "uuid.UUID"},
		{"[]byte", "[]byte"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, generator.ParamType(tt.input))
		})
	}
}

func TestExtractStructFields(t *testing.T) {
	t.Parallel()

	fields := generator.DefineFields(parse(t, `
DEFINE FIELD title ON post TYPE string;
DEFINE FIELD content ON post TYPE string;
DEFINE FIELD author ON post TYPE record<user>;
DEFINE FIELD title ON post TYPE record<title>;
`))

	t.Run("with id", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []generator.StructField{
			{Name: "id", TypeStr: "models.RecordID"},
			{Name: "title", TypeStr: "models.RecordID"},
			{Name: "content", TypeStr: "string"},
			{Name: "author", TypeStr: "models.RecordID"},
		}, generator.ExtractStructFields(fields, true))
	})

	t.Run("without id", func(t *testing.T) {
		t.Parallel()

		got := generator.ExtractStructFields(fields, false)
		require.Len(t, got, 3)
		assert.Equal(t, "title", got[0].Name)
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []generator.StructField{{Name: "id", TypeStr: "models.RecordID"}}, generator.ExtractStructFields(nil, true))
		assert.Empty(t, generator.ExtractStructFields(nil, false))
	})
}

func TestExtractStructFieldsIgnoresDeclarationOrder(t *testing.T) {
	t.Parallel()

	a := generator.DefineFields(parse(t, "DEFINE FIELD title ON post TYPE string; DEFINE FIELD content ON post TYPE string;"))
	b := generator.DefineFields(parse(t, "DEFINE FIELD content ON post TYPE string; DEFINE FIELD title ON post TYPE string;"))

	expected := []generator.StructField{
		{Name: "id", TypeStr: "models.RecordID"},
		{Name: "title", TypeStr: "string"},
		{Name: "content", TypeStr: "string"},
	}

	assert.ElementsMatch(t, expected, generator.ExtractStructFields(a, true))
	assert.ElementsMatch(t, expected, generator.ExtractStructFields(b, true))
}

func TestIsValueParamUsed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value    string
		expected bool
	}{
		{"true", false},
		{"42", false},
		{"-1.5", false},
		{"'draft'", false},
		{"NONE", false},
		{"1h30m", false},
		{"[1, 2]", false},
		{"math::PI", false},
		{"$before", false},
		{"time::now()", false},
		{"<datetime> '2024-01-01'", false},
		{"$value", true},
		{"<string> $value", true},
		{"string::lowercase($value)", true},
		{"fn::slug(string::trim($value))", true},
		{"$value + 1", true},
		{"1 + $value", true},
		{"$before OR 'x'", false},
		{"$before OR $auth.id", true},
		{"$value.name", true},
		{"(SELECT * FROM user)", true},
		{"IF $value THEN 1 ELSE 2 END", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()

			fields := generator.DefineFields(parse(t, "DEFINE FIELD f ON t VALUE "+tt.value))
			require.Len(t, fields, 1)
			assert.Equal(t, tt.expected, generator.IsValueParamUsed(fields[0].Value))
		})
	}

	t.Run("no value clause", func(t *testing.T) {
		t.Parallel()

		assert.True(t, generator.IsValueParamUsed(nil))
	})

	t.Run("unknown shape", func(t *testing.T) {
		t.Parallel()

		assert.True(t, generator.IsValueParamUsed(&surql.Other{Kind: "closure"}))
	})
}
