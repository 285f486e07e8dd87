package generator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kalbasit/surqlgen/generator"
)

func TestToSnakeCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"post_by_id", "post_by_id"},
		{"PostByID", "post_by_id"},
		{"publishPost", "publish_post"},
		{"post-by-id", "post_by_id"},
		{"post by id", "post_by_id"},
		{"posts", "posts"},
		{"HTTPServer", "httpserver"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, generator.ToSnakeCase(tt.input))
		})
	}
}

func TestCaseConversions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		pascal string
		camel  string
	}{
		{"post_by_id", "PostById", "postById"},
		{"post_by_id_query", "PostByIdQuery", "postByIdQuery"},
		{"comment_mutation", "CommentMutation", "commentMutation"},
		{"script_migration", "ScriptMigration", "scriptMigration"},
		{"post", "Post", "post"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.pascal, generator.ToPascalCase(tt.input))
			assert.Equal(t, tt.camel, generator.ToCamelCase(tt.input))
		})
	}
}

func TestParamName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"post_id", "postId"},
		{"content", "content"},
		{"type", "typeParam"},
		{"id", "idParam"},
		{"db", "dbParam"},
		{"ctx", "ctxParam"},
		{"1st", "p1st"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, generator.ParamName(tt.input))
		})
	}
}

func TestModuleFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"posts", "posts"},
		{"post_by_id", "post_by_id"},
		{"doc", "doc_gen"},
		{"post_test", "post_test_gen"},
		{"user_linux", "user_linux_gen"},
		{"build_arm64", "build_arm64_gen"},
		{"_hidden", "gen_hidden"},
		{"linux", "linux"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, generator.ModuleFileName(tt.input))
		})
	}
}

func TestGoString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "`SELECT * FROM post;`", generator.GoString("SELECT * FROM post;"))
	assert.Equal(t, "\"SELECT `name` FROM post;\"", generator.GoString("SELECT `name` FROM post;"))
	assert.Equal(t, "\"a\\r\\nb\"", generator.GoString("a\r\nb"))
}

func TestFlatten(t *testing.T) {
	t.Parallel()

	got := generator.Flatten(
		"a",
		[]string{"b", "c"},
		[]generator.QueryVariable{{Name: "post_id", Type: "String"}},
		[]any{"d", []string{"e"}},
	)

	assert.Equal(t, []string{"a", "b", "c", "$post_id", "d", "e"}, got)
	assert.Empty(t, generator.Flatten())
}

func TestJoinParams(t *testing.T) {
	t.Parallel()

	params := []generator.Param{
		{Name: "postId", Type: "string", VarName: "post_id"},
		{Name: "limit", Type: "*int64", VarName: "limit"},
	}

	assert.Equal(t, "postId string, limit *int64", generator.JoinParamsSignature(params))
	assert.Empty(t, generator.JoinParamsSignature(nil))
}

func TestQueryParams(t *testing.T) {
	t.Parallel()

	vars := []generator.QueryVariable{
		{Name: "post_id", Type: "String"},
		{Name: "limit", Type: "Option<Int>"},
		{Name: "post_id", Type: "Int"},
	}

	params, bindings := generator.QueryParams("queries/posts.surql", vars)

	assert.Equal(t, []generator.Param{
		{Name: "postId", Type: "string", VarName: "post_id"},
		{Name: "limit", Type: "*int64", VarName: "limit"},
		{Name: "postId2", Type: "int64", VarName: "post_id"},
	}, params)

	assert.Equal(t, []generator.Param{
		{Name: "postId2", Type: "int64", VarName: "post_id"},
		{Name: "limit", Type: "*int64", VarName: "limit"},
	}, bindings)
}

func TestFormatSource(t *testing.T) {
	t.Parallel()

	src := []byte("package x\nimport (\n\"fmt\"\n\"time\"\n)\nfunc F() string { return fmt.Sprint(1) }\n")

	out, err := generator.FormatSource("x.go", src)
	if assert.NoError(t, err) {
		assert.NotContains(t, string(out), `"time"`)
		assert.Contains(t, string(out), "fmt.Sprint(1)")
	}

	_, err = generator.FormatSource("bad.go", []byte("package x\nfunc {"))
	assert.Error(t, err)
}
