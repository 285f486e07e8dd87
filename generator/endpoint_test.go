package generator_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalbasit/surqlgen/generator"
)

// Test Plan for GenerateEndpoint:
// - without a source a stub handler is written
// - query, mutation, event and schema sources call the generated functions
// - the source name may carry an extension
// - missing sources are reported by kind and file name
// - invalid flag combinations and read-only writes are rejected

func endpointProject(t *testing.T) *generator.Generator {
	t.Helper()

	root := newProject(t, map[string]string{
		"schemas/post.surql":             postSchema,
		"schemas/script_migration.surql": "DEFINE TABLE script_migration;\n",
		"queries/post_by_id.surql":       postByIDQuery,
		"mutations/comment.surql":        commentMutation,
		"events/publish_post.surql":      publishPostEvent,
	})

	gen, err := generator.New(root, nil)
	require.NoError(t, err)

	return gen
}

func readEndpoint(t *testing.T, gen *generator.Generator, opts generator.EndpointOptions) string {
	t.Helper()

	rel, err := gen.GenerateEndpoint(opts)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(gen.Root(), rel))
	require.NoError(t, err)

	return string(content)
}

func TestGenerateEndpointStub(t *testing.T) {
	t.Parallel()

	gen := endpointProject(t)

	rel, err := gen.GenerateEndpoint(generator.EndpointOptions{Name: "signIn"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("api", "sign_in.go"), rel)

	f := parseFile(t, filepath.Join(gen.Root(), rel))
	assert.Equal(t, "api", f.Name.Name)

	fn := findFunc(t, f, "SignIn")
	assert.Equal(t, []string{"db *surrealdb.DB"}, fieldList(fn.Type.Params))
	assert.Equal(t, []string{"http.HandlerFunc"}, fieldList(fn.Type.Results))
}

func TestGenerateEndpointFromSources(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opts     generator.EndpointOptions
		contains []string
		excludes []string
	}{
		{
			name: "query",
			opts: generator.EndpointOptions{Name: "postById", FromQuery: "post_by_id"},
			contains: []string{
				`queries "example.com/blog/db/queries"`,
				"PostId string `json:\"post_id\"`",
				"queries.QueryPostById(r.Context(), db, req.PostId)",
			},
		},
		{
			name: "query with extension",
			opts: generator.EndpointOptions{Name: "postById", FromQuery: "post_by_id.surql"},
			contains: []string{"queries.QueryPostById(r.Context(), db, req.PostId)"},
		},
		{
			name: "mutation",
			opts: generator.EndpointOptions{Name: "comment", FromMutation: "comment.go"},
			contains: []string{
				"PostId  *string `json:\"post_id\"`",
				"mutations.MutateComment(r.Context(), db, req.UserId, req.PostId, req.Content)",
			},
		},
		{
			name: "event",
			opts: generator.EndpointOptions{Name: "publishPost", FromEvent: "publish_post"},
			contains: []string{
				"var data events.PublishPostData",
				"events.PublishPost(r.Context(), db, data)",
				"http.StatusNoContent",
			},
		},
		{
			name:     "schema list",
			opts:     generator.EndpointOptions{Name: "listPosts", FromSchema: "post", Method: generator.MethodList},
			contains: []string{"crud.GetAllPosts(r.Context(), db)"},
			excludes: []string{`r.PathValue("id")`},
		},
		{
			name: "schema get",
			opts: generator.EndpointOptions{Name: "getPost", FromSchema: "post", Method: generator.MethodGet},
			contains: []string{
				`r.PathValue("id")`,
				"crud.GetPost(r.Context(), db, id)",
				"errors.Is(err, crud.ErrNotFound)",
			},
		},
		{
			name:     "schema create",
			opts:     generator.EndpointOptions{Name: "createPost", FromSchema: "post", Method: generator.MethodCreate},
			contains: []string{"var data crud.Post", "crud.CreatePost(r.Context(), db, data)", "http.StatusCreated"},
		},
		{
			name:     "schema update",
			opts:     generator.EndpointOptions{Name: "updatePost", FromSchema: "post", Method: generator.MethodUpdate},
			contains: []string{"crud.UpdatePost(r.Context(), db, id, data)"},
		},
		{
			name:     "schema delete",
			opts:     generator.EndpointOptions{Name: "deletePost", FromSchema: "post", Method: generator.MethodDelete},
			contains: []string{"crud.DeletePost(r.Context(), db, id)", "http.StatusNoContent"},
		},
		{
			name:     "read-only schema find",
			opts:     generator.EndpointOptions{Name: "findMigration", FromSchema: "script_migration", Method: generator.MethodFind},
			contains: []string{"crud.FindScriptMigration(r.Context(), db, id)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			content := readEndpoint(t, endpointProject(t), tt.opts)

			for _, s := range tt.contains {
				assert.Contains(t, content, s)
			}

			for _, s := range tt.excludes {
				assert.NotContains(t, content, s)
			}
		})
	}
}

func TestGenerateEndpointSourceNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		opts     generator.EndpointOptions
		expected string
	}{
		{generator.EndpointOptions{Name: "x", FromQuery: "missing"}, "Query 'missing.surql' does not exist"},
		{generator.EndpointOptions{Name: "x", FromMutation: "missing.surql"}, "Mutation 'missing.surql' does not exist"},
		{generator.EndpointOptions{Name: "x", FromEvent: "missing"}, "Event 'missing.surql' does not exist"},
		{
			generator.EndpointOptions{Name: "x", FromSchema: "non-existing-schema", Method: generator.MethodList},
			"Schema 'non-existing-schema.surql' does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			t.Parallel()

			gen := endpointProject(t)

			_, err := gen.GenerateEndpoint(tt.opts)
			require.ErrorIs(t, err, generator.ErrSourceNotFound)
			assert.EqualError(t, err, tt.expected)
			assert.NoDirExists(t, filepath.Join(gen.Root(), "api"))
		})
	}
}

func TestGenerateEndpointInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts generator.EndpointOptions
	}{
		{"no name", generator.EndpointOptions{}},
		{"two sources", generator.EndpointOptions{Name: "x", FromQuery: "post_by_id", FromMutation: "comment"}},
		{"method without schema", generator.EndpointOptions{Name: "x", FromQuery: "post_by_id", Method: generator.MethodList}},
		{"schema without method", generator.EndpointOptions{Name: "x", FromSchema: "post"}},
		{"unknown method", generator.EndpointOptions{Name: "x", FromSchema: "post", Method: "patch"}},
		{"read-only create", generator.EndpointOptions{Name: "x", FromSchema: "script_migration", Method: generator.MethodCreate}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := endpointProject(t).GenerateEndpoint(tt.opts)
			require.ErrorIs(t, err, generator.ErrInvalidEndpoint)
		})
	}
}
