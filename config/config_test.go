package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Config:
// - Default() matches the conventional project layout
// - Load without a file returns the defaults
// - Load merges surqlgen.yaml over the defaults
// - SURQLGEN_* environment variables win over the file
// - an explicit config file that does not exist is an error
// - Validate reports every problem at once
// - Write round-trips through Load and refuses to overwrite without force

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()

	assert.Equal(t, "schemas", cfg.Paths.Schemas)
	assert.Equal(t, "queries", cfg.Paths.Queries)
	assert.Equal(t, "mutations", cfg.Paths.Mutations)
	assert.Equal(t, "events", cfg.Paths.Events)
	assert.Equal(t, "db", cfg.Paths.Output)
	assert.Equal(t, "api", cfg.Paths.API)
	assert.Equal(t, ".surql", cfg.Extension)
	assert.Equal(t, "types", cfg.TypesPackage)
	assert.True(t, cfg.IsReadOnly("script_migration"))
	assert.False(t, cfg.IsReadOnly("post"))
	assert.NoError(t, Validate(cfg))
}

func TestLoadWithoutFile(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfigFromDir(t.TempDir())
	require.NoError(t, err)

	defaults := Default()
	assert.Equal(t, defaults.Paths, cfg.Paths)
	assert.Equal(t, defaults.Extension, cfg.Extension)
	assert.Equal(t, defaults.TypesPackage, cfg.TypesPackage)
	assert.Equal(t, defaults.ReadOnlyTables, cfg.ReadOnlyTables)
	assert.Empty(t, cfg.Exclude)
	assert.Empty(t, cfg.Module)
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := `
paths:
  output: internal/db
  queries: sql/queries
extension: .sql
module: example.com/blog
read_only_tables:
  - audit_log
exclude:
  - "**/*_draft.sql"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))

	cfg, err := LoadConfigFromDir(dir)
	require.NoError(t, err)

	assert.Equal(t, "internal/db", cfg.Paths.Output)
	assert.Equal(t, "sql/queries", cfg.Paths.Queries)
	assert.Equal(t, "schemas", cfg.Paths.Schemas)
	assert.Equal(t, ".sql", cfg.Extension)
	assert.Equal(t, "example.com/blog", cfg.Module)
	assert.Equal(t, []string{"audit_log"}, cfg.ReadOnlyTables)
	assert.Equal(t, []string{"**/*_draft.sql"}, cfg.Exclude)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("paths:\n  output: from_file\n"), 0o644))

	t.Setenv("SURQLGEN_PATHS_OUTPUT", "from_env")
	t.Setenv("SURQLGEN_MODULE", "example.com/env")

	cfg, err := LoadConfigFromDir(dir)
	require.NoError(t, err)

	assert.Equal(t, "from_env", cfg.Paths.Output)
	assert.Equal(t, "example.com/env", cfg.Module)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := NewLoader(dir, filepath.Join(dir, "missing.yaml")).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadInvalid(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("extension: surql\n"), 0o644))

	_, err := LoadConfigFromDir(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidExtension)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Paths.Schemas = ""
	cfg.Paths.Output = "queries"
	cfg.Extension = ""
	cfg.Exclude = []string{"[unclosed"}

	err := Validate(cfg)
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrEmptyPath)
	assert.ErrorIs(t, err, ErrOutputOverlap)
	assert.ErrorIs(t, err, ErrInvalidExtension)
	assert.ErrorIs(t, err, ErrInvalidPattern)
}

func TestWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg := Default()
	cfg.Module = "example.com/blog"

	path, err := Write(dir, cfg, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), path)

	loaded, err := LoadConfigFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg.Paths, loaded.Paths)
	assert.Equal(t, cfg.Module, loaded.Module)
	assert.Equal(t, cfg.ReadOnlyTables, loaded.ReadOnlyTables)

	_, err = Write(dir, cfg, false)
	require.ErrorIs(t, err, ErrConfigExists)

	_, err = Write(dir, cfg, true)
	require.NoError(t, err)
}
