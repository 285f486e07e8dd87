package generator

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

type sentinel struct {
	Name    string
	Doc     string
	Message string
}

// categoryData is the context of category.go.tmpl.
type categoryData struct {
	Header    string
	Package   string
	Source    string
	Names     []string
	Sentinels []sentinel
}

// indexData is the context of index.go.tmpl.
type indexData struct {
	Header     string
	Package    string
	Imports    []string
	Categories []string
}

var (
	errNoResult = sentinel{
		Name:    "ErrNoResult",
		Doc:     "is returned when the database sends back no statement result.",
		Message: "no result",
	}
	errNotFound = sentinel{
		Name:    "ErrNotFound",
		Doc:     "is returned by the Get functions when the record does not exist.",
		Message: "record not found",
	}
)

func categorySentinels(c Category) []sentinel {
	switch c {
	case CategoryQueries, CategoryMutations:
		return []sentinel{errNoResult}
	case CategoryCRUD:
		return []sentinel{errNotFound}
	}

	return nil
}

func (g *Generator) categorySource(c Category) string {
	switch c {
	case CategoryQueries:
		return g.cfg.Paths.Queries
	case CategoryMutations:
		return g.cfg.Paths.Mutations
	case CategoryCRUD:
		return g.cfg.Paths.Schemas
	case CategoryEvents:
		return g.cfg.Paths.Events
	}

	return ""
}

// writeCategory writes every module of a non-empty category followed by its
// index, after removing the generated files the pass no longer produces. It
// returns the written and removed paths relative to the project root.
func (g *Generator) writeCategory(result CategoryResult) ([]string, []string, error) {
	path := filepath.Join(g.outputDir, string(result.Category), indexFileName)
	data := categoryData{
		Header:    generatedHeader,
		Package:   string(result.Category),
		Source:    filepath.ToSlash(g.categorySource(result.Category)),
		Names:     result.Names(),
		Sentinels: categorySentinels(result.Category),
	}

	content, err := g.renderer.render(categoryTemplate, path, data)
	if err != nil {
		return nil, nil, fmt.Errorf("rendering %s index: %w", result.Category, err)
	}

	files := make([]Module, 0, len(result.Modules)+1)
	for _, name := range result.Names() {
		files = append(files, result.Modules[name])
	}

	files = append(files, Module{Name: indexFileName, Path: path, Content: content})

	if err := checkDeclarations(result.Category, files); err != nil {
		return nil, nil, err
	}

	removed, err := g.prune(result)
	if err != nil {
		return nil, removed, err
	}

	var written []string

	for _, file := range files {
		if err := g.write(file.Path, file.Content); err != nil {
			return written, removed, err
		}

		written = append(written, g.rel(file.Path))
	}

	return written, removed, nil
}

// prune deletes the generated Go files of a category directory that result
// does not produce. Hand-written files are kept. The directory itself is
// removed once an empty category leaves nothing in it.
func (g *Generator) prune(result CategoryResult) ([]string, error) {
	dir := filepath.Join(g.outputDir, string(result.Category))

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	keep := make(map[string]bool, len(result.Modules)+1)
	if !result.IsEmpty() {
		keep[indexFileName] = true
	}

	for _, module := range result.Modules {
		keep[filepath.Base(module.Path)] = true
	}

	var removed []string

	for _, e := range entries {
		if !e.Type().IsRegular() || filepath.Ext(e.Name()) != goExt || keep[e.Name()] {
			continue
		}

		path := filepath.Join(dir, e.Name())

		generated, err := isGenerated(path)
		if err != nil {
			return removed, err
		}

		if !generated {
			continue
		}

		if err := os.Remove(path); err != nil {
			return removed, fmt.Errorf("removing %s: %w", path, err)
		}

		removed = append(removed, g.rel(path))

		if g.Verbose {
			fmt.Printf("Removed %s\n", g.rel(path))
		}
	}

	if result.IsEmpty() {
		// fails while hand-written files remain
		_ = os.Remove(dir)
	}

	return removed, nil
}

// isGenerated reports whether the file starts with the generated header.
func isGenerated(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}

	return bytes.HasPrefix(data, []byte(generatedHeader)), nil
}

func (g *Generator) topLevelIndexPath() string {
	return filepath.Join(g.outputDir, sanitizeFileName(filepath.Base(g.outputDir))+goExt)
}

// writeTopLevelIndex writes the index importing the non-empty categories.
func (g *Generator) writeTopLevelIndex(categories []Category) (string, error) {
	path := g.topLevelIndexPath()

	data := indexData{
		Header:  generatedHeader,
		Package: detectPackageName(g.outputDir),
	}

	for _, c := range categories {
		importPath, err := g.importPath(filepath.Join(g.outputDir, string(c)))
		if err != nil {
			return "", err
		}

		data.Imports = append(data.Imports, importPath)
		data.Categories = append(data.Categories, string(c))
	}

	content, err := g.renderer.render(indexTemplate, path, data)
	if err != nil {
		return "", fmt.Errorf("rendering top-level index: %w", err)
	}

	if err := g.write(path, content); err != nil {
		return "", err
	}

	return g.rel(path), nil
}

func (g *Generator) write(path string, content []byte) error {
	if err := writeFile(path, content); err != nil {
		return err
	}

	if g.Verbose {
		fmt.Printf("Generated %s\n", g.rel(path))
	}

	return nil
}
