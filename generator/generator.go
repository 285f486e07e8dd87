package generator

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"github.com/kalbasit/surqlgen/config"
)

// Generator turns the definition files of a project into the generated
// SurrealDB access layer.
type Generator struct {
	root      string
	cfg       *config.Config
	renderer  *renderer
	exclude   []glob.Glob
	outputDir string

	// Verbose prints every written file.
	Verbose bool
}

// New returns a Generator for the project rooted at root.
func New(root string, cfg *config.Config) (*Generator, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}

	exclude := make([]glob.Glob, 0, len(cfg.Exclude))

	for _, pattern := range cfg.Exclude {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", config.ErrInvalidPattern, pattern, err)
		}

		exclude = append(exclude, g)
	}

	templatesDir := cfg.TemplatesDir
	if templatesDir != "" {
		templatesDir = resolve(absRoot, templatesDir)
	}

	return &Generator{
		root:      absRoot,
		cfg:       cfg,
		renderer:  newRenderer(templatesDir),
		exclude:   exclude,
		outputDir: resolve(absRoot, cfg.Paths.Output),
	}, nil
}

// Generate runs one generation pass. Categories are generated in the order
// queries, mutations, crud, events and each non-empty category is written as
// soon as it is generated. Generated files no longer produced by the pass are
// removed. Any error aborts the pass.
func (g *Generator) Generate() (*Report, error) {
	report := &Report{}

	g.renderer.reset()

	for _, category := range generationOrder {
		result, err := g.generateCategory(category)
		if err != nil {
			return report, err
		}

		report.Results = append(report.Results, result)

		if result.IsEmpty() {
			removed, err := g.prune(result)
			report.Removed = append(report.Removed, removed...)

			if err != nil {
				return report, err
			}

			continue
		}

		written, removed, err := g.writeCategory(result)
		report.Written = append(report.Written, written...)
		report.Removed = append(report.Removed, removed...)

		if err != nil {
			return report, err
		}
	}

	categories := report.NonEmpty()
	if len(categories) == 0 {
		log.Printf("no definitions found, leaving %s as it is", g.rel(g.topLevelIndexPath()))

		return report, nil
	}

	written, err := g.writeTopLevelIndex(categories)
	if err != nil {
		return report, err
	}

	report.Written = append(report.Written, written)
	report.TopLevelIndex = true

	return report, nil
}

func (g *Generator) generateCategory(category Category) (CategoryResult, error) {
	switch category {
	case CategoryQueries:
		return g.generateStatements(g.queryKind())
	case CategoryMutations:
		return g.generateStatements(g.mutationKind())
	case CategoryCRUD:
		return g.generateCRUD()
	case CategoryEvents:
		return g.generateEvents()
	}

	return CategoryResult{}, fmt.Errorf("unknown category %q", category)
}

// addModule renders a module and records it under its file stem, which is
// also the name listed in the category index.
func (g *Generator) addModule(result *CategoryResult, tmpl, name string, data any) error {
	stem := moduleFileName(name)
	path := filepath.Join(g.outputDir, string(result.Category), stem+goExt)

	content, err := g.renderer.render(tmpl, path, data)
	if err != nil {
		return fmt.Errorf("rendering %s %s: %w", result.Category, name, err)
	}

	if _, ok := result.Modules[stem]; ok {
		log.Printf("WARNING: %s %q is defined more than once, the last definition wins", result.Category, stem)
	}

	result.Modules[stem] = Module{Name: stem, Path: path, Content: content}

	return nil
}

// listSources returns the definition files of dir in lexical order. A
// missing directory yields no files.
func (g *Generator) listSources(dir string) ([]string, error) {
	dir = resolve(g.root, dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	files := make([]string, 0, len(entries))

	for _, e := range entries {
		if !e.Type().IsRegular() || filepath.Ext(e.Name()) != g.cfg.Extension {
			continue
		}

		path := filepath.Join(dir, e.Name())
		if g.excluded(path) {
			continue
		}

		files = append(files, path)
	}

	sort.Strings(files)

	return files, nil
}

func (g *Generator) excluded(path string) bool {
	rel := filepath.ToSlash(g.rel(path))
	base := filepath.Base(path)

	for _, pattern := range g.exclude {
		if pattern.Match(rel) || pattern.Match(base) {
			return true
		}
	}

	return false
}

// rel returns path relative to the project root when possible.
func (g *Generator) rel(path string) string {
	rel, err := filepath.Rel(g.root, path)
	if err != nil {
		return path
	}

	return rel
}

// importPath returns the Go import path of a directory of the project.
func (g *Generator) importPath(dir string) (string, error) {
	if g.cfg.Module != "" {
		return joinImportPath(g.cfg.Module, g.root, dir)
	}

	return findImportBase(dir)
}

// typesImport returns the import path of the package declaring the query and
// mutation response types.
func (g *Generator) typesImport() (string, error) {
	pkg := g.cfg.TypesPackage
	if first, _, _ := strings.Cut(pkg, "/"); strings.Contains(first, ".") {
		return pkg, nil
	}

	return g.importPath(resolve(g.root, pkg))
}

// resolve makes path absolute against root.
func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(root, path)
}

// moduleFileName returns the file stem of a generated module. Names the Go
// tool would treat specially get a "_gen" suffix.
func moduleFileName(name string) string {
	stem := sanitizeFileName(name)

	switch {
	case stem == strings.TrimSuffix(indexFileName, goExt):
		return stem + "_gen"
	case strings.HasSuffix(stem, "_test"):
		return stem + "_gen"
	case hasBuildSuffix(stem):
		return stem + "_gen"
	case strings.HasPrefix(stem, "_") || strings.HasPrefix(stem, "."):
		return "gen" + stem
	}

	return stem
}

func sanitizeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == filepath.Separator {
			return '_'
		}

		return r
	}, name)
}

var (
	knownOS = map[string]bool{
		"aix": true, "android": true, "darwin": true, "dragonfly": true, "freebsd": true,
		"hurd": true, "illumos": true, "ios": true, "js": true, "linux": true, "nacl": true,
		"netbsd": true, "openbsd": true, "plan9": true, "solaris": true, "wasip1": true,
		"windows": true, "zos": true,
	}
	knownArch = map[string]bool{
		"386": true, "amd64": true, "arm": true, "arm64": true, "loong64": true, "mips": true,
		"mipsle": true, "mips64": true, "mips64le": true, "ppc64": true, "ppc64le": true,
		"riscv64": true, "s390x": true, "wasm": true,
	}
)

// hasBuildSuffix reports whether stem ends in _GOOS or _GOARCH.
func hasBuildSuffix(stem string) bool {
	i := strings.LastIndexByte(stem, '_')
	if i <= 0 {
		return false
	}

	suffix := stem[i+1:]

	return knownOS[suffix] || knownArch[suffix]
}

// Root returns the absolute project root.
func (g *Generator) Root() string {
	return g.root
}

// WatchDirs returns the input directories resolved the way a pass reads them.
func (g *Generator) WatchDirs() []string {
	dirs := make([]string, 0, len(g.cfg.WatchDirs()))
	for _, dir := range g.cfg.WatchDirs() {
		dirs = append(dirs, resolve(g.root, dir))
	}

	return dirs
}
