package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Endpoint methods available for endpoints generated from a schema.
const (
	MethodList   = "list"
	MethodGet    = "get"
	MethodFind   = "find"
	MethodCreate = "create"
	MethodUpdate = "update"
	MethodDelete = "delete"
)

// Methods lists the accepted schema endpoint methods.
var Methods = []string{MethodList, MethodGet, MethodFind, MethodCreate, MethodUpdate, MethodDelete}

// EndpointOptions describes an HTTP endpoint to generate. At most one of the
// From fields may be set.
type EndpointOptions struct {
	Name         string
	FromQuery    string
	FromMutation string
	FromEvent    string
	FromSchema   string
	Method       string
}

// endpointData is the context of endpoint.go.tmpl.
type endpointData struct {
	Package  string
	Name     string
	FuncName string
	Kind     string
	Method   string
	Import   string
	PkgName  string
	Call     string
	Struct   string
	Args     []string
	Fields   []recordField

	NeedsID   bool
	NeedsBody bool
}

// GenerateEndpoint writes an HTTP handler calling the generated access layer
// and returns its path relative to the project root.
func (g *Generator) GenerateEndpoint(opts EndpointOptions) (string, error) {
	if strings.TrimSpace(opts.Name) == "" {
		return "", fmt.Errorf("%w: a name is required", ErrInvalidEndpoint)
	}

	apiDir := resolve(g.root, g.cfg.Paths.API)
	fileName := toSnakeCase(opts.Name)

	data := endpointData{
		Package:  detectPackageName(apiDir),
		Name:     opts.Name,
		FuncName: toPascalCase(fileName),
		Kind:     "stub",
	}

	var err error

	switch sources := countSources(opts); {
	case sources > 1:
		return "", fmt.Errorf("%w: --from-query, --from-mutation, --from-event and --from-schema are mutually exclusive", ErrInvalidEndpoint)
	case opts.Method != "" && opts.FromSchema == "":
		return "", fmt.Errorf("%w: --method requires --from-schema", ErrInvalidEndpoint)
	case opts.FromQuery != "":
		err = g.statementEndpoint(&data, g.queryKind(), "Query", opts.FromQuery)
	case opts.FromMutation != "":
		err = g.statementEndpoint(&data, g.mutationKind(), "Mutation", opts.FromMutation)
	case opts.FromEvent != "":
		err = g.eventEndpoint(&data, opts.FromEvent)
	case opts.FromSchema != "":
		err = g.schemaEndpoint(&data, opts.FromSchema, opts.Method)
	}

	if err != nil {
		return "", err
	}

	path := filepath.Join(apiDir, moduleFileName(fileName)+goExt)

	content, err := g.renderer.render(endpointTemplate, path, data)
	if err != nil {
		return "", fmt.Errorf("rendering endpoint %s: %w", opts.Name, err)
	}

	if err := writeFile(path, content); err != nil {
		return "", err
	}

	return g.rel(path), nil
}

func countSources(opts EndpointOptions) int {
	n := 0

	for _, s := range []string{opts.FromQuery, opts.FromMutation, opts.FromEvent, opts.FromSchema} {
		if s != "" {
			n++
		}
	}

	return n
}

// sourcePath locates a definition file by name. The name may carry the
// definition extension or ".go".
func (g *Generator) sourcePath(kind, dir, name string) (string, string, error) {
	stem := strings.TrimSuffix(strings.TrimSuffix(name, goExt), g.cfg.Extension)
	file := stem + g.cfg.Extension
	path := filepath.Join(resolve(g.root, dir), file)

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", "", &SourceNotFoundError{Kind: kind, Name: file}
	}

	return stem, path, nil
}

func (g *Generator) categoryImport(c Category) (string, error) {
	return g.importPath(filepath.Join(g.outputDir, string(c)))
}

func (g *Generator) statementEndpoint(data *endpointData, kind statementKind, label, name string) error {
	stem, path, err := g.sourcePath(label, kind.dir, name)
	if err != nil {
		return err
	}

	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	importPath, err := g.categoryImport(kind.category)
	if err != nil {
		return err
	}

	params, bindings := queryParams(g.rel(path), ExtractQueryVariables(string(text)))

	data.Kind = "statement"
	data.Import = importPath
	data.PkgName = string(kind.category)
	data.Call = kind.prefix + toPascalCase(toSnakeCase(stem))

	for _, p := range bindings {
		data.Fields = append(data.Fields, recordField{GoName: toPascalCase(p.VarName), GoType: p.Type, Tag: p.VarName})
	}

	for _, p := range params {
		data.Args = append(data.Args, "req."+toPascalCase(p.VarName))
	}

	return nil
}

func (g *Generator) eventEndpoint(data *endpointData, name string) error {
	stem, path, err := g.sourcePath("Event", g.cfg.Paths.Events, name)
	if err != nil {
		return err
	}

	stmts, err := g.parseSource(CategoryEvents, path)
	if err != nil {
		return err
	}

	events := DefineEvents(stmts)
	if len(events) == 0 {
		return fmt.Errorf("%w: %s defines no event", ErrInvalidEndpoint, g.rel(path))
	}

	event := events[0].Name
	for _, e := range events {
		if e.Name == stem {
			event = e.Name
		}
	}

	importPath, err := g.categoryImport(CategoryEvents)
	if err != nil {
		return err
	}

	data.Kind = "event"
	data.Import = importPath
	data.PkgName = string(CategoryEvents)
	data.Call = toPascalCase(event)
	data.Struct = toPascalCase(event + "_data")

	return nil
}

func (g *Generator) schemaEndpoint(data *endpointData, name, method string) error {
	if method == "" {
		return fmt.Errorf("%w: --from-schema requires --method (one of %s)", ErrInvalidEndpoint, strings.Join(Methods, ", "))
	}

	stem, path, err := g.sourcePath("Schema", g.cfg.Paths.Schemas, name)
	if err != nil {
		return err
	}

	stmts, err := g.parseSource(CategoryCRUD, path)
	if err != nil {
		return err
	}

	tables := DefineTables(stmts)
	if len(tables) == 0 {
		return fmt.Errorf("%w: %s defines no table", ErrInvalidEndpoint, g.rel(path))
	}

	table := tables[0].Name
	for _, t := range tables {
		if t.Name == stem {
			table = t.Name
		}
	}

	structName := toPascalCase(table)

	switch method {
	case MethodList:
		data.Call = "GetAll" + toPlural(structName)
	case MethodGet, MethodFind:
		data.Call = toPascalCase(method) + structName
		data.NeedsID = true
		data.Args = []string{"id"}
	case MethodCreate, MethodUpdate, MethodDelete:
		if g.cfg.IsReadOnly(table) {
			return fmt.Errorf("%w: table %s is read-only", ErrInvalidEndpoint, table)
		}

		data.Call = toPascalCase(method) + structName

		switch method {
		case MethodCreate:
			data.NeedsBody = true
			data.Args = []string{"data"}
		case MethodUpdate:
			data.NeedsID = true
			data.NeedsBody = true
			data.Args = []string{"id", "data"}
		default:
			data.NeedsID = true
			data.Args = []string{"id"}
		}
	default:
		return fmt.Errorf("%w: unknown method %q (one of %s)", ErrInvalidEndpoint, method, strings.Join(Methods, ", "))
	}

	importPath, err := g.categoryImport(CategoryCRUD)
	if err != nil {
		return err
	}

	data.Kind = "schema"
	data.Method = method
	data.Import = importPath
	data.PkgName = string(CategoryCRUD)
	data.Struct = structName

	return nil
}
