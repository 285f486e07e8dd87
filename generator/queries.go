package generator

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/kalbasit/surqlgen/surql"
)

// queryData is the context of query.go.tmpl.
type queryData struct {
	Header       string
	Package      string
	TypesImport  string
	Name         string
	Source       string
	Text         string
	ConstName    string
	FuncName     string
	ResponseType string
	Verb         string
	VarNames     []QueryVariable
	Params       []Param
	Bindings     []Param
}

// statementKind describes the queries and mutations categories, which only
// differ in naming.
type statementKind struct {
	category Category
	dir      string
	verb     string
	prefix   string
	suffix   string
}

func (g *Generator) queryKind() statementKind {
	return statementKind{
		category: CategoryQueries,
		dir:      g.cfg.Paths.Queries,
		verb:     "query",
		prefix:   "Query",
		suffix:   "query",
	}
}

func (g *Generator) mutationKind() statementKind {
	return statementKind{
		category: CategoryMutations,
		dir:      g.cfg.Paths.Mutations,
		verb:     "mutate",
		prefix:   "Mutate",
		suffix:   "mutation",
	}
}

// generateStatements renders one module per query or mutation file.
func (g *Generator) generateStatements(kind statementKind) (CategoryResult, error) {
	result := CategoryResult{Category: kind.category, Modules: make(map[string]Module)}

	files, err := g.listSources(kind.dir)
	if err != nil || len(files) == 0 {
		return result, err
	}

	typesImport, err := g.typesImport()
	if err != nil {
		return result, err
	}

	for _, path := range files {
		text, err := os.ReadFile(path)
		if err != nil {
			return result, fmt.Errorf("reading %s: %w", path, err)
		}

		if _, err := surql.Parse(string(text)); err != nil {
			return result, &SourceError{Category: kind.category, Path: g.rel(path), Err: err}
		}

		name := toSnakeCase(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
		vars := ExtractQueryVariables(string(text))
		params, bindings := queryParams(g.rel(path), vars)

		data := queryData{
			Header:       generatedHeader,
			Package:      string(kind.category),
			TypesImport:  typesImport,
			Name:         name,
			Source:       g.rel(path),
			Text:         string(text),
			ConstName:    toCamelCase(name + "_" + kind.suffix),
			FuncName:     kind.prefix + toPascalCase(name),
			ResponseType: toPascalCase(name + "_" + kind.suffix),
			Verb:         kind.verb,
			VarNames:     vars,
			Params:       params,
			Bindings:     bindings,
		}

		if err := g.addModule(&result, queryTemplate, name, data); err != nil {
			return result, err
		}
	}

	return result, nil
}

// queryParams turns annotations into function parameters. Every annotation
// becomes a parameter; when a variable is declared twice the last parameter
// is the one bound.
func queryParams(source string, vars []QueryVariable) ([]Param, []Param) {
	params := make([]Param, 0, len(vars))
	bound := make(map[string]int, len(vars))
	used := make(map[string]int, len(vars))

	var bindings []Param

	for _, v := range vars {
		ident := paramName(v.Name)

		used[ident]++
		if n := used[ident]; n > 1 {
			ident = fmt.Sprintf("%s%d", ident, n)
		}

		p := Param{Name: ident, Type: ParamType(v.Type), VarName: v.Name}
		params = append(params, p)

		if i, ok := bound[v.Name]; ok {
			log.Printf("WARNING: %s declares $%s more than once", source, v.Name)

			bindings[i] = p

			continue
		}

		bound[v.Name] = len(bindings)
		bindings = append(bindings, p)
	}

	return params, bindings
}
