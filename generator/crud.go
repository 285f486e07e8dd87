package generator

import (
	"fmt"
	"os"
	"strings"

	"github.com/kalbasit/surqlgen/surql"
)

// recordField is a struct field ready for rendering.
type recordField struct {
	GoName string
	GoType string
	Tag    string
}

// crudData is the context of crud.go.tmpl.
type crudData struct {
	Header     string
	Package    string
	Table      string
	TableConst string
	Struct     string
	Plural     string
	ReadOnly   bool
	Fields     []recordField
}

// eventData is the context of event.go.tmpl.
type eventData struct {
	Header   string
	Package  string
	Name     string
	Table    string
	Struct   string
	FuncName string
	Fields   []recordField
}

// parseSource reads and parses one definition file.
func (g *Generator) parseSource(category Category, path string) ([]surql.Statement, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	stmts, err := surql.Parse(string(text))
	if err != nil {
		return nil, &SourceError{Category: category, Path: g.rel(path), Err: err}
	}

	return stmts, nil
}

// generateCRUD renders one module per DEFINE TABLE found in the schemas.
func (g *Generator) generateCRUD() (CategoryResult, error) {
	result := CategoryResult{Category: CategoryCRUD, Modules: make(map[string]Module)}

	files, err := g.listSources(g.cfg.Paths.Schemas)
	if err != nil {
		return result, err
	}

	for _, path := range files {
		stmts, err := g.parseSource(CategoryCRUD, path)
		if err != nil {
			return result, err
		}

		fields := DefineFields(stmts)

		for _, table := range DefineTables(stmts) {
			name := table.Name
			structName := toPascalCase(name)

			data := crudData{
				Header:     generatedHeader,
				Package:    string(CategoryCRUD),
				Table:      name,
				TableConst: structName + "TableName",
				Struct:     structName,
				Plural:     toPlural(structName),
				ReadOnly:   g.cfg.IsReadOnly(name),
				Fields:     recordFields(ExtractStructFields(fieldsOf(fields, name), true)),
			}

			if err := g.addModule(&result, crudTemplate, name, data); err != nil {
				return result, err
			}
		}
	}

	return result, nil
}

// generateEvents renders one module per DEFINE EVENT whose table is defined in
// the same file and has at least one field depending on $value.
func (g *Generator) generateEvents() (CategoryResult, error) {
	result := CategoryResult{Category: CategoryEvents, Modules: make(map[string]Module)}

	files, err := g.listSources(g.cfg.Paths.Events)
	if err != nil {
		return result, err
	}

	for _, path := range files {
		stmts, err := g.parseSource(CategoryEvents, path)
		if err != nil {
			return result, err
		}

		tables := make(map[string]bool)
		for _, t := range DefineTables(stmts) {
			tables[t.Name] = true
		}

		fields := DefineFields(stmts)

		for _, event := range DefineEvents(stmts) {
			if !tables[event.Name] {
				continue
			}

			used := usedFields(fieldsOf(fields, event.Name))
			if len(used) == 0 {
				continue
			}

			data := eventData{
				Header:   generatedHeader,
				Package:  string(CategoryEvents),
				Name:     event.Name,
				Table:    event.Name,
				Struct:   toPascalCase(event.Name + "_data"),
				FuncName: toPascalCase(event.Name),
				Fields:   recordFields(ExtractStructFields(used, false)),
			}

			if err := g.addModule(&result, eventTemplate, event.Name, data); err != nil {
				return result, err
			}
		}
	}

	return result, nil
}

// usedFields keeps the non-id fields whose VALUE clause depends on $value.
func usedFields(fields []*surql.DefineFieldStatement) []*surql.DefineFieldStatement {
	var out []*surql.DefineFieldStatement

	for _, f := range fields {
		if f.Name != idField && IsValueParamUsed(f.Value) {
			out = append(out, f)
		}
	}

	return out
}

// recordFields turns struct fields into renderable Go fields. Nested field
// paths such as "address.city" or "tags.*" belong to their parent field and
// are skipped.
func recordFields(fields []StructField) []recordField {
	out := make([]recordField, 0, len(fields))

	for _, f := range fields {
		if strings.ContainsAny(f.Name, ".[*") {
			continue
		}

		rf := recordField{GoName: toPascalCase(f.Name), GoType: f.TypeStr, Tag: f.Name}
		if f.Name == idField {
			rf.GoName = "ID"
			rf.Tag = "id,omitempty"

			if f.TypeStr == typeRecordID {
				rf.GoType = "*" + typeRecordID
			}
		}

		out = append(out, rf)
	}

	return out
}
