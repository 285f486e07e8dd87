package generator

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

const (
	queryTemplate    = "query.go.tmpl"
	crudTemplate     = "crud.go.tmpl"
	eventTemplate    = "event.go.tmpl"
	categoryTemplate = "category.go.tmpl"
	indexTemplate    = "index.go.tmpl"
	endpointTemplate = "endpoint.go.tmpl"
)

// renderer executes the generator templates. Templates found in dir replace
// the embedded ones of the same name.
type renderer struct {
	dir   string
	cache map[string]*template.Template
}

func newRenderer(dir string) *renderer {
	return &renderer{dir: dir, cache: make(map[string]*template.Template)}
}

// reset drops the parsed templates so the next render reads them again.
func (r *renderer) reset() {
	r.cache = make(map[string]*template.Template)
}

func (r *renderer) load(name string) (*template.Template, error) {
	if t, ok := r.cache[name]; ok {
		return t, nil
	}

	text, err := r.read(name)
	if err != nil {
		return nil, err
	}

	t, err := template.New(name).Funcs(templateFuncs()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	r.cache[name] = t

	return t, nil
}

func (r *renderer) read(name string) (string, error) {
	if r.dir != "" {
		path := filepath.Join(r.dir, name)

		data, err := os.ReadFile(path)
		if err == nil {
			return string(data), nil
		}

		if !os.IsNotExist(err) {
			return "", errTemplateNotFound(path, err)
		}
	}

	data, err := embeddedTemplates.ReadFile("templates/" + name)
	if err != nil {
		return "", errTemplateNotFound(name, err)
	}

	return string(data), nil
}

// render executes the named template and formats the output as Go source.
func (r *renderer) render(name, filename string, data any) ([]byte, error) {
	t, err := r.load(name)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}

	return formatSource(filename, buf.Bytes())
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"pascal":              toPascalCase,
		"camel":               toCamelCase,
		"snake":               toSnakeCase,
		"plural":              toPlural,
		"goString":            goString,
		"quote":               strconv.Quote,
		"join":                strings.Join,
		"flatten":             flatten,
		"joinParamsSignature": joinParamsSignature,
	}
}

// goString renders s as a Go string literal, raw when possible.
func goString(s string) string {
	if !strings.Contains(s, "`") && !strings.Contains(s, "\r") {
		return "`" + s + "`"
	}

	return strconv.Quote(s)
}

// flatten turns strings, string slices and query variables into one list of
// strings.
func flatten(values ...any) []string {
	var out []string

	for _, v := range values {
		switch v := v.(type) {
		case string:
			out = append(out, v)
		case []string:
			out = append(out, v...)
		case []QueryVariable:
			for _, qv := range v {
				out = append(out, "$"+qv.Name)
			}
		case []any:
			out = append(out, flatten(v...)...)
		}
	}

	return out
}
