package generator

import (
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"github.com/jinzhu/inflection"
	"golang.org/x/tools/imports"
	"mvdan.cc/gofumpt/format"
)

// toSnakeCase converts a file stem or CamelCase name to snake_case. Runs of
// capitals such as ID stay together and dashes, dots and spaces become
// underscores.
func toSnakeCase(s string) string {
	res := make([]rune, 0, len(s))
	runes := []rune(s)

	for i, r := range runes {
		if r == '-' || r == ' ' || r == '.' {
			r = '_'
		}

		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			if !unicode.IsUpper(prev) && prev != '_' && prev != '-' && prev != ' ' && prev != '.' {
				res = append(res, '_')
			}
		}

		res = append(res, unicode.ToLower(r))
	}

	return string(res)
}

// toPascalCase converts snake_case to PascalCase, e.g. post_by_id to PostById.
func toPascalCase(s string) string {
	return inflect.Camelize(sanitizeIdent(s))
}

// toCamelCase converts snake_case to camelCase, e.g. post_id to postId.
func toCamelCase(s string) string {
	return inflect.CamelizeDownFirst(sanitizeIdent(s))
}

func toPlural(s string) string { return inflection.Plural(s) }

// sanitizeIdent replaces every character that cannot appear in a Go
// identifier with an underscore.
func sanitizeIdent(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}

		return '_'
	}, s)
}

// reservedNames are identifiers generated functions already use.
var reservedNames = map[string]bool{
	"ctx": true, "db": true, "vars": true, "res": true, "err": true, "data": true, "id": true,
}

// paramName turns a SurrealQL parameter name into a safe Go parameter name.
func paramName(name string) string {
	ident := toCamelCase(name)
	if ident == "" || unicode.IsDigit([]rune(ident)[0]) {
		ident = "p" + ident
	}

	if token.IsKeyword(ident) || reservedNames[ident] {
		ident += "Param"
	}

	return ident
}

// formatSource fixes imports with goimports and formats with gofumpt.
func formatSource(filename string, content []byte) ([]byte, error) {
	withImports, err := imports.Process(filename, content, nil)
	if err != nil {
		return nil, fmt.Errorf("imports.Process %s: %w\n%s", filename, err, content)
	}

	formatted, err := format.Source(withImports, format.Options{
		LangVersion: "",
		ExtraRules:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("formatting %s: %w", filename, err)
	}

	return formatted, nil
}

func writeFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { //nolint:gosec
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}

	if err := os.WriteFile(path, content, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}

func joinParamsSignature(params []Param) string {
	p := make([]string, 0, len(params))
	for _, param := range params {
		p = append(p, fmt.Sprintf("%s %s", param.Name, param.Type))
	}

	return strings.Join(p, ", ")
}

func parseGoMod(goModPath, targetDir string) (string, error) {
	data, err := os.ReadFile(goModPath)
	if err != nil {
		return "", fmt.Errorf("reading go.mod at %s: %w", goModPath, err)
	}

	moduleName := ""

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "module ") {
			moduleName = strings.Trim(strings.TrimSpace(strings.TrimPrefix(line, "module ")), `"`)

			break
		}
	}

	if moduleName == "" {
		return "", fmt.Errorf("no module directive in %s: %w", goModPath, ErrModuleNotFound)
	}

	return joinImportPath(moduleName, filepath.Dir(goModPath), targetDir)
}

// joinImportPath computes the import path of targetDir inside the module
// rooted at moduleDir.
func joinImportPath(moduleName, moduleDir, targetDir string) (string, error) {
	relPath, err := filepath.Rel(moduleDir, targetDir)
	if err != nil {
		return "", fmt.Errorf("computing relative path: %w", err)
	}

	if relPath == "." {
		return moduleName, nil
	}

	return moduleName + "/" + filepath.ToSlash(relPath), nil
}

// findImportBase walks up from targetDir to find the nearest go.mod and computes
// the full import path for targetDir.
func findImportBase(targetDir string) (string, error) {
	dir := targetDir
	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return parseGoMod(goModPath, targetDir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no go.mod found walking up from %s: %w", targetDir, ErrModuleNotFound)
		}

		dir = parent
	}
}

// detectPackageName scans hand-written .go files in dir to find the package
// name, falling back to the directory name.
func detectPackageName(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return sanitizeIdent(filepath.Base(dir))
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		name := e.Name()
		if !strings.HasSuffix(name, goExt) || strings.HasSuffix(name, "_test.go") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}

		if strings.Contains(string(data), generatedHeader) {
			continue
		}

		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if strings.HasPrefix(line, "package ") {
				pkg := strings.TrimSpace(strings.TrimPrefix(line, "package "))
				// Remove any trailing comment
				if idx := strings.Index(pkg, " "); idx != -1 {
					pkg = pkg[:idx]
				}

				return pkg
			}
		}
	}

	return sanitizeIdent(filepath.Base(dir))
}
