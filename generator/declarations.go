package generator

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
)

// declaredNames returns the package level identifiers declared by a Go file.
// Methods, init functions and blank identifiers are left out.
func declaredNames(filename string, src []byte) ([]string, error) {
	f, err := parser.ParseFile(token.NewFileSet(), filename, src, parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("parsing generated %s: %w", filename, err)
	}

	var names []string

	add := func(ident *ast.Ident) {
		if ident.Name != "_" {
			names = append(names, ident.Name)
		}
	}

	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Recv == nil && d.Name.Name != "init" {
				add(d.Name)
			}
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					add(s.Name)
				case *ast.ValueSpec:
					for _, name := range s.Names {
						add(name)
					}
				}
			}
		}
	}

	return names, nil
}

// checkDeclarations fails when two files that end up in the same package
// declare the same identifier, e.g. tables post and posts both yielding
// GetAllPosts.
func checkDeclarations(category Category, files []Module) error {
	seen := make(map[string]string)

	for _, file := range files {
		names, err := declaredNames(file.Path, file.Content)
		if err != nil {
			return err
		}

		base := filepath.Base(file.Path)

		for _, name := range names {
			if prev, ok := seen[name]; ok {
				return fmt.Errorf("%w: %s: %s is declared by both %s and %s",
					ErrDuplicateDeclaration, category, name, prev, base)
			}

			seen[name] = base
		}
	}

	return nil
}
