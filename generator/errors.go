package generator

import (
	"errors"
	"fmt"
)

var (
	// ErrTemplateNotFound is returned when a template cannot be located or read.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrModuleNotFound is returned when no go.mod is found above a directory
	// and no module path is configured.
	ErrModuleNotFound = errors.New("go module not found")

	// ErrSourceNotFound is returned when an endpoint refers to a missing definition file.
	ErrSourceNotFound = errors.New("source does not exist")

	// ErrDuplicateDeclaration is returned when two generated files of one
	// package declare the same identifier.
	ErrDuplicateDeclaration = errors.New("duplicate declaration")

	// ErrInvalidEndpoint is returned for endpoint requests that cannot be satisfied.
	ErrInvalidEndpoint = errors.New("invalid endpoint")
)

// SourceError wraps a failure tied to a single definition file, most often a
// *surql.ParseError.
type SourceError struct {
	Category Category
	Path     string
	Err      error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Category, e.Path, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

func errTemplateNotFound(name string, err error) error {
	if err == nil {
		return fmt.Errorf("%s: %w", name, ErrTemplateNotFound)
	}

	return fmt.Errorf("%s: %w: %w", name, ErrTemplateNotFound, err)
}

// SourceNotFoundError names the definition file an endpoint was asked to use.
type SourceNotFoundError struct {
	Kind string
	Name string
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' does not exist", e.Kind, e.Name)
}

func (e *SourceNotFoundError) Is(target error) bool {
	return target == ErrSourceNotFound
}
