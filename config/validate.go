package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

var (
	// ErrEmptyPath indicates a missing directory path
	ErrEmptyPath = errors.New("empty path")

	// ErrInvalidExtension indicates a definition file extension without a leading dot
	ErrInvalidExtension = errors.New("invalid extension")

	// ErrInvalidPattern indicates an exclude pattern that does not compile
	ErrInvalidPattern = errors.New("invalid exclude pattern")

	// ErrOutputOverlap indicates the output directory is also an input directory
	ErrOutputOverlap = errors.New("output directory overlaps an input directory")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	paths := map[string]string{
		"paths.schemas":   cfg.Paths.Schemas,
		"paths.queries":   cfg.Paths.Queries,
		"paths.mutations": cfg.Paths.Mutations,
		"paths.events":    cfg.Paths.Events,
		"paths.output":    cfg.Paths.Output,
		"paths.api":       cfg.Paths.API,
	}

	for _, key := range []string{"paths.schemas", "paths.queries", "paths.mutations", "paths.events", "paths.output", "paths.api"} {
		if strings.TrimSpace(paths[key]) == "" {
			errs = append(errs, fmt.Errorf("%w: %s must be set", ErrEmptyPath, key))
		}
	}

	if cfg.Paths.Output != "" {
		out := filepath.Clean(cfg.Paths.Output)
		for _, dir := range cfg.WatchDirs() {
			if dir != "" && filepath.Clean(dir) == out {
				errs = append(errs, fmt.Errorf("%w: %s", ErrOutputOverlap, dir))
			}
		}
	}

	if !strings.HasPrefix(cfg.Extension, ".") || len(cfg.Extension) < 2 {
		errs = append(errs, fmt.Errorf("%w: must start with '.', got '%s'", ErrInvalidExtension, cfg.Extension))
	}

	for _, pattern := range cfg.Exclude {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s: %w", ErrInvalidPattern, pattern, err))
		}
	}

	return errors.Join(errs...)
}
