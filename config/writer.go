package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigExists is returned by Write when the file is already present.
var ErrConfigExists = errors.New("config file already exists")

// Write stores cfg as <rootDir>/surqlgen.yaml. An existing file is only
// replaced when force is set.
func Write(rootDir string, cfg *Config, force bool) (string, error) {
	path := filepath.Join(rootDir, FileName)

	if _, err := os.Stat(path); err == nil && !force {
		return path, fmt.Errorf("%s: %w", path, ErrConfigExists)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return path, fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec
		return path, fmt.Errorf("failed to write config: %w", err)
	}

	return path, nil
}
