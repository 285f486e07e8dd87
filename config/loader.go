package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir    string
	configFile string
}

// NewLoader creates a new configuration loader for the given root directory.
// configFile overrides the default <root>/surqlgen.yaml when not empty.
func NewLoader(rootDir, configFile string) Loader {
	return &loader{
		rootDir:    rootDir,
		configFile: configFile,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (SURQLGEN_*)
// 2. Config file (surqlgen.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.SetConfigType("yaml")
		v.AddConfigPath(l.rootDir)
	}

	v.SetEnvPrefix("SURQLGEN")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., SURQLGEN_PATHS_OUTPUT)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine, defaults and env vars apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || l.configFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values. Every key needs a
// default so AutomaticEnv can override it.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("paths.schemas", defaults.Paths.Schemas)
	v.SetDefault("paths.queries", defaults.Paths.Queries)
	v.SetDefault("paths.mutations", defaults.Paths.Mutations)
	v.SetDefault("paths.events", defaults.Paths.Events)
	v.SetDefault("paths.output", defaults.Paths.Output)
	v.SetDefault("paths.api", defaults.Paths.API)

	v.SetDefault("extension", defaults.Extension)
	v.SetDefault("exclude", defaults.Exclude)
	v.SetDefault("module", defaults.Module)
	v.SetDefault("types_package", defaults.TypesPackage)
	v.SetDefault("read_only_tables", defaults.ReadOnlyTables)
	v.SetDefault("templates_dir", defaults.TemplatesDir)
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir, "").Load()
}

// LoadConfig loads configuration using the current working directory as the root.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	return LoadConfigFromDir(wd)
}
