package config

// FileName is the configuration file looked up in the project root.
const FileName = "surqlgen.yaml"

// Config is the complete surqlgen configuration. It is loaded from
// surqlgen.yaml in the project root with SURQLGEN_* environment overrides.
type Config struct {
	Paths          PathsConfig `yaml:"paths" mapstructure:"paths"`
	Extension      string      `yaml:"extension" mapstructure:"extension"`               // definition file extension
	Exclude        []string    `yaml:"exclude" mapstructure:"exclude"`                   // glob patterns of definition files to skip
	Module         string      `yaml:"module" mapstructure:"module"`                     // import path of the project root, read from go.mod when empty
	TypesPackage   string      `yaml:"types_package" mapstructure:"types_package"`       // directory or import path of the response types
	ReadOnlyTables []string    `yaml:"read_only_tables" mapstructure:"read_only_tables"` // tables that only get read operations
	TemplatesDir   string      `yaml:"templates_dir" mapstructure:"templates_dir"`       // overrides for the built-in templates
}

// PathsConfig locates the definition directories and the generated output.
// Relative paths are resolved against the project root.
type PathsConfig struct {
	Schemas   string `yaml:"schemas" mapstructure:"schemas"`
	Queries   string `yaml:"queries" mapstructure:"queries"`
	Mutations string `yaml:"mutations" mapstructure:"mutations"`
	Events    string `yaml:"events" mapstructure:"events"`
	Output    string `yaml:"output" mapstructure:"output"`
	API       string `yaml:"api" mapstructure:"api"`
}

// Default returns a configuration with the conventional project layout.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Schemas:   "schemas",
			Queries:   "queries",
			Mutations: "mutations",
			Events:    "events",
			Output:    "db",
			API:       "api",
		},
		Extension:      ".surql",
		Exclude:        []string{},
		TypesPackage:   "types",
		ReadOnlyTables: []string{"script_migration"},
	}
}

// IsReadOnly reports whether table only gets read operations.
func (c *Config) IsReadOnly(table string) bool {
	for _, t := range c.ReadOnlyTables {
		if t == table {
			return true
		}
	}

	return false
}

// WatchDirs returns the definition directories watch mode observes.
func (c *Config) WatchDirs() []string {
	return []string{c.Paths.Schemas, c.Paths.Events, c.Paths.Queries, c.Paths.Mutations}
}
