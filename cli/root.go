// Package cli implements the surqlgen command line.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/kalbasit/surqlgen/config"
)

// options are the flags shared by every command.
type options struct {
	root       string
	configFile string
	verbose    bool
}

func (o *options) loadConfig() (*config.Config, error) {
	return config.NewLoader(o.root, o.configFile).Load()
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "surqlgen",
		Short: "Generate a typed Go access layer from SurrealQL definitions",
		Long: `surqlgen reads the SurrealQL definition files of a project (schemas,
queries, mutations and events) and generates Go packages calling them
through the SurrealDB Go SDK.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.root, "root", ".", "project root directory")
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default is <root>/"+config.FileName+")")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		newGenerateCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs the command line and exits with a non-zero status on error.
// This is called by main.main().
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
