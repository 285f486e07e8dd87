package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kalbasit/surqlgen/generator"
	"github.com/kalbasit/surqlgen/watcher"
)

func newGenerateCmd(opts *options) *cobra.Command {
	generateCmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"g"},
		Short:   "Generate code from the definition files",
	}

	generateCmd.AddCommand(newGenerateDBCmd(opts), newGenerateEndpointCmd(opts))

	return generateCmd
}

func newGenerateDBCmd(opts *options) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "db",
		Short: "Generate the database access layer",
		Long: `Generate the database access layer from the schemas, queries, mutations
and events folders.

Examples:
  # Generate once
  surqlgen generate db

  # Generate, then regenerate on every change until interrupted
  surqlgen generate db --watch
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerateDB(cmd, opts, watch)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "regenerate when a definition file changes")

	return cmd
}

func runGenerateDB(cmd *cobra.Command, opts *options, watch bool) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	gen, err := generator.New(opts.root, cfg)
	if err != nil {
		return err
	}

	gen.Verbose = opts.verbose

	out := cmd.OutOrStdout()
	regenerate := func() error {
		report, err := gen.Generate()
		if err != nil {
			return err
		}

		if report.TopLevelIndex {
			fmt.Fprintln(out, "db folder generated...")
		}

		return nil
	}

	if !watch {
		return regenerate()
	}

	if err := regenerate(); err != nil {
		log.Printf("Error while generating db folder: %v", err)
	}

	w, err := watcher.New(gen.WatchDirs(), regenerate)
	if err != nil {
		return err
	}
	defer w.Close()

	for _, dir := range w.Dirs() {
		rel, err := filepath.Rel(gen.Root(), dir)
		if err != nil {
			rel = dir
		}

		fmt.Fprintf(out, "Watching %s folder...\n", rel)
	}

	ctx, cancel := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return w.Run(ctx)
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}
