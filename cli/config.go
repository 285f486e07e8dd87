package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kalbasit/surqlgen/config"
)

func newConfigCmd(opts *options) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the surqlgen configuration",
	}

	var force bool

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write " + config.FileName + " with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.Write(opts.root, config.Default(), force)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)

			return nil
		},
	}

	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")

	configCmd.AddCommand(initCmd)

	return configCmd
}
