package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kalbasit/surqlgen/generator"
)

func newGenerateEndpointCmd(opts *options) *cobra.Command {
	var endpoint generator.EndpointOptions

	cmd := &cobra.Command{
		Use:   "endpoint NAME",
		Short: "Generate an HTTP endpoint calling the database access layer",
		Long: `Generate an HTTP handler in the api folder. Without a --from flag an empty
handler is generated.

Examples:
  surqlgen generate endpoint postById --from-query post_by_id
  surqlgen generate endpoint comment --from-mutation comment
  surqlgen generate endpoint publishPost --from-event publish_post
  surqlgen generate endpoint listPosts --from-schema post --method list
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			gen, err := generator.New(opts.root, cfg)
			if err != nil {
				return err
			}

			endpoint.Name = args[0]

			if _, err := gen.GenerateEndpoint(endpoint); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Endpoint %s successfully created\n", endpoint.Name)

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&endpoint.FromQuery, "from-query", "", "query the endpoint runs")
	flags.StringVar(&endpoint.FromMutation, "from-mutation", "", "mutation the endpoint runs")
	flags.StringVar(&endpoint.FromEvent, "from-event", "", "event the endpoint fires")
	flags.StringVar(&endpoint.FromSchema, "from-schema", "", "schema whose table the endpoint serves")
	flags.StringVar(&endpoint.Method, "method", "", "CRUD method for --from-schema ("+strings.Join(generator.Methods, "|")+")")

	cmd.MarkFlagsMutuallyExclusive("from-query", "from-mutation", "from-event", "from-schema")

	return cmd
}
