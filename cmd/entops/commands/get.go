package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/systmms/entops/internal/client"
	"github.com/systmms/entops/internal/config"
	enterrors "github.com/systmms/entops/internal/errors"
	"github.com/systmms/entops/pkg/entity"
)

// collectionKinds maps the plural collection argument to an API kind.
var collectionKinds = map[string]string{
	"accounts":       entity.KindAccount,
	"providers":      entity.KindProvider,
	"resource_types": entity.KindResourceType,
	"projects":       entity.KindProject,
}

func NewGetCommand(cfg *config.Config) *cobra.Command {
	var (
		name   string
		filter string
		limit  int
		offset int
		quiet  bool
	)

	cmd := &cobra.Command{
		Use:   "get <accounts|providers|resource_types|projects>",
		Short: "List entities on the server",
		Long: `List entities of a kind from the configured management server.

Examples:
  # List all accounts
  entops get accounts

  # List projects matching a name
  entops get projects --name default

  # List with a raw API filter
  entops get accounts --filter "type==custom_provider"

  # Print only names, for scripting
  entops get accounts --quiet`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := collectionKinds[args[0]]
			if !ok {
				return enterrors.UserError{
					Message:    fmt.Sprintf("Unknown collection %q", args[0]),
					Suggestion: "Use one of: accounts, providers, resource_types, projects",
				}
			}

			if name != "" && filter != "" {
				return enterrors.UserError{
					Message:    "Flags --name and --filter cannot be combined",
					Suggestion: "Put the name condition in the filter: --filter \"name==<name>;<expr>\"",
				}
			}

			if err := cfg.Load(); err != nil {
				return err
			}
			server, err := cfg.Server()
			if err != nil {
				return err
			}

			c, err := client.New(server, cfg.Logger)
			if err != nil {
				return err
			}

			params := client.ListParams{
				Filter: filter,
				Length: limit,
				Offset: offset,
			}
			if name != "" {
				params.Filter = "name==" + name
			}

			resp, err := c.List(context.Background(), kind, params)
			if err != nil {
				return enterrors.SimplifyError(err)
			}

			out := cmd.OutOrStdout()
			if quiet {
				for _, e := range resp.Entities {
					fmt.Fprintln(out, e.Name())
				}
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tUUID\tSTATE")
			for _, e := range resp.Entities {
				state, _ := e.Status["state"].(string)
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name(), e.UUID(), state)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nTotal matches: %d\n", resp.Metadata.TotalMatches)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Filter by exact entity name")
	cmd.Flags().StringVar(&filter, "filter", "", "Raw API filter expression")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of entities to list")
	cmd.Flags().IntVar(&offset, "offset", 0, "Offset into the result set")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print only entity names")

	return cmd
}
