package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/systmms/entops/internal/client"
	"github.com/systmms/entops/internal/config"
	enterrors "github.com/systmms/entops/internal/errors"
)

func NewDescribeCommand(cfg *config.Config) *cobra.Command {
	var (
		uuid   string
		output string
	)

	cmd := &cobra.Command{
		Use:   "describe <accounts|providers|resource_types|projects> [name]",
		Short: "Show one entity in full",
		Long: `Fetch one entity from the server and print its full envelope.

Examples:
  # Describe an account by name
  entops describe accounts vault

  # Describe by uuid
  entops describe projects --uuid 2b7a...

  # Print as YAML
  entops describe accounts vault -o yaml`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := collectionKinds[args[0]]
			if !ok {
				return enterrors.UserError{
					Message:    fmt.Sprintf("Unknown collection %q", args[0]),
					Suggestion: "Use one of: accounts, providers, resource_types, projects",
				}
			}
			if uuid == "" && len(args) < 2 {
				return enterrors.UserError{
					Message:    "Entity name or --uuid is required",
					Suggestion: fmt.Sprintf("Run 'entops get %s' to see what exists", args[0]),
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

			ctx := context.Background()
			var e *client.Entity
			if uuid != "" {
				e, err = c.Get(ctx, kind, uuid)
			} else {
				e, err = c.GetByName(ctx, kind, args[1])
			}
			if err != nil {
				return enterrors.SimplifyError(err)
			}

			return writeOutput(cmd.OutOrStdout(), output, e)
		},
	}

	cmd.Flags().StringVar(&uuid, "uuid", "", "Address the entity by uuid instead of name")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format: json or yaml")

	return cmd
}
