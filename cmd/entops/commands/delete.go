package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/systmms/entops/internal/client"
	"github.com/systmms/entops/internal/config"
	enterrors "github.com/systmms/entops/internal/errors"
)

func NewDeleteCommand(cfg *config.Config) *cobra.Command {
	var uuid string

	cmd := &cobra.Command{
		Use:   "delete <accounts|providers|resource_types|projects> [name]",
		Short: "Delete an entity from the server",
		Long: `Delete one entity by name or uuid.

Examples:
  # Delete an account by name
  entops delete accounts vault

  # Delete by uuid
  entops delete projects --uuid 2b7a...`,
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
			target := uuid
			name := uuid
			if target == "" {
				e, err := c.GetByName(ctx, kind, args[1])
				if err != nil {
					return enterrors.SimplifyError(err)
				}
				target = e.UUID()
				name = e.Name()
			}

			if err := c.Delete(ctx, kind, target); err != nil {
				return enterrors.SimplifyError(err)
			}
			cfg.Logger.Info("Deleted %s %q", kind, name)
			return nil
		},
	}

	cmd.Flags().StringVar(&uuid, "uuid", "", "Address the entity by uuid instead of name")

	return cmd
}
