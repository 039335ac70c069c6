package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/systmms/entops/internal/client"
	"github.com/systmms/entops/internal/config"
	enterrors "github.com/systmms/entops/internal/errors"
	"github.com/systmms/entops/pkg/entity"
)

func NewCreateCommand(cfg *config.Config) *cobra.Command {
	var (
		file  string
		name  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Compile a definition file and submit it to the server",
		Long: `Compile a declarative entity definition and create the resulting entity
on the configured management server.

Credential provider accounts are created as a bundle in dependency order:
provider first, then resource type, then account.

Examples:
  # Create from a definition file
  entops create -f account.yaml

  # Create under a different name, replacing any existing entity
  entops create -f account.yaml --name staging-vault --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return enterrors.UserError{
					Message:    "Definition file is required",
					Suggestion: "Use --file <path> to point at a definition file",
				}
			}

			if err := cfg.Load(); err != nil {
				return err
			}
			server, err := cfg.Server()
			if err != nil {
				return err
			}

			result, err := compileDefinition(file)
			if err != nil {
				return enterrors.SimplifyError(err)
			}
			if result.Kind == entity.KindSubstrate {
				return enterrors.UserError{
					Message:    "Substrate definitions cannot be created directly",
					Suggestion: "Embed the substrate in another definition, or use 'entops compile' to inspect it",
				}
			}
			if name != "" && result.Bundle == nil {
				result.Name = name
				result.Payload.Metadata.Name = name
				result.Payload.Spec.Name = name
			}

			c, err := client.New(server, cfg.Logger)
			if err != nil {
				return err
			}

			ctx := context.Background()
			if force {
				if err := deleteExisting(ctx, c, cfg, result.Kind, result.Name); err != nil {
					return enterrors.SimplifyError(err)
				}
			}

			if result.Bundle != nil {
				if err := c.CreateBundle(ctx, result.Bundle); err != nil {
					return enterrors.SimplifyError(err)
				}
				cfg.Logger.Info("Created credential provider bundle %q", result.Name)
				return nil
			}

			created, err := c.Create(ctx, result.Kind, result.Payload)
			if err != nil {
				return enterrors.SimplifyError(err)
			}
			cfg.Logger.Info("Created %s %q (uuid %s)", result.Kind, result.Name, created.UUID())
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Definition file to create from (required)")
	cmd.Flags().StringVar(&name, "name", "", "Override the entity name from the definition")
	cmd.Flags().BoolVar(&force, "force", false, "Delete any existing entity with the same name first")

	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func deleteExisting(ctx context.Context, c *client.Client, cfg *config.Config, kind, name string) error {
	existing, err := c.GetByName(ctx, kind, name)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			// Nothing to replace.
			return nil
		}
		// Ambiguous names and transport failures propagate; replacing
		// blindly would add another duplicate.
		return err
	}
	cfg.Logger.Warn("Replacing existing %s %q (uuid %s)", kind, name, existing.UUID())
	if err := c.Delete(ctx, kind, existing.UUID()); err != nil {
		return fmt.Errorf("deleting existing %s: %w", kind, err)
	}
	return nil
}
