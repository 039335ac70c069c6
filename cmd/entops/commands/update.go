package commands

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/systmms/entops/internal/client"
	"github.com/systmms/entops/internal/config"
	enterrors "github.com/systmms/entops/internal/errors"
	"github.com/systmms/entops/pkg/entity"
)

func NewUpdateCommand(cfg *config.Config) *cobra.Command {
	var (
		file string
		name string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Compile a definition file and update the existing entity in place",
		Long: `Compile a declarative entity definition and update the entity of the same
name on the configured management server. The existing entity's identifier
and spec version are resolved from the server, so the definition file does
not need to carry them.

Credential provider accounts are updated as a bundle in dependency order:
provider first, then resource type, then account, with the cross references
re-pointed at the identifiers the server already holds.

Examples:
  # Update from a definition file
  entops update -f account.yaml

  # Update an entity created under a different name
  entops update -f account.yaml --name staging-vault`,
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
					Message:    "Substrate definitions cannot be updated directly",
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
			if result.Bundle != nil {
				if err := c.UpdateBundle(ctx, result.Name, result.Bundle); err != nil {
					return enterrors.SimplifyError(err)
				}
				cfg.Logger.Info("Updated credential provider bundle %q", result.Name)
				return nil
			}

			existing, err := c.GetByName(ctx, result.Kind, result.Name)
			if err != nil {
				return enterrors.SimplifyError(err)
			}
			result.Payload.Metadata.UUID = existing.UUID()
			result.Payload.Metadata.SpecVersion = existing.SpecVersion()

			updated, err := c.Update(ctx, result.Kind, existing.UUID(), result.Payload)
			if err != nil {
				return enterrors.SimplifyError(err)
			}
			cfg.Logger.Info("Updated %s %q (uuid %s)", result.Kind, result.Name, updated.UUID())
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Definition file to update from (required)")
	cmd.Flags().StringVar(&name, "name", "", "Override the entity name from the definition")

	_ = cmd.MarkFlagRequired("file")

	return cmd
}
