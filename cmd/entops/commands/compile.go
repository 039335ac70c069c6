package commands

import (
	"github.com/spf13/cobra"
	"github.com/systmms/entops/internal/config"
	enterrors "github.com/systmms/entops/internal/errors"
)

func NewCompileCommand(cfg *config.Config) *cobra.Command {
	var (
		file   string
		output string
	)

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile a definition file into API payloads",
		Long: `Compile a declarative entity definition into the payload the management
API would receive, without contacting any server.

Credential provider accounts compile into a bundle of three payloads
(provider, resource type, account); everything else compiles into a
single payload.

Examples:
  # Compile a project definition to JSON
  entops compile -f project.yaml

  # Compile to YAML instead
  entops compile -f account.yaml -o yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return enterrors.UserError{
					Message:    "Definition file is required",
					Suggestion: "Use --file <path> to point at a definition file",
				}
			}

			result, err := compileDefinition(file)
			if err != nil {
				return enterrors.SimplifyError(err)
			}

			if result.Bundle != nil {
				return writeOutput(cmd.OutOrStdout(), output, result.Bundle)
			}
			return writeOutput(cmd.OutOrStdout(), output, result.Payload)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Definition file to compile (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format: json or yaml")

	_ = cmd.MarkFlagRequired("file")

	return cmd
}
