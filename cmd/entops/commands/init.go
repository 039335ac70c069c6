package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/systmms/entops/internal/config"
)

const exampleConfig = `# Management server connection
server:
  host: pc.example.com
  # port: 9440          # optional, defaults to 9440
  username: admin
  # Prefer 'entops login' over storing a password here:
  # password: changeme
  # insecure: true      # skip TLS verification (lab setups only)
  # ca_cert: /path/to/ca.pem

# Default project for submitted entities (optional)
project:
  name: default
`

func NewInitCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new entops configuration",
		Long:  "Create an entops.yaml file with example configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Check if entops.yaml already exists
			if _, err := os.Stat(cfg.Path); err == nil {
				return fmt.Errorf("entops.yaml already exists. Remove it first if you want to reinitialize")
			}

			// Write the file
			if err := os.WriteFile(cfg.Path, []byte(exampleConfig), 0644); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			cfg.Logger.Info("Created entops.yaml with an example server configuration")
			cfg.Logger.Info("Next steps:")
			cfg.Logger.Info("  1. Edit entops.yaml with your management server address and username")
			cfg.Logger.Info("  2. Run 'entops login' to store your password in the OS keyring")
			cfg.Logger.Info("  3. Run 'entops compile -f <definition>.yaml' to preview a payload")
			cfg.Logger.Info("  4. Run 'entops create -f <definition>.yaml' to submit it")

			return nil
		},
	}

	return cmd
}
