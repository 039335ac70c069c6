package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/systmms/entops/cmd/entops/commands"
	"github.com/systmms/entops/internal/config"
	"github.com/systmms/entops/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Global flags
	var (
		configFile string
		noColor    bool
		debug      bool
	)

	// Create config placeholder
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:   "entops",
		Short: "Entity Operations - Compile and submit declarative entity definitions",
		Long: `entops compiles declarative YAML entity definitions (accounts, providers,
resource types, projects, substrates) into management API payloads and
optionally submits them to the configured server.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Initialize logger with parsed flags
			logger := logging.New(debug, noColor)

			// Update config with parsed values
			cfg.Path = configFile
			cfg.Logger = logger
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "entops.yaml", "Config file path")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	// Add commands
	rootCmd.AddCommand(
		commands.NewInitCommand(cfg),
		commands.NewCompileCommand(cfg),
		commands.NewCreateCommand(cfg),
		commands.NewUpdateCommand(cfg),
		commands.NewGetCommand(cfg),
		commands.NewDescribeCommand(cfg),
		commands.NewDeleteCommand(cfg),
		commands.NewLoginCommand(cfg),
		commands.NewCompletionCommand(cfg),
	)

	return rootCmd.Execute()
}
