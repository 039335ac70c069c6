package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/systmms/entops/internal/client"
	"github.com/systmms/entops/internal/config"
	enterrors "github.com/systmms/entops/internal/errors"
)

func NewLoginCommand(cfg *config.Config) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store the server password in the OS keyring",
		Long: `Store the management server password in the operating system keyring so
entops.yaml never needs to hold it.

The password is read interactively unless --password is given.

Examples:
  entops login
  entops login --password "$ENTOPS_PASSWORD"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Load(); err != nil {
				return err
			}
			server, err := cfg.Server()
			if err != nil {
				return err
			}

			if password == "" {
				password, err = readPassword(cmd, server)
				if err != nil {
					return err
				}
			}
			if password == "" {
				return enterrors.UserError{
					Message:    "Empty password",
					Suggestion: "Enter a non-empty password, or pass one with --password",
				}
			}

			if err := client.StorePassword(server, password); err != nil {
				return err
			}
			cfg.Logger.Info("Stored password for %s@%s in the OS keyring", server.Username, server.Host)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Password to store (prompted for when omitted)")

	return cmd
}

func readPassword(cmd *cobra.Command, server config.ServerConfig) (string, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "Password for %s@%s: ", server.Username, server.Host)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}

	// Piped input: read one line.
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimSpace(line), nil
}
