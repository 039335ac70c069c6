package client

import (
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/systmms/entops/internal/config"
	enterrors "github.com/systmms/entops/internal/errors"
)

const keyringService = "entops"

// keyringKey namespaces stored passwords per server and user.
func keyringKey(server config.ServerConfig) string {
	return fmt.Sprintf("%s@%s", server.Username, server.Host)
}

// Password resolves the server password: explicit config first, keyring second.
func Password(server config.ServerConfig) (string, error) {
	if server.Password != "" {
		return server.Password, nil
	}
	password, err := keyring.Get(keyringService, keyringKey(server))
	if err != nil {
		return "", enterrors.UserError{
			Message:    fmt.Sprintf("No password configured for %s@%s", server.Username, server.Host),
			Suggestion: "Run 'entops login' to store one, or set server.password in entops.yaml",
			Err:        err,
		}
	}
	return password, nil
}

// StorePassword saves the password in the OS keyring.
func StorePassword(server config.ServerConfig, password string) error {
	if err := keyring.Set(keyringService, keyringKey(server), password); err != nil {
		return fmt.Errorf("storing password in keyring: %w", err)
	}
	return nil
}
