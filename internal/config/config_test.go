package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/systmms/entops/internal/config"
	enterrors "github.com/systmms/entops/internal/errors"
	"github.com/systmms/entops/internal/logging"
)

func writeConfig(t *testing.T, content string) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "entops.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return &config.Config{Path: path, Logger: logging.New(false, true)}
}

func TestLoadValidConfig(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, `
server:
  host: mgmt.example.com
  port: 9440
  username: admin
project:
  name: default
`)

	require.NoError(t, cfg.Load())

	server, err := cfg.Server()
	require.NoError(t, err)
	assert.Equal(t, "mgmt.example.com", server.Host)
	assert.Equal(t, "admin", server.Username)
	assert.Equal(t, "default", cfg.ProjectName())
	assert.Equal(t, "https://mgmt.example.com:9440/api/v3", server.BaseURL())
	assert.Equal(t, 30*time.Second, server.Timeout())
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Path:   filepath.Join(t.TempDir(), "missing.yaml"),
		Logger: logging.New(false, true),
	}

	err := cfg.Load()
	require.Error(t, err)

	var cfgErr enterrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Suggestion, "entops init")
}

func TestLoadInvalidYAML(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "server:\n  host: [unclosed")

	err := cfg.Load()
	require.Error(t, err)

	var cfgErr enterrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Message, "YAML")
}

func TestLoadMissingHost(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "server:\n  username: admin\n")

	err := cfg.Load()
	require.Error(t, err)

	var cfgErr enterrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "server.host", cfgErr.Field)
}

func TestLoadMissingUsername(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, "server:\n  host: mgmt.example.com\n")

	err := cfg.Load()
	require.Error(t, err)

	var cfgErr enterrors.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "server.username", cfgErr.Field)
}

func TestServerDefaults(t *testing.T) {
	t.Parallel()

	server := config.ServerConfig{Host: "mgmt.example.com", Username: "admin"}
	assert.Equal(t, "https://mgmt.example.com:9440/api/v3", server.BaseURL())
	assert.Equal(t, 30*time.Second, server.Timeout())

	server.TimeoutMs = 5000
	assert.Equal(t, 5*time.Second, server.Timeout())
}

func TestServerNotLoaded(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Logger: logging.New(false, true)}
	_, err := cfg.Server()
	require.Error(t, err)
	assert.Empty(t, cfg.ProjectName())
}
