package config

import (
	"fmt"
	"os"
	"time"

	enterrors "github.com/systmms/entops/internal/errors"
	"github.com/systmms/entops/internal/logging"
	"gopkg.in/yaml.v3"
)

// Config holds the runtime configuration
type Config struct {
	Path       string
	Logger     *logging.Logger
	Definition *Definition
}

// Definition represents the entops.yaml structure
type Definition struct {
	Server  ServerConfig  `yaml:"server"`
	Project ProjectConfig `yaml:"project,omitempty"`
}

// ServerConfig describes how to reach the management API
type ServerConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port,omitempty"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password,omitempty"` // prefer 'entops login' over storing this
	Insecure  bool   `yaml:"insecure,omitempty"`
	CACert    string `yaml:"ca_cert,omitempty"`
	TimeoutMs int    `yaml:"timeout_ms,omitempty"`
}

// ProjectConfig holds the default project for submitted entities
type ProjectConfig struct {
	Name string `yaml:"name"`
}

// Load reads and parses the entops.yaml file
func (c *Config) Load() error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return enterrors.ConfigError{
				Field:      "path",
				Value:      c.Path,
				Message:    "configuration file not found",
				Suggestion: "Run 'entops init' to create a new configuration file",
			}
		}
		return enterrors.UserError{
			Message:    "Failed to read configuration file",
			Details:    err.Error(),
			Suggestion: "Check file permissions and path",
			Err:        err,
		}
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return enterrors.ConfigError{
			Message:    "invalid YAML syntax in configuration file",
			Suggestion: "Check for indentation errors, missing quotes, or invalid characters. Use a YAML validator",
		}
	}

	if def.Server.Host == "" {
		return enterrors.ConfigError{
			Field:      "server.host",
			Message:    "management server host is not set",
			Suggestion: "Set 'server.host' in entops.yaml to your management server address",
		}
	}
	if def.Server.Username == "" {
		return enterrors.ConfigError{
			Field:      "server.username",
			Message:    "management server username is not set",
			Suggestion: "Set 'server.username' in entops.yaml",
		}
	}

	c.Definition = &def
	return nil
}

// Server returns the loaded server configuration
func (c *Config) Server() (ServerConfig, error) {
	if c.Definition == nil {
		return ServerConfig{}, enterrors.UserError{
			Message:    "Configuration not loaded",
			Suggestion: "This is an internal error. Please report it",
		}
	}
	return c.Definition.Server, nil
}

// ProjectName returns the configured default project name, if any
func (c *Config) ProjectName() string {
	if c.Definition == nil {
		return ""
	}
	return c.Definition.Project.Name
}

// BaseURL returns the management API root for this server
func (s ServerConfig) BaseURL() string {
	port := s.Port
	if port <= 0 {
		port = 9440
	}
	return fmt.Sprintf("https://%s:%d/api/v3", s.Host, port)
}

// Timeout returns the request timeout for this server
func (s ServerConfig) Timeout() time.Duration {
	if s.TimeoutMs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.TimeoutMs) * time.Millisecond
}
