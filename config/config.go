// Package config loads service configuration from a YAML file, a .env file,
// and environment variables, in that order of precedence (later wins).
package config

import (
	"fmt"

	"github.com/wihlarkop/authkit/auth"
	"github.com/wihlarkop/authkit/logger"
	"github.com/wihlarkop/authkit/password"
)

// Config is the root configuration for the service. All values are read once
// at process start and treated as immutable afterwards.
type Config struct {
	App      AppConfig       `mapstructure:"app"`
	HTTP     HTTPConfig      `mapstructure:"http"`
	Logging  logger.Config   `mapstructure:"logging"`
	JWT      auth.Config     `mapstructure:"jwt"`
	Password password.Config `mapstructure:"password"`
	Database DatabaseConfig  `mapstructure:"database"`
}

// AppConfig identifies the service.
type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

// HTTPConfig configures the HTTP listener and the request logging boundary.
type HTTPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// MaxLogBodySize is the byte ceiling for request/response body capture
	// in the logging middleware.
	MaxLogBodySize int64 `mapstructure:"max_log_body_size"`
	// LogExcludePaths are path prefixes skipped by the request logger.
	LogExcludePaths []string `mapstructure:"log_exclude_paths"`
}

// DatabaseConfig configures the optional Postgres user store. An empty DSN
// selects the in-memory store.
type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

// ApplyDefaults fills in zero-valued fields across all sections.
func (c *Config) ApplyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "authkit"
	}
	if c.App.Env == "" {
		c.App.Env = "local"
	}
	if c.HTTP.Host == "" {
		c.HTTP.Host = "0.0.0.0"
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8000
	}
	if c.HTTP.MaxLogBodySize == 0 {
		c.HTTP.MaxLogBodySize = 100 * 1024
	}
	if c.HTTP.LogExcludePaths == nil {
		c.HTTP.LogExcludePaths = []string{"/health", "/metrics"}
	}
	c.Logging.ApplyDefaults()
	c.JWT.ApplyDefaults()
	c.Password.ApplyDefaults()
}

// Validate checks the configuration after defaults were applied.
func (c *Config) Validate() error {
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535 (got: %d)", c.HTTP.Port)
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := c.JWT.Validate(); err != nil {
		return err
	}
	return c.Password.Validate()
}
