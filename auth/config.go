package auth

import (
	"errors"
	"time"
)

// Config configures the token codec. Values are read once at process start;
// the codec copies them at construction and never re-reads.
type Config struct {
	// Secret is the HMAC signing key. Required.
	Secret string `mapstructure:"secret"`

	// AccessTokenTTL is the lifetime of access tokens (default: 30m).
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`

	// RefreshTokenTTL is the lifetime of refresh tokens (default: 7 days).
	RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.AccessTokenTTL == 0 {
		c.AccessTokenTTL = 30 * time.Minute
	}
	if c.RefreshTokenTTL == 0 {
		c.RefreshTokenTTL = 7 * 24 * time.Hour
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return errors.New("jwt: secret is required")
	}
	return nil
}
