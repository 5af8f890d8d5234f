package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoaderOption customizes Load.
type LoaderOption func(*loaderOptions)

type loaderOptions struct {
	configFile string
	envFile    string
}

// WithConfigFile sets an explicit config file path instead of searching.
func WithConfigFile(path string) LoaderOption {
	return func(o *loaderOptions) { o.configFile = path }
}

// WithEnvFile sets an explicit .env file path instead of searching.
func WithEnvFile(path string) LoaderOption {
	return func(o *loaderOptions) { o.envFile = path }
}

// Load populates cfg for a service: YAML config file first, then a .env file,
// then process environment variables. Missing files are not an error;
// environment-only configuration is the common deployment mode.
func Load(serviceName string, cfg any, opts ...LoaderOption) error {
	var o loaderOptions
	for _, opt := range opts {
		opt(&o)
	}

	if o.envFile == "" {
		o.envFile = findFirst(".env."+serviceName, ".env")
	}
	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil {
			fmt.Fprintf(os.Stderr, "[config] warning: failed to load %s: %v\n", o.envFile, err)
		}
	}

	v := viper.New()

	if o.configFile == "" {
		o.configFile = findFirst(
			"./config.yml",
			"./config/config.yml",
			fmt.Sprintf("./cmd/%s/config.yml", serviceName),
		)
	}
	if o.configFile != "" {
		v.SetConfigFile(o.configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file %s: %w", o.configFile, err)
		}
	}

	// Bind environment variables: HTTP_PORT overrides http.port, etc.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unmarshal config for %s: %w", serviceName, err)
	}
	return nil
}

// bindEnvKeys registers every environment variable under its possible dotted
// forms so Unmarshal sees keys that never appeared in the YAML file.
// JWT_ACCESS_TOKEN_TTL maps to jwt.access_token_ttl (and the other splits),
// since the env name alone cannot tell nesting from multi-word keys.
func bindEnvKeys(v *viper.Viper) {
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 {
			continue
		}
		parts := strings.Split(strings.ToLower(pair[0]), "_")
		for i := 1; i < len(parts); i++ {
			key := strings.Join(parts[:i], ".") + "." + strings.Join(parts[i:], "_")
			v.Set(key, pair[1])
		}
	}
}

func findFirst(paths ...string) string {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
