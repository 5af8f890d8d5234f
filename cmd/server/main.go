// Command server runs the authentication HTTP service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wihlarkop/authkit/auth"
	"github.com/wihlarkop/authkit/config"
	"github.com/wihlarkop/authkit/logger"
	"github.com/wihlarkop/authkit/password"
	"github.com/wihlarkop/authkit/server"
	"github.com/wihlarkop/authkit/server/middleware"
	"github.com/wihlarkop/authkit/user"
	"github.com/wihlarkop/authkit/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var cfg config.Config
	if err := config.Load("server", &cfg); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	log := logger.New(&cfg.Logging, cfg.App.Name, nil)
	log.Info("Starting service", map[string]interface{}{
		"env":     cfg.App.Env,
		"version": version.Get().Version,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, pinger, err := buildStore(ctx, cfg.Database, log)
	if err != nil {
		return err
	}

	codec, err := auth.NewCodec(cfg.JWT)
	if err != nil {
		return fmt.Errorf("build token codec: %w", err)
	}

	svc := auth.NewService(store, password.NewHasher(cfg.Password), codec)

	opts := []server.Option{}
	if pinger != nil {
		opts = append(opts, server.WithPinger(pinger))
	}

	srv := server.New(server.Config{
		Host:  cfg.HTTP.Host,
		Port:  cfg.HTTP.Port,
		Name:  cfg.App.Name,
		Debug: cfg.App.Env == "local",
		Logging: middleware.LoggingConfig{
			MaxBodySize:  cfg.HTTP.MaxLogBodySize,
			ExcludePaths: cfg.HTTP.LogExcludePaths,
		},
	}, svc, log, opts...)

	return srv.Run(ctx)
}

// buildStore selects the user store: Postgres when a DSN is configured, the
// in-memory store otherwise.
func buildStore(ctx context.Context, cfg config.DatabaseConfig, log *logger.Logger) (user.Store, server.Pinger, error) {
	if cfg.DSN == "" {
		log.Info("Using in-memory user store")
		return user.NewMemoryStore(), nil, nil
	}

	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	store := user.NewPostgresStore(pool)
	if err := store.Ping(ctx); err != nil {
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Using postgres user store")
	return store, store, nil
}
