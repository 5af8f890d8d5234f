// Package server exposes the HTTP surface: auth endpoints, health check, the
// response envelope, and the middleware chain around the router.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wihlarkop/authkit/auth"
	"github.com/wihlarkop/authkit/logger"
	"github.com/wihlarkop/authkit/server/middleware"
)

// Pinger reports backing-store reachability for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config configures the HTTP server.
type Config struct {
	Host string
	Port int
	// Name is reported by the health endpoint.
	Name string
	// Debug switches gin into debug mode; off in production.
	Debug   bool
	Logging middleware.LoggingConfig
}

// Server hosts the auth endpoints behind the middleware chain.
type Server struct {
	cfg    Config
	name   string
	auth   *auth.Service
	pinger Pinger
	log    *logger.Logger
	engine *gin.Engine
}

// Option customizes the server.
type Option func(*Server)

// WithPinger wires a store health probe into the health endpoint.
func WithPinger(p Pinger) Option {
	return func(s *Server) { s.pinger = p }
}

// New builds the server and mounts all routes.
func New(cfg Config, svc *auth.Service, log *logger.Logger, opts ...Option) *Server {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:  cfg,
		name: cfg.Name,
		auth: svc,
		log:  log.WithComponent("server"),
	}
	for _, opt := range opts {
		opt(s)
	}

	engine := gin.New()
	engine.ContextWithFallback = true

	engine.GET("/health", s.handleHealth)

	authGroup := engine.Group("/auth")
	{
		authGroup.POST("/register", s.handleRegister)
		authGroup.POST("/login", s.handleLogin)
		authGroup.POST("/refresh", s.handleRefresh)
		authGroup.GET("/me", s.handleMe)
	}

	s.engine = engine
	return s
}

// Handler returns the full handler: recovery outermost, then request id
// assignment, then request logging, then the router.
func (s *Server) Handler() http.Handler {
	return middleware.Chain(
		middleware.Recovery(s.log),
		middleware.RequestID(),
		middleware.RequestLogger(s.log, s.cfg.Logging),
	)(s.engine)
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
}

// Run serves HTTP until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server listening", map[string]interface{}{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	}
}
