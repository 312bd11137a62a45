// Package gateway exposes the HTTP status surface of the cleanup daemon:
// health, status, and prometheus metrics endpoints.
package gateway

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/condortools/sweepd/internal/cleaner"
)

// StatsSource provides loop counters for the status endpoints.
type StatsSource interface {
	Snapshot() cleaner.StatsSnapshot
}

// Config holds gateway configuration.
type Config struct {
	Bind            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// defaults fills zero values with sensible defaults.
func (c *Config) defaults() {
	if c.Bind == "" {
		c.Bind = "127.0.0.1:9618"
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 10 * time.Second
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 30 * time.Second
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 5 * time.Second
	}
}

// Gateway is the HTTP status server. It is read-only: nothing it serves
// mutates cleaner state.
type Gateway struct {
	config    Config
	logger    *slog.Logger
	server    *http.Server
	stats     StatsSource
	dryRun    bool
	startedAt time.Time
}

// New creates a Gateway serving counters from stats.
func New(cfg Config, stats StatsSource, dryRun bool, logger *slog.Logger) (*Gateway, error) {
	if stats == nil {
		return nil, errors.New("gateway: nil StatsSource")
	}
	if logger == nil {
		logger = slog.Default()
	}
	cfg.defaults()

	return &Gateway{
		config: cfg,
		logger: logger.With("component", "gateway"),
		stats:  stats,
		dryRun: dryRun,
	}, nil
}

// Start binds the listen address and serves in a background goroutine.
func (g *Gateway) Start(ctx context.Context) error {
	g.startedAt = time.Now()

	g.server = &http.Server{
		Addr:         g.config.Bind,
		Handler:      g.buildRouter(),
		ReadTimeout:  g.config.ReadTimeout,
		WriteTimeout: g.config.WriteTimeout,
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", g.config.Bind)
	if err != nil {
		return errors.New("gateway: listen failed: " + err.Error())
	}

	go func() {
		g.logger.Info("gateway listening", "addr", g.config.Bind)
		if err := g.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			g.logger.Error("gateway serve error", "error", err)
		}
	}()

	return nil
}

// Stop shuts the server down gracefully with the configured timeout.
func (g *Gateway) Stop(ctx context.Context) error {
	if g.server == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, g.config.ShutdownTimeout)
	defer cancel()

	g.logger.Info("gateway shutting down")
	return g.server.Shutdown(shutdownCtx)
}
