// Package cleaner implements the background reconciliation loop that removes
// submission work directories and their cluster record files once the
// corresponding clusters have left the scheduler queue.
package cleaner

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// Sentinel errors for lifecycle operations.
var (
	ErrAlreadyStarted = errors.New("cleaner: already started")
	ErrNotStarted     = errors.New("cleaner: not started")
)

// SubmitDirKey is the condor configuration key naming the submit directory.
const SubmitDirKey = "CONDOR_AGENT_SUBMIT_DIR"

// QueueProber counts live jobs for a cluster. A non-nil error means the
// count is unknown and nothing may be removed.
type QueueProber interface {
	Count(ctx context.Context, clusterID, queue string) (int, error)
}

// ConfigVals looks up condor configuration values with a default
// (condor_config_val behind an interface for tests).
type ConfigVals interface {
	Get(ctx context.Context, key, def string) string
}

// Config holds cleaner configuration. All fields are set once at
// construction and read-only afterwards.
type Config struct {
	// SubmitDir is the directory scanned for record files. Empty means
	// resolve SubmitDirKey through ConfigVals at the start of each pass.
	SubmitDir string

	// Interval is the sleep between passes. The sleep comes first: the
	// initial pass runs one full interval after Start. Default 600s.
	Interval time.Duration

	// MinRecordAge is the age guard threshold. Records younger than this
	// are skipped because the scheduler may not have ingested the
	// submission yet. Default 300s.
	MinRecordAge time.Duration

	// DryRun logs removal decisions without touching the filesystem.
	DryRun bool

	Logger *slog.Logger
	Now    func() time.Time // injectable for testing
}

func (c Config) withDefaults() Config {
	if c.Interval <= 0 {
		c.Interval = 600 * time.Second
	}
	if c.MinRecordAge < 0 {
		c.MinRecordAge = 0
	} else if c.MinRecordAge == 0 {
		c.MinRecordAge = 300 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// Cleaner runs a dedicated goroutine that periodically reconciles on-disk
// submission records against the scheduler queue.
type Cleaner struct {
	cfg       Config
	logger    *slog.Logger
	prober    QueueProber
	condorCfg ConfigVals
	stats     *Stats

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a Cleaner. condorCfg may be nil when Config.SubmitDir is set
// statically; prober must not be nil.
func New(cfg Config, prober QueueProber, condorCfg ConfigVals) (*Cleaner, error) {
	if prober == nil {
		return nil, errors.New("cleaner: nil QueueProber")
	}

	cfg = cfg.withDefaults()
	return &Cleaner{
		cfg:       cfg,
		logger:    cfg.Logger.With("component", "cleaner"),
		prober:    prober,
		condorCfg: condorCfg,
		stats:     &Stats{},
	}, nil
}

// Stats exposes loop counters for the status endpoint.
func (c *Cleaner) Stats() *Stats {
	return c.stats
}

// Start launches the loop goroutine. Returns ErrAlreadyStarted if called
// twice. The loop is detached: process exit does not wait for it, but Stop
// interrupts the sleep promptly.
func (c *Cleaner) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		return ErrAlreadyStarted
	}

	ctx, c.cancel = context.WithCancel(ctx)
	c.done = make(chan struct{})
	go c.run(ctx)
	return nil
}

// Stop cancels the loop and waits for it to exit. Returns ErrNotStarted if
// the loop is not running.
func (c *Cleaner) Stop(ctx context.Context) error {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel = nil
	c.mu.Unlock()

	if cancel == nil {
		return ErrNotStarted
	}

	cancel()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is the main loop. It sleeps before every pass, including the first:
// newly started schedds need a chance to come up, and racing them could
// remove directories of jobs that are queued but not yet visible.
func (c *Cleaner) run(ctx context.Context) {
	defer close(c.done)

	c.logger.Info("local submission cleanup loop starting")

	timer := time.NewTimer(c.cfg.Interval)
	defer timer.Stop()

	for {
		c.logger.Info("sleeping", "interval", c.cfg.Interval.String())
		select {
		case <-ctx.Done():
			c.logger.Info("cleanup loop stopping")
			return
		case <-timer.C:
		}

		c.RunPass(ctx)

		if ctx.Err() != nil {
			c.logger.Info("cleanup loop stopping")
			return
		}
		timer.Reset(c.cfg.Interval)
	}
}
