// Package daemon wires configuration, the cleanup loop, the optional cron
// cadence, and the HTTP gateway into one runnable unit.
package daemon

import (
	"context"
	"errors"
	"log/slog"

	"github.com/condortools/sweepd/internal/cleaner"
	"github.com/condortools/sweepd/internal/condor"
	"github.com/condortools/sweepd/internal/config"
	"github.com/condortools/sweepd/internal/cron"
	"github.com/condortools/sweepd/internal/gateway"
)

// Daemon owns the long-running pieces of the process.
type Daemon struct {
	cfg     *config.Config
	logger  *slog.Logger
	cleaner *cleaner.Cleaner
	gateway *gateway.Gateway // nil when disabled
	sched   *cron.Scheduler  // nil when no cron schedule configured
}

// New builds a Daemon from a validated configuration.
func New(cfg *config.Config, logger *slog.Logger) (*Daemon, error) {
	if logger == nil {
		logger = slog.Default()
	}

	runner := condor.ExecRunner{}
	prober := &condor.Prober{
		Binary: cfg.CondorQ,
		Runner: runner,
		Logger: logger.With("component", "probe"),
	}
	condorCfg := &condor.ConfigSource{
		Binary: cfg.CondorConfigVal,
		Runner: runner,
		Logger: logger.With("component", "configval"),
	}

	cl, err := cleaner.New(cleaner.Config{
		SubmitDir:    cfg.SubmitDir,
		Interval:     cfg.Interval(),
		MinRecordAge: cfg.MinRecordAge(),
		DryRun:       cfg.DryRun,
		Logger:       logger,
	}, prober, condorCfg)
	if err != nil {
		return nil, err
	}

	d := &Daemon{
		cfg:     cfg,
		logger:  logger,
		cleaner: cl,
	}

	if cfg.Gateway.Enabled {
		gw, err := gateway.New(gateway.Config{Bind: cfg.Gateway.Bind}, cl.Stats(), cfg.DryRun, logger)
		if err != nil {
			return nil, err
		}
		d.gateway = gw
	}

	if cfg.Schedule != "" {
		sched := cron.NewScheduler(logger)
		job := &cron.SweepJob{
			Pass:         func(ctx context.Context) { cl.RunPass(ctx) },
			ScheduleExpr: cfg.Schedule,
		}
		if err := sched.RegisterJob(job); err != nil {
			return nil, err
		}
		d.sched = sched
	}

	return d, nil
}

// Sweep runs a single cleanup pass immediately, without the initial sleep.
func (d *Daemon) Sweep(ctx context.Context) cleaner.PassSummary {
	return d.cleaner.RunPass(ctx)
}

// Start launches the gateway and the configured cadence (cron schedule or
// the fixed-interval loop).
func (d *Daemon) Start(ctx context.Context) error {
	if d.cfg.DryRun {
		d.logger.Info("dry run enabled: removal decisions will be logged, nothing deleted")
	}

	if d.gateway != nil {
		if err := d.gateway.Start(ctx); err != nil {
			return err
		}
	}

	if d.sched != nil {
		d.logger.Info("using cron cadence", "schedule", d.cfg.Schedule)
		return d.sched.Start()
	}
	return d.cleaner.Start(ctx)
}

// Stop shuts everything down, joining all errors.
func (d *Daemon) Stop(ctx context.Context) error {
	var errs []error

	if d.sched != nil {
		errs = append(errs, d.sched.Stop(ctx))
	} else if err := d.cleaner.Stop(ctx); err != nil && !errors.Is(err, cleaner.ErrNotStarted) {
		errs = append(errs, err)
	}

	if d.gateway != nil {
		errs = append(errs, d.gateway.Stop(ctx))
	}

	return errors.Join(errs...)
}

// Run starts the daemon and blocks until ctx is cancelled, then stops it.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()

	// The parent context is cancelled; use a fresh one for shutdown.
	return d.Stop(context.Background())
}
