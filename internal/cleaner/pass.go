package cleaner

import (
	"context"
	"os"

	"github.com/condortools/sweepd/internal/record"
)

// RunPass performs one reconciliation pass over the submit directory and
// returns its summary. Errors never escape: a bad record is logged and
// skipped, a missing submit directory skips the whole pass, and the process
// lives on regardless.
func (c *Cleaner) RunPass(ctx context.Context) (sum PassSummary) {
	passesTotal.Inc()
	start := c.cfg.Now()
	sum.Started = start

	defer func() {
		sum.DurationSeconds = c.cfg.Now().Sub(start).Seconds()
		passDuration.Observe(sum.DurationSeconds)
		c.stats.RecordPass(sum)
	}()

	submitDir := c.resolveSubmitDir(ctx)
	if submitDir == "" {
		c.logger.Error("no submit directory configured for this host, skipping pass",
			"key", SubmitDirKey)
		passesSkipped.Inc()
		sum.Skipped = true
		return sum
	}

	files, err := record.Locate(submitDir)
	if err != nil {
		c.logger.Error("scanning submit directory failed", "dir", submitDir, "error", err)
		sum.Skipped = true
		return sum
	}

	c.logger.Info("scanning submit directory for cluster records",
		"dir", submitDir, "records", len(files))

	for _, path := range files {
		if ctx.Err() != nil {
			return sum
		}
		outcome := c.processRecord(ctx, path)
		recordsByOutcome.WithLabelValues(string(outcome)).Inc()
		sum.count(outcome)
	}

	return sum
}

// resolveSubmitDir returns the configured submit directory, falling back to
// a condor_config_val lookup when no static directory is set.
func (c *Cleaner) resolveSubmitDir(ctx context.Context) string {
	if c.cfg.SubmitDir != "" {
		return c.cfg.SubmitDir
	}
	if c.condorCfg == nil {
		return ""
	}
	return c.condorCfg.Get(ctx, SubmitDirKey, "")
}

// processRecord runs one record through the staleness and liveness gate and
// returns its terminal outcome for this pass. It is the outermost per-record
// boundary: panics are recovered here so one malformed record cannot halt
// reconciliation of the rest.
func (c *Cleaner) processRecord(ctx context.Context, path string) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("caught unhandled panic processing record",
				"record", path, "panic", r)
			outcome = OutcomeError
		}
	}()

	// Age guard. A record can hit the disk before the schedd has processed
	// the submission; until then the cluster looks queue-absent. Skip
	// anything younger than the threshold.
	fi, err := os.Stat(path)
	if err != nil {
		// Likely removed between scan and processing.
		c.logger.Info("record disappeared before processing", "record", path, "error", err)
		return OutcomeParseError
	}
	age := c.cfg.Now().Sub(fi.ModTime())
	if age < c.cfg.MinRecordAge {
		c.logger.Info("record not old enough to be considered",
			"record", path, "age", age.String(), "min_age", c.cfg.MinRecordAge.String())
		return OutcomeTooYoung
	}

	cl, err := record.Load(path)
	if err != nil {
		c.logger.Error("unreadable cluster record", "record", path, "error", err)
		return OutcomeParseError
	}

	queue := cl.Queue
	if queue == "" {
		queue = "localhost"
	}
	c.logger.Info("checking cluster for jobs in queue",
		"cluster", cl.ClusterID, "queue", queue)

	jobs, err := c.prober.Count(ctx, cl.ClusterID, cl.Queue)
	if err != nil {
		c.logger.Error("unable to count jobs in queue, no cleanup done",
			"cluster", cl.ClusterID, "error", err)
		return OutcomeUnknown
	}
	if jobs > 0 {
		c.logger.Info("jobs still in the queue, no cleanup done",
			"cluster", cl.ClusterID, "jobs", jobs)
		return OutcomeLive
	}

	return c.remove(cl, path)
}

// remove deletes the work directory and, only if that succeeds, the record
// file. The ordering is the sole consistency mechanism: a crash between the
// two removals leaves an orphaned record pointing at a missing directory,
// which a later pass re-evaluates and removes (RemoveAll of a missing path
// succeeds).
func (c *Cleaner) remove(cl *record.Cluster, recordPath string) Outcome {
	if c.cfg.DryRun {
		c.logger.Debug("dry run: would have removed path", "path", cl.WorkDir)
		c.logger.Debug("dry run: would have removed file", "file", recordPath)
		return OutcomeDryRun
	}

	c.logger.Info("no jobs in the queue, performing cleanup",
		"cluster", cl.ClusterID, "path", cl.WorkDir)

	if err := os.RemoveAll(cl.WorkDir); err != nil {
		c.logger.Error("unable to remove path", "path", cl.WorkDir, "error", err)
		return OutcomeWorkDirFailed
	}
	c.logger.Info("removed path", "path", cl.WorkDir)

	if err := os.Remove(recordPath); err != nil {
		c.logger.Error("unable to remove file", "file", recordPath, "error", err)
		return OutcomeRecordFailed
	}
	c.logger.Info("removed file", "file", recordPath)

	return OutcomeRemoved
}
