package cron

import (
	"context"
	"fmt"
)

// PassFunc runs one cleanup pass. Declared as a function type to avoid a
// dependency on the cleaner package.
type PassFunc func(ctx context.Context)

// SweepJob runs one cleanup pass per tick. Used when the operator
// configures a cron expression instead of the fixed sleep interval.
type SweepJob struct {
	Pass         PassFunc
	ScheduleExpr string // empty = default "*/10 * * * *"
}

// Compile-time interface check.
var _ Job = (*SweepJob)(nil)

// Name implements Job.
func (j *SweepJob) Name() string { return "submit_cleanup" }

// Schedule implements Job.
func (j *SweepJob) Schedule() string {
	if j.ScheduleExpr != "" {
		return j.ScheduleExpr
	}
	return "*/10 * * * *"
}

// Run performs one cleanup pass. The pass never returns an error: record
// failures are logged and retried on a later tick.
func (j *SweepJob) Run(ctx context.Context) error {
	if ctx.Err() != nil {
		return fmt.Errorf("cron: sweep cancelled: %w", ctx.Err())
	}
	j.Pass(ctx)
	return nil
}
