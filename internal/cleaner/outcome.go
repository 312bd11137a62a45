package cleaner

// Outcome is the terminal state of one record for one pass. Every outcome
// except OutcomeRemoved leaves the record file in place so the next pass
// re-evaluates it.
type Outcome string

const (
	// OutcomeTooYoung: the record file is younger than the age guard
	// threshold and was skipped to avoid racing the scheduler.
	OutcomeTooYoung Outcome = "too_young"

	// OutcomeParseError: the record file is unreadable, malformed, or
	// missing a required field.
	OutcomeParseError Outcome = "parse_error"

	// OutcomeLive: the cluster still has jobs in the queue.
	OutcomeLive Outcome = "live"

	// OutcomeUnknown: the queue probe failed; liveness is uncertain and
	// nothing is removed.
	OutcomeUnknown Outcome = "unknown"

	// OutcomeRemoved: work directory and record file are both gone.
	OutcomeRemoved Outcome = "removed"

	// OutcomeWorkDirFailed: removing the work directory failed; the
	// record file is retained for retry.
	OutcomeWorkDirFailed Outcome = "workdir_remove_failed"

	// OutcomeRecordFailed: the work directory was removed but deleting
	// the record file failed; retried naturally next pass.
	OutcomeRecordFailed Outcome = "record_remove_failed"

	// OutcomeDryRun: removal was due but suppressed by dry-run mode.
	OutcomeDryRun Outcome = "dry_run"

	// OutcomeError: unexpected failure caught at the per-record boundary.
	OutcomeError Outcome = "error"
)
