package cleaner

import (
	"sync"
	"sync/atomic"
	"time"
)

// Stats tracks loop-level counters using atomic operations, plus the most
// recent pass summary for the status endpoint.
type Stats struct {
	passes  atomic.Int64
	removed atomic.Int64
	errors  atomic.Int64

	mu   sync.Mutex
	last PassSummary
}

// PassSummary describes one completed pass.
type PassSummary struct {
	Started         time.Time `json:"started"`
	DurationSeconds float64   `json:"duration_seconds"`
	Scanned         int       `json:"scanned"`
	TooYoung        int       `json:"too_young"`
	Live            int       `json:"live"`
	Unknown         int       `json:"unknown"`
	Removed         int       `json:"removed"`
	DryRun          int       `json:"dry_run"`
	Errors          int       `json:"errors"`
	Skipped         bool      `json:"skipped"` // no submit directory configured
}

// count folds one record outcome into the summary.
func (s *PassSummary) count(o Outcome) {
	s.Scanned++
	switch o {
	case OutcomeTooYoung:
		s.TooYoung++
	case OutcomeLive:
		s.Live++
	case OutcomeUnknown:
		s.Unknown++
	case OutcomeRemoved:
		s.Removed++
	case OutcomeDryRun:
		s.DryRun++
	case OutcomeParseError, OutcomeWorkDirFailed, OutcomeRecordFailed, OutcomeError:
		s.Errors++
	}
}

// RecordPass folds a completed pass into the running counters.
func (s *Stats) RecordPass(sum PassSummary) {
	s.passes.Add(1)
	s.removed.Add(int64(sum.Removed))
	s.errors.Add(int64(sum.Errors))

	s.mu.Lock()
	s.last = sum
	s.mu.Unlock()
}

// Snapshot returns a consistent point-in-time view of the counters.
func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	last := s.last
	s.mu.Unlock()

	return StatsSnapshot{
		Passes:   s.passes.Load(),
		Removed:  s.removed.Load(),
		Errors:   s.errors.Load(),
		LastPass: last,
	}
}

// StatsSnapshot is a serializable point-in-time stats view.
type StatsSnapshot struct {
	Passes   int64       `json:"passes"`
	Removed  int64       `json:"removed_total"`
	Errors   int64       `json:"errors_total"`
	LastPass PassSummary `json:"last_pass"`
}
