package condor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// Sentinel errors for queue probes. Any error from Prober.Count means the
// live-job count is unknown; callers must never treat unknown as zero.
var (
	ErrProbeStderr   = errors.New("condor: condor_q wrote to stderr")
	ErrProbeExitCode = errors.New("condor: condor_q exited non-zero")
	ErrNoClusterID   = errors.New("condor: empty cluster id")
)

// jobStatusConstraint filters out jobs in the Removed (3) and Completed (4)
// states so only operationally live jobs are counted.
const jobStatusConstraint = "JobStatus != 3 && JobStatus != 4"

// Prober counts live jobs for a cluster by invoking condor_q.
type Prober struct {
	Binary string // defaults to "condor_q"
	Runner Runner
	Logger *slog.Logger
}

// Command returns the argv that Count will execute for the given cluster.
// When queue is non-empty the named schedd is targeted, otherwise the
// default local schedd answers.
func (p *Prober) Command(clusterID, queue string) []string {
	binary := p.Binary
	if binary == "" {
		binary = "condor_q"
	}

	args := []string{binary}
	if queue != "" {
		args = append(args, "-name", queue)
	}
	args = append(args, "-f", "%d\n", "ClusterID", "-c", jobStatusConstraint, clusterID)
	return args
}

// Count returns the number of live jobs for clusterID. A non-nil error means
// the count is unknown: the probe could not run, wrote to stderr, exited
// non-zero, or its output was ambiguous.
//
// Any output on stderr is treated as failure regardless of exit code:
// condor_q versions before 7.2.2 exit zero while reporting errors on stderr.
func (p *Prober) Count(ctx context.Context, clusterID, queue string) (int, error) {
	if strings.TrimSpace(clusterID) == "" {
		return 0, ErrNoClusterID
	}
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	argv := p.Command(clusterID, queue)
	logger.Info("probing queue", "command", strings.Join(argv, " "))

	res, err := p.Runner.Run(ctx, argv[0], argv[1:]...)
	if err != nil {
		return 0, err
	}

	if res.Stderr != "" {
		return 0, fmt.Errorf("%w: %s", ErrProbeStderr, strings.TrimSpace(res.Stderr))
	}
	if res.ExitCode != 0 {
		return 0, fmt.Errorf("%w: exit code %d", ErrProbeExitCode, res.ExitCode)
	}

	return countClusterLines(res.Stdout, clusterID), nil
}

// countClusterLines counts output lines that begin with clusterID, allowing
// leading whitespace. Matching is line-anchored with a trailing boundary so
// cluster 42 does not count lines for cluster 425.
func countClusterLines(stdout, clusterID string) int {
	pattern := regexp.MustCompile(`(?m)^[ \t]*` + regexp.QuoteMeta(clusterID) + `(?:[ \t]|$)`)
	return len(pattern.FindAllString(stdout, -1))
}
