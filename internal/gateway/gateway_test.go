package gateway

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/condortools/sweepd/internal/cleaner"
)

// fakeStats returns a canned snapshot.
type fakeStats struct {
	snap cleaner.StatsSnapshot
}

func (f *fakeStats) Snapshot() cleaner.StatsSnapshot { return f.snap }

func testGateway(t *testing.T, stats StatsSource, dryRun bool) *Gateway {
	t.Helper()
	g, err := New(Config{}, stats, dryRun, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g.startedAt = time.Now()
	return g
}

func TestNew_NilStats(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{}, nil, false, nil); err == nil {
		t.Fatal("expected error for nil stats")
	}
}

func TestHandleHealth_OK(t *testing.T) {
	t.Parallel()

	stats := &fakeStats{snap: cleaner.StatsSnapshot{Passes: 3}}
	g := testGateway(t, stats, false)

	rec := httptest.NewRecorder()
	g.buildRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "ok" || resp.Passes != 3 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestHandleHealth_DegradedWhenPassSkipped(t *testing.T) {
	t.Parallel()

	stats := &fakeStats{snap: cleaner.StatsSnapshot{
		Passes:   1,
		LastPass: cleaner.PassSummary{Skipped: true},
	}}
	g := testGateway(t, stats, false)

	rec := httptest.NewRecorder()
	g.buildRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestHandleStatus(t *testing.T) {
	t.Parallel()

	stats := &fakeStats{snap: cleaner.StatsSnapshot{
		Passes:  5,
		Removed: 2,
		LastPass: cleaner.PassSummary{
			Scanned: 4,
			Removed: 2,
			Live:    1,
		},
	}}
	g := testGateway(t, stats, true)

	rec := httptest.NewRecorder()
	g.buildRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp StatusResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if !resp.DryRun {
		t.Error("dry_run not reported")
	}
	if resp.Stats.Passes != 5 || resp.Stats.LastPass.Scanned != 4 {
		t.Errorf("stats = %+v", resp.Stats)
	}
}

func TestHandleMetrics(t *testing.T) {
	t.Parallel()

	g := testGateway(t, &fakeStats{}, false)

	rec := httptest.NewRecorder()
	g.buildRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "go_goroutines") {
		t.Error("metrics body missing standard collectors")
	}
}

func TestGateway_StartStop(t *testing.T) {
	t.Parallel()

	g := testGateway(t, &fakeStats{}, false)
	g.config.Bind = "127.0.0.1:0"

	if err := g.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := g.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}
}

func TestGateway_StopWithoutStart(t *testing.T) {
	t.Parallel()

	g := testGateway(t, &fakeStats{}, false)
	if err := g.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}
}
