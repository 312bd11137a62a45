package daemon

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/condortools/sweepd/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// scriptedCondorQ writes a shell script standing in for condor_q.
func scriptedCondorQ(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "condor_q")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeRecord(t *testing.T, path, body string, age time.Duration) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	mt := time.Now().Add(-age)
	if err := os.Chtimes(path, mt, mt); err != nil {
		t.Fatal(err)
	}
}

func TestDaemon_SweepEndToEnd(t *testing.T) {
	t.Parallel()

	submitDir := t.TempDir()
	workDir := filepath.Join(t.TempDir(), "work42")
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		t.Fatal(err)
	}
	recPath := filepath.Join(submitDir, "A.cluster")
	writeRecord(t, recPath, "clusterid: 42\ntmpdir: "+workDir+"\n", 10*time.Minute)

	cfg, err := config.Parse([]byte("submit_dir: " + submitDir + "\n"))
	if err != nil {
		t.Fatal(err)
	}
	// condor_q reporting an empty queue for every cluster.
	cfg.CondorQ = scriptedCondorQ(t, "exit 0")

	d, err := New(cfg, testLogger())
	if err != nil {
		t.Fatal(err)
	}

	sum := d.Sweep(context.Background())
	if sum.Removed != 1 {
		t.Fatalf("summary = %+v, want 1 removed", sum)
	}
	if _, err := os.Stat(workDir); !os.IsNotExist(err) {
		t.Errorf("work dir still present: %v", err)
	}
	if _, err := os.Stat(recPath); !os.IsNotExist(err) {
		t.Errorf("record still present: %v", err)
	}
}

func TestDaemon_SweepLiveCluster(t *testing.T) {
	t.Parallel()

	submitDir := t.TempDir()
	workDir := filepath.Join(t.TempDir(), "work42")
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeRecord(t, filepath.Join(submitDir, "A.cluster"),
		"clusterid: 42\ntmpdir: "+workDir+"\n", 10*time.Minute)

	cfg, err := config.Parse([]byte("submit_dir: " + submitDir + "\n"))
	if err != nil {
		t.Fatal(err)
	}
	cfg.CondorQ = scriptedCondorQ(t, `echo "   42"`)

	d, err := New(cfg, testLogger())
	if err != nil {
		t.Fatal(err)
	}

	sum := d.Sweep(context.Background())
	if sum.Live != 1 || sum.Removed != 0 {
		t.Fatalf("summary = %+v, want 1 live", sum)
	}
	if _, err := os.Stat(workDir); err != nil {
		t.Errorf("work dir removed for live cluster: %v", err)
	}
}

func TestDaemon_StartStop(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte("submit_dir: " + t.TempDir() + "\ninterval_seconds: 3600\n"))
	if err != nil {
		t.Fatal(err)
	}

	d, err := New(cfg, testLogger())
	if err != nil {
		t.Fatal(err)
	}

	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := d.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}
}

func TestDaemon_GatewayServesStatus(t *testing.T) {
	t.Parallel()

	// Grab a free port, release it, and hand it to the gateway.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	bind := ln.Addr().String()
	ln.Close()

	raw := "submit_dir: " + t.TempDir() + "\ninterval_seconds: 3600\ngateway:\n  enabled: true\n  bind: " + bind + "\n"
	cfg, err := config.Parse([]byte(raw))
	if err != nil {
		t.Fatal(err)
	}

	d, err := New(cfg, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer d.Stop(context.Background())

	var resp *http.Response
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		resp, err = http.Get("http://" + bind + "/status")
		if err == nil {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("status endpoint unreachable: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status code = %d", resp.StatusCode)
	}
}

func TestDaemon_CronCadence(t *testing.T) {
	t.Parallel()

	raw := "submit_dir: " + t.TempDir() + "\nschedule: \"* * * * *\"\n"
	cfg, err := config.Parse([]byte(raw))
	if err != nil {
		t.Fatal(err)
	}

	d, err := New(cfg, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	if d.sched == nil {
		t.Fatal("scheduler not built for cron cadence")
	}

	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := d.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}
}
