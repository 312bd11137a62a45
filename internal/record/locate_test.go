package record

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("clusterid: 1\ntmpdir: /tmp/x\n"), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLocate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, filepath.Join(dir, "A.cluster"))
	touch(t, filepath.Join(dir, "B.cluster"))
	touch(t, filepath.Join(dir, "notes.txt"))

	matches, err := Locate(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("matches = %v, want 2 entries", matches)
	}
	for _, m := range matches {
		if filepath.Ext(m) != ".cluster" {
			t.Errorf("unexpected match %q", m)
		}
	}
}

func TestLocate_EmptyDir(t *testing.T) {
	t.Parallel()

	matches, err := Locate(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("matches = %v, want none", matches)
	}
}

func TestLocate_FreshScan(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, filepath.Join(dir, "A.cluster"))

	first, err := Locate(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 1 {
		t.Fatalf("first scan = %v", first)
	}

	// Files appearing between passes must show up on the next scan.
	touch(t, filepath.Join(dir, "B.cluster"))
	second, err := Locate(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(second) != 2 {
		t.Fatalf("second scan = %v, want 2 entries", second)
	}
}
