package record

import (
	"fmt"
	"path/filepath"
)

// Pattern matches record files inside the submit directory.
const Pattern = "*.cluster"

// Locate globs root for record files. It scans fresh on every call:
// records appear and disappear between passes, so nothing is cached.
func Locate(root string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(root, Pattern))
	if err != nil {
		return nil, fmt.Errorf("record: scanning %s: %w", root, err)
	}
	return matches, nil
}
