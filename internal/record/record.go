// Package record defines the on-disk cluster record written by the
// submission component at submit time, and the locator that discovers
// record files inside the submit directory. Records are read-only here;
// the cleaner deletes a record file only after its work directory is gone.
package record

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Sentinel errors for malformed records.
var (
	ErrMissingClusterID = errors.New("record: missing required field clusterid")
	ErrMissingWorkDir   = errors.New("record: missing required field tmpdir")
)

// Cluster is one deserialized submission record.
type Cluster struct {
	// ClusterID identifies the job cluster in the scheduler queue.
	ClusterID string

	// Queue names the schedd the cluster was submitted to. Empty means
	// the default local schedd.
	Queue string

	// WorkDir is the temporary submission directory whose subtree is the
	// removal target once the cluster has left the queue.
	WorkDir string
}

// rawCluster mirrors the serialized layout. clusterid is historically
// written either as a string or as a bare number, so it decodes loosely
// and is normalized afterwards.
type rawCluster struct {
	ClusterID any    `yaml:"clusterid"`
	Queue     string `yaml:"queue"`
	WorkDir   string `yaml:"tmpdir"`
}

// Load reads and parses the record file at path. It returns an explicit
// error for unreadable files, malformed serialization, or missing required
// fields (clusterid, tmpdir). The queue field is optional.
func Load(path string) (*Cluster, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("record: reading %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes raw record bytes into a Cluster.
func Parse(raw []byte) (*Cluster, error) {
	var rc rawCluster
	if err := yaml.Unmarshal(raw, &rc); err != nil {
		return nil, fmt.Errorf("record: parsing: %w", err)
	}

	c := &Cluster{
		ClusterID: normalizeID(rc.ClusterID),
		Queue:     rc.Queue,
		WorkDir:   rc.WorkDir,
	}

	if c.ClusterID == "" {
		return nil, ErrMissingClusterID
	}
	if c.WorkDir == "" {
		return nil, ErrMissingWorkDir
	}
	return c, nil
}

// normalizeID renders the loosely-typed clusterid field as a string.
func normalizeID(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
