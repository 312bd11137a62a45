// Package config handles YAML configuration loading, environment variable
// expansion, and structural validation for sweepd.
package config

import "time"

// Defaults applied by Load when the corresponding keys are absent.
const (
	DefaultIntervalSeconds     = 600
	DefaultMinRecordAgeSeconds = 300
	DefaultCondorQ             = "condor_q"
	DefaultCondorConfigVal     = "condor_config_val"
	DefaultGatewayBind         = "127.0.0.1:9618"
)

// Config is the top-level configuration structure.
type Config struct {
	// SubmitDir is the directory scanned for *.cluster record files.
	// Empty means resolve CONDOR_AGENT_SUBMIT_DIR through condor_config_val
	// at the start of every pass.
	SubmitDir string `yaml:"submit_dir"`

	// IntervalSeconds is the sleep between cleanup passes. The sleep comes
	// first: the initial scan happens one full interval after startup.
	IntervalSeconds int `yaml:"interval_seconds"`

	// MinRecordAgeSeconds is the minimum age of a record file before it is
	// considered for removal. Records younger than this are skipped so that
	// freshly submitted clusters have time to show up in the queue.
	MinRecordAgeSeconds int `yaml:"min_record_age_seconds"`

	// DryRun logs removal decisions without touching the filesystem.
	DryRun bool `yaml:"dry_run"`

	// Schedule is an optional 5-field cron expression. When set it replaces
	// the fixed interval cadence for cleanup passes.
	Schedule string `yaml:"schedule"`

	// CondorQ is the queue-probe binary. Overridable for non-standard
	// installs and for tests.
	CondorQ string `yaml:"condor_q"`

	// CondorConfigVal is the condor configuration lookup binary.
	CondorConfigVal string `yaml:"condor_config_val"`

	// Gateway configures the optional HTTP status surface.
	Gateway GatewayConfig `yaml:"gateway"`

	// LogLevel is one of debug, info, warn, error. Default info.
	LogLevel string `yaml:"log_level"`
}

// GatewayConfig holds the HTTP status server configuration.
type GatewayConfig struct {
	Enabled bool   `yaml:"enabled"`
	Bind    string `yaml:"bind"`
}

// defaults fills zero values with sensible defaults.
func (c *Config) defaults() {
	if c.IntervalSeconds == 0 {
		c.IntervalSeconds = DefaultIntervalSeconds
	}
	if c.MinRecordAgeSeconds == 0 {
		c.MinRecordAgeSeconds = DefaultMinRecordAgeSeconds
	}
	if c.CondorQ == "" {
		c.CondorQ = DefaultCondorQ
	}
	if c.CondorConfigVal == "" {
		c.CondorConfigVal = DefaultCondorConfigVal
	}
	if c.Gateway.Bind == "" {
		c.Gateway.Bind = DefaultGatewayBind
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Interval returns the pass cadence as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// MinRecordAge returns the age guard threshold as a duration.
func (c *Config) MinRecordAge() time.Duration {
	return time.Duration(c.MinRecordAgeSeconds) * time.Second
}
