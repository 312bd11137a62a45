package config

import (
	"errors"
	"fmt"
	"net"

	"github.com/robfig/cron/v3"
)

// scheduleParser accepts the standard 5-field cron syntax.
var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Validate checks the structural validity of a Config.
// It assumes defaults have already been applied by Load/Parse.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.IntervalSeconds <= 0 {
		errs = append(errs, fmt.Errorf("config: interval_seconds must be positive, got %d", cfg.IntervalSeconds))
	}
	if cfg.MinRecordAgeSeconds < 0 {
		errs = append(errs, fmt.Errorf("config: min_record_age_seconds must not be negative, got %d", cfg.MinRecordAgeSeconds))
	}

	if cfg.Schedule != "" {
		if _, err := scheduleParser.Parse(cfg.Schedule); err != nil {
			errs = append(errs, fmt.Errorf("config: invalid schedule %q: %w", cfg.Schedule, err))
		}
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("config: unknown log_level %q", cfg.LogLevel))
	}

	if cfg.Gateway.Enabled {
		if _, err := net.ResolveTCPAddr("tcp", cfg.Gateway.Bind); err != nil {
			errs = append(errs, errors.New("config: invalid gateway bind address: "+cfg.Gateway.Bind))
		}
	}

	return errors.Join(errs...)
}
