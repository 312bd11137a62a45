package condor

import (
	"context"
	"log/slog"
	"strings"
)

// ConfigSource looks up condor configuration values by shelling out to
// condor_config_val.
type ConfigSource struct {
	Binary string // defaults to "condor_config_val"
	Runner Runner
	Logger *slog.Logger
}

// Get returns the value of key, or def when the key is unset or the lookup
// fails. Values are whitespace-trimmed and double quotes are stripped:
// condor quotes path values on some platforms.
func (c *ConfigSource) Get(ctx context.Context, key, def string) string {
	binary := c.Binary
	if binary == "" {
		binary = "condor_config_val"
	}
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	res, err := c.Runner.Run(ctx, binary, key)
	if err != nil {
		logger.Error("condor_config_val failed", "key", key, "error", err)
		return def
	}
	if res.ExitCode != 0 {
		// condor_config_val exits non-zero for undefined keys.
		logger.Debug("condor_config_val: key not defined", "key", key, "exit_code", res.ExitCode)
		return def
	}

	value := strings.TrimSpace(res.Stdout)
	value = strings.ReplaceAll(value, `"`, "")
	if value == "" {
		return def
	}
	return value
}
