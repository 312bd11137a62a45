// Package main is the entry point for the sweepd CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/condortools/sweepd/internal/config"
	"github.com/condortools/sweepd/internal/daemon"
	"github.com/kardianos/service"
	"github.com/spf13/cobra"
)

// Set by goreleaser ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sweepd",
		Short:         "Garbage-collects condor local-submission directories",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("config", "c", "", "Path to configuration file")
	root.AddCommand(versionCmd(), runCmd(), sweepCmd(), configCmd(), serviceCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("sweepd %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the cleanup daemon in the foreground",
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := buildDaemon(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return d.Run(ctx)
		},
	}
}

func sweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run a single cleanup pass immediately and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
				cfg.DryRun = true
			}

			d, err := daemon.New(cfg, logger)
			if err != nil {
				return err
			}

			sum := d.Sweep(cmd.Context())
			if sum.Skipped {
				return fmt.Errorf("pass skipped: no submit directory configured")
			}
			fmt.Printf("scanned %d records: %d removed, %d live, %d too young, %d unknown, %d errors\n",
				sum.Scanned, sum.Removed, sum.Live, sum.TooYoung, sum.Unknown, sum.Errors)
			return nil
		},
	}
	cmd.Flags().Bool("dry-run", false, "Log removal decisions without deleting anything")
	return cmd
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check <path>",
		Short: "Validate a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return err
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}
			fmt.Println("Configuration OK")
			return nil
		},
	})
	return cmd
}

func serviceCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "service <install|uninstall|start|stop|run>",
		Short:     "Manage sweepd as a system service",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"install", "uninstall", "start", "stop", "run"},
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDaemon(cmd)
			if err != nil {
				return err
			}
			svc, err := daemon.NewService(d)
			if err != nil {
				return err
			}

			if args[0] == "run" {
				return svc.Run()
			}
			return service.Control(svc, args[0])
		},
	}
}

// buildDaemon loads the configuration and constructs the daemon.
func buildDaemon(cmd *cobra.Command) (*daemon.Daemon, error) {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return daemon.New(cfg, logger)
}

// loadConfig resolves, loads, and validates the configuration, and builds
// the root logger from its log level.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		resolved, err := resolveConfigPath()
		if err != nil {
			return nil, nil, err
		}
		cfgPath = resolved
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, nil, err
	}

	return cfg, buildLogger(cfg.LogLevel), nil
}

// resolveConfigPath searches for a config file in standard locations.
// Search order: $XDG_CONFIG_HOME/sweepd/sweepd.yaml → /etc/sweepd/sweepd.yaml → ./sweepd.yaml
func resolveConfigPath() (string, error) {
	var candidates []string

	if xdg, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok {
		candidates = append(candidates, filepath.Join(xdg, "sweepd", "sweepd.yaml"))
	} else if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "sweepd", "sweepd.yaml"))
	}

	candidates = append(candidates, "/etc/sweepd/sweepd.yaml", "sweepd.yaml")

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("no configuration file found (searched: %v)", candidates)
}

func buildLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
