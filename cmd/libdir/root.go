// ABOUTME: Root command wiring configuration, logging and the backend.
// ABOUTME: Every subcommand shares the adapter built here.

package main

import (
	"fmt"

	"github.com/harper/libdir/internal/config"
	"github.com/harper/libdir/internal/db"
	"github.com/harper/libdir/internal/directory"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg     config.Config
	logger  = zap.NewNop()
	backend *db.Backend
	adapter *directory.Adapter
)

var rootCmd = &cobra.Command{
	Use:           "libdir",
	Short:         "Browse and curate a directory of UI libraries",
	Long:          `libdir serves a filterable, paginated directory of libraries and accepts new submissions.`,
	Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded

		if cmd.Flags().Changed("db") {
			cfg.DatabaseURL, _ = cmd.Flags().GetString("db")
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
		}

		if logger, err = newLogger(cfg); err != nil {
			return err
		}

		if backend, err = db.OpenBackend(cfg); err != nil {
			return fmt.Errorf("open backend: %w", err)
		}
		adapter = directory.NewAdapter(backend, nil, logger)

		logger.Debug("configured",
			zap.Bool("read_enabled", cfg.ReadEnabled()),
			zap.Bool("write_enabled", cfg.WriteEnabled()),
		)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = backend.Close()
		_ = logger.Sync()
	},
}

func newLogger(c config.Config) (*zap.Logger, error) {
	level, err := c.Level()
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "database URL or SQLite path (overrides LIBDIR_DATABASE_URL)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (overrides LIBDIR_LOG_LEVEL)")
}
