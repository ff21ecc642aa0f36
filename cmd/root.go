package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/folio/internal/config"
	"github.com/okian/folio/pkg/logger"
)

// cliState carries what the persistent pre-run resolved to the subcommands.
type cliState struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log logger.Logger
}

func newRootCommand() *cobra.Command {
	state := &cliState{}

	root := &cobra.Command{
		Use:   "folio",
		Short: "Portfolio content aggregation service",
		Long: `folio aggregates pinned GitHub repositories and content-store records
into a single page view model, classifies skills into display categories and
serves the result over a JSON API.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return state.init(cmd.Context())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if err := logger.Sync(); err != nil {
				fmt.Fprintln(os.Stderr, "failed to sync logger:", err)
			}
		},
	}
	root.PersistentFlags().StringVar(&state.configPath, "config", "", "YAML config file (overrides FOLIO_CONFIG)")
	root.PersistentFlags().StringVar(&state.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")

	root.AddCommand(
		newServeCommand(state),
		newSnapshotCommand(state),
		newManifestCommand(state),
	)
	return root
}

// init loads configuration (defaults -> optional file -> env) and the global logger.
func (s *cliState) init(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := logger.Init(); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	s.log = logger.Get()

	cfg, err := config.Load(ctx, s.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	s.cfg = cfg

	level := cfg.LogLevel
	if s.logLevel != "" {
		level = s.logLevel
	}
	if err := logger.SetLevelString(level); err != nil {
		s.log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", level), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return nil
}
