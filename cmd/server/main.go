package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/doodle-lobby/internal/app"
	"github.com/vovakirdan/doodle-lobby/internal/config"
	applog "github.com/vovakirdan/doodle-lobby/internal/log"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		overrides  config.Config
	)

	cmd := &cobra.Command{
		Use:           "doodle-lobby",
		Short:         "Multiplayer drawing game lobby server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), configPath, overrides)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "path to config file")
	flags.StringVar(&overrides.Addr, "addr", "", "HTTP listen address")
	flags.StringVar(&overrides.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&overrides.LogFormat, "log-format", "", "log format (console, json)")
	flags.StringVar(&overrides.StaticDir, "static-dir", "", "directory served as static assets")
	flags.DurationVar(&overrides.ShutdownTimeout, "shutdown-timeout", 0, "graceful shutdown timeout")

	return cmd
}

func run(parent context.Context, configPath string, overrides config.Config) error {
	bootLogger := applog.New("info")

	cfg, resolved, err := config.Load(bootLogger, configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.UpdateFrom(overrides)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", resolved, err)
	}

	logger := applog.NewWithWriter(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	logger.Info().Str("config", resolved).Str("addr", cfg.Addr).Msg("starting doodle lobby server")

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.New(&cfg, logger).Run(ctx); err != nil {
		logger.Error().Err(err).Msg("server exited with error")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
