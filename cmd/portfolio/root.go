package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/config"
)

var version = "dev"

// cli carries what every subcommand needs once the root has loaded it.
type cli struct {
	cfg    config.Config
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	app := &cli{}

	root := &cobra.Command{
		Use:     "portfolio",
		Short:   "Portfolio service: projects, blog posts and the contact form",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			app.cfg = cfg
			app.logger = newLogger(cfg)
			return nil
		},
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd(app), newMigrateCmd(app), newSeedCmd(app))
	return root
}

func newLogger(cfg config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano

	return zerolog.New(os.Stdout).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.AppName).
		Str("env", cfg.AppEnv).
		Logger()
}
