package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/database"
)

func newMigrateCmd(app *cli) *cobra.Command {
	var rollback bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply (or roll back the last) schema migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.Connect(app.cfg.DatabaseDriver, app.cfg.DatabasePath, app.cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("connecting database: %w", err)
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			if rollback {
				if err := database.RollbackLast(db); err != nil {
					return fmt.Errorf("rolling back: %w", err)
				}
				app.logger.Info().Msg("last migration rolled back")
				return nil
			}

			if err := database.Migrate(db); err != nil {
				return fmt.Errorf("migrating: %w", err)
			}
			app.logger.Info().Str("driver", app.cfg.DatabaseDriver).Msg("schema up to date")
			return nil
		},
	}
	cmd.Flags().BoolVar(&rollback, "rollback", false, "roll back the most recent migration")
	return cmd
}
