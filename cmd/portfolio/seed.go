package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/service"
)

func newSeedCmd(app *cli) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample projects and posts",
		Long: "Insert the sample projects and posts on first launch. With NATS configured, a running\n" +
			"server picks the new rows up without a restart.",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd.Context(), app.cfg, app.logger, app.cfg.AppName+"-seed")
			if err != nil {
				return err
			}
			defer rt.Close(app.logger)

			result, err := service.NewSeedService(rt.projects, rt.posts, rt.prefs, app.logger).Seed(cmd.Context(), force)
			if err != nil {
				return err
			}
			if result.Skipped {
				fmt.Fprintln(cmd.OutOrStdout(), "Sample data already present; use --force to insert it again")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Inserted %d projects and %d posts\n", result.Projects, result.Posts)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "seed even when sample data was already inserted")
	return cmd
}
