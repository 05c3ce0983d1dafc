package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/tartampluch/pet-reminder/internal/config"
	"github.com/tartampluch/pet-reminder/internal/engine"
	"github.com/tartampluch/pet-reminder/internal/scheduler"
	"github.com/tartampluch/pet-reminder/internal/server"
)

func newServeCmd(opts *options) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the iCalendar feed on localhost without the desktop window",
		Long:  "Serve publishes the feed, prints due reminders from the daily check and republishes after every check until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := opts.environment()
			if err != nil {
				return err
			}
			if port == "" {
				port = env.settings.Feed.Port
			}

			srv := server.NewCalendarServer(port)
			checker := env.newChecker(engine.RealClock{}, cmd.OutOrStdout())
			checker.Publisher = srv
			checker.Publish()

			runner := scheduler.NewRunner(checker)
			runner.StartupDelay = env.settings.StartupDelay
			go runner.Run(cmd.Context())

			slog.Info(config.MsgServerListen,
				config.LogKeyComponent, config.CompCLI,
				config.LogKeyPort, port,
				config.LogKeyVersion, VersionString())
			return srv.Start(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&port, config.FlagPort, "", config.FlagDescPort)
	return cmd
}
