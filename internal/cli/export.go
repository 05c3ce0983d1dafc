package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tartampluch/pet-reminder/internal/config"
	"github.com/tartampluch/pet-reminder/internal/engine"
)

func newExportCmd(opts *options) *cobra.Command {
	var out, date string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all birthdays and events as an iCalendar file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clock, err := clockFlag(date)
			if err != nil {
				return err
			}
			env, err := opts.environment()
			if err != nil {
				return err
			}

			data, err := engine.BuildCalendar(clock.Now(),
				engine.Valid(env.store.LoadBirthdays()),
				engine.Valid(env.store.LoadEvents()))
			if err != nil {
				return err
			}

			w, err := openOutput(cmd, out)
			if err != nil {
				return err
			}
			if _, err := w.Write(data); err != nil {
				_ = w.Close()
				return fmt.Errorf("%s: %w", config.ErrExportWrite, err)
			}
			if err := w.Close(); err != nil {
				return fmt.Errorf("%s: %w", config.ErrExportWrite, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, config.FlagOut, "o", config.ExportDefaultOutput, config.FlagDescOut)
	cmd.Flags().StringVar(&date, config.FlagDate, "", config.FlagDescDate)
	return cmd
}
