package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/pet-reminder/internal/config"
	"github.com/tartampluch/pet-reminder/internal/engine"
)

const listUnknown = "-"

func newListCmd(opts *options) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:       "list birthdays|events",
		Short:     "Print stored records in display order",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{config.ListKindBirthday, config.ListKindEvents},
		RunE: func(cmd *cobra.Command, args []string) error {
			clock, err := clockFlag(date)
			if err != nil {
				return err
			}
			env, err := opts.environment()
			if err != nil {
				return err
			}

			today := clock.Now()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			switch args[0] {
			case config.ListKindBirthday:
				writeBirthdays(tw, today, engine.SortBirthdays(today, engine.Valid(env.store.LoadBirthdays())))
			case config.ListKindEvents:
				writeEvents(tw, today, engine.SortEvents(today, engine.Valid(env.store.LoadEvents())))
			default:
				return errors.New(config.ErrListKind)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&date, config.FlagDate, "", config.FlagDescDate)
	return cmd
}

func writeBirthdays(w io.Writer, today time.Time, records []engine.BirthdayRecord) {
	fmt.Fprintln(w, "NAME\tDATE\tDAYS LEFT")
	for _, b := range records {
		fmt.Fprintf(w, "%s\t%04d-%02d-%02d\t%s\n", b.Name, b.Year, b.Month, b.Day, daysText(engine.DaysUntilBirthday(today, b)))
	}
}

func writeEvents(w io.Writer, today time.Time, records []engine.EventRecord) {
	fmt.Fprintln(w, "TITLE\tDATE\tTIME\tREMIND\tDAYS LEFT")
	for _, e := range records {
		fmt.Fprintf(w, "%s\t%04d-%02d-%02d\t%s\t%d\t%s\n",
			e.Title, e.Year, e.Month, e.Day, e.TimeOfDay(), e.RemindBefore, daysText(engine.DaysUntilEvent(today, e)))
	}
}

func daysText(days int, err error) string {
	if err != nil {
		return listUnknown
	}
	return fmt.Sprint(days)
}
