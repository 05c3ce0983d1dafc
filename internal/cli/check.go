package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/pet-reminder/internal/config"
	"github.com/tartampluch/pet-reminder/internal/engine"
	"github.com/tartampluch/pet-reminder/internal/locale"
	"github.com/tartampluch/pet-reminder/internal/scheduler"
)

// writerNotifier prints notifications as text blocks.
type writerNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

func (n *writerNotifier) Notify(_, title, body string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "%s\n%s\n\n", title, body)
}

// clockFlag returns a clock fixed at --date (local 00:00) or the real clock.
func clockFlag(date string) (engine.Clock, error) {
	if date == "" {
		return engine.RealClock{}, nil
	}
	t, err := time.ParseInLocation(config.DateFormatDisplay, date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrDateFlag, err)
	}
	return engine.FixedClock{Time: t}, nil
}

// newChecker wires a Checker for headless commands.
func (env *environment) newChecker(clock engine.Clock, out io.Writer) *scheduler.Checker {
	c := &scheduler.Checker{
		Store:    env.store,
		Clock:    clock,
		Texts:    locale.New(env.settings.Language),
		Notifier: &writerNotifier{w: out},
	}
	c.SetGateEvents(env.settings.GateEvents)
	return c
}

func newCheckCmd(opts *options) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the daily reminder check once and print due reminders",
		Long:  "Check evaluates birthdays and events like the desktop app does at startup. The daily marker is honoured and updated, so a second run on the same day prints no birthdays.",
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

			summary, err := env.newChecker(clock, cmd.OutOrStdout()).RunOnce(cmd.Context())
			if err != nil {
				return err
			}
			if summary.Due() == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), config.MsgNoReminders)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&date, config.FlagDate, "", config.FlagDescDate)
	return cmd
}
