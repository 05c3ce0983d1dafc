package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/tartampluch/pet-reminder/internal/config"
)

// Runner drives a Checker: once after StartupDelay, then at every local midnight.
// Create it with NewRunner.
type Runner struct {
	Checker      *Checker
	StartupDelay time.Duration

	// OnCheck, when set, receives each summary. The UI uses the first one to show the nearest birthdays.
	OnCheck func(Summary)

	trigger chan struct{}
	after   func(time.Duration) <-chan time.Time
}

// NewRunner returns a runner with the default startup delay.
func NewRunner(c *Checker) *Runner {
	return &Runner{
		Checker:      c,
		StartupDelay: config.DefaultStartupDelay,
		trigger:      make(chan struct{}, config.ChannelBufferSize),
		after:        time.After,
	}
}

// Trigger requests an immediate check. It never blocks; a pending request absorbs new ones.
func (r *Runner) Trigger() {
	select {
	case r.trigger <- struct{}{}:
	default:
		slog.Debug(config.MsgTriggerSkipped, config.LogKeyComponent, config.CompScheduler)
	}
}

// Run blocks until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) {
	log := slog.With(config.LogKeyComponent, config.CompScheduler)
	log.Info(config.MsgWorkerStart, config.LogKeyWait, r.StartupDelay)

	wait := r.after(r.StartupDelay)
	for {
		select {
		case <-ctx.Done():
			log.Info(config.MsgWorkerStop)
			return
		case <-r.trigger:
		case <-wait:
		}

		r.check(ctx)

		next := untilNextMidnight(r.Checker.clock().Now())
		log.Debug(config.MsgWorkerWake, config.LogKeyWait, next)
		wait = r.after(next)
	}
}

func (r *Runner) check(ctx context.Context) {
	sum, err := r.Checker.RunOnce(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		slog.Error(config.MsgCheckFailed,
			config.LogKeyComponent, config.CompScheduler,
			config.LogKeyError, err)
	}
	if r.OnCheck != nil {
		r.OnCheck(sum)
	}
}

// untilNextMidnight returns the wait until just after the next local midnight.
func untilNextMidnight(now time.Time) time.Duration {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
	return midnight.Sub(now) + config.MidnightSlack
}
