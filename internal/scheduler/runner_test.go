package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/pet-reminder/internal/config"
	"github.com/tartampluch/pet-reminder/internal/engine"
	"github.com/tartampluch/pet-reminder/internal/store"
)

type countingNotifier struct {
	calls chan string
}

func (n *countingNotifier) Notify(_, title, _ string) {
	n.calls <- title
}

// fakeTimers replaces time.After so the test decides when each wait expires.
type fakeTimers struct {
	waits chan time.Duration
	fire  chan time.Time
}

func newFakeTimers() *fakeTimers {
	return &fakeTimers{waits: make(chan time.Duration, 10), fire: make(chan time.Time)}
}

func (f *fakeTimers) after(d time.Duration) <-chan time.Time {
	f.waits <- d
	return f.fire
}

func newTestRunner(t *testing.T) (*Runner, *fakeTimers, chan Summary) {
	t.Helper()
	s := store.New(t.TempDir())
	require.NoError(t, s.SaveBirthdays([]engine.BirthdayRecord{{Name: "Anna", Day: 4, Month: 6, Year: 1990}}))

	now := time.Date(2024, 6, 1, 23, 0, 0, 0, time.Local)
	r := NewRunner(&Checker{Store: s, Clock: engine.FixedClock{Time: now}})
	timers := newFakeTimers()
	r.after = timers.after

	summaries := make(chan Summary, 10)
	r.OnCheck = func(s Summary) { summaries <- s }
	return r, timers, summaries
}

func TestRunner_StartupDelayThenMidnight(t *testing.T) {
	r, timers, summaries := newTestRunner(t)
	r.StartupDelay = 42 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	assert.Equal(t, 42*time.Millisecond, <-timers.waits)
	timers.fire <- time.Now()

	sum := <-summaries
	assert.True(t, sum.BirthdaysRan)
	assert.Len(t, sum.Birthdays, 1)

	// Next wait targets 00:00:05 on the following day.
	assert.Equal(t, time.Hour+config.MidnightSlack, <-timers.waits)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("runner did not stop on cancellation")
	}
}

func TestRunner_Trigger(t *testing.T) {
	r, timers, summaries := newTestRunner(t)
	r.Checker.Notifier = &countingNotifier{calls: make(chan string, 10)}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	<-timers.waits
	r.Trigger()
	first := <-summaries
	assert.True(t, first.BirthdaysRan)

	<-timers.waits
	r.Trigger()
	second := <-summaries
	assert.False(t, second.BirthdaysRan, "Same-day trigger is gated by the marker")
}

func TestRunner_TriggerNeverBlocks(t *testing.T) {
	r := NewRunner(&Checker{Store: store.New(t.TempDir())})
	for i := 0; i < 5; i++ {
		r.Trigger()
	}
	assert.Len(t, r.trigger, config.ChannelBufferSize)
}

func TestUntilNextMidnight(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Duration
	}{
		{"Late evening", time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC), 30*time.Minute + config.MidnightSlack},
		{"Just after midnight", time.Date(2024, 6, 1, 0, 0, 1, 0, time.UTC), 24*time.Hour - time.Second + config.MidnightSlack},
		{"Year end", time.Date(2024, 12, 31, 12, 0, 0, 0, time.UTC), 12*time.Hour + config.MidnightSlack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, untilNextMidnight(tt.now))
		})
	}
}
