// Package scheduler loads the reminder state, runs the evaluators and
// hands due reminders to a notifier, once at startup and once per day.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/tartampluch/pet-reminder/internal/config"
	"github.com/tartampluch/pet-reminder/internal/engine"
	"github.com/tartampluch/pet-reminder/internal/store"
)

// Notifier displays one reminder notification.
type Notifier interface {
	Notify(kind, title, body string)
}

// Publisher receives the regenerated iCalendar feed after each check.
type Publisher interface {
	Update(data []byte)
}

// Texts supplies the translated strings of a notification.
type Texts interface {
	engine.Formatter
	BirthdaysTitle() string
	EventsTitle() string
}

// plainTexts is the untranslated fallback used when no Texts is set.
type plainTexts struct {
	engine.PlainFormatter
}

func (plainTexts) BirthdaysTitle() string { return config.FallbackBirthdayTitle }
func (plainTexts) EventsTitle() string    { return config.FallbackEventTitle }

// Summary reports what one check did.
type Summary struct {
	BirthdaysRan     bool
	EventsRan        bool
	Birthdays        []engine.Reminder
	Events           []engine.Reminder
	SkippedBirthdays int
	SkippedEvents    int
}

// Due returns the total number of reminders fired.
func (s Summary) Due() int {
	return len(s.Birthdays) + len(s.Events)
}

// Checker performs one load-evaluate-notify-persist cycle.
type Checker struct {
	Store     *store.Store
	Clock     engine.Clock
	Texts     Texts
	Notifier  Notifier
	Publisher Publisher // optional

	gateEvents atomic.Bool
}

// SetGateEvents controls whether the events marker suppresses repeat checks on the same day.
func (c *Checker) SetGateEvents(v bool) {
	c.gateEvents.Store(v)
}

// GateEvents reports the current events gating mode.
func (c *Checker) GateEvents() bool {
	return c.gateEvents.Load()
}

// RunOnce evaluates birthdays and events for the clock's current day.
// Each class with at least one reminder yields one notification whose body
// joins the messages with a blank line. Markers are saved afterwards.
func (c *Checker) RunOnce(ctx context.Context) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	log := slog.With(config.LogKeyComponent, config.CompScheduler)
	texts := c.texts()
	today := c.clock().Now()
	log.Debug(config.MsgCheckStarted, config.LogKeyDate, engine.MarkerFor(today).Date)

	birthdayResults := c.Store.LoadBirthdays()
	eventResults := c.Store.LoadEvents()
	birthdays := engine.Valid(birthdayResults)
	events := engine.Valid(eventResults)

	var sum Summary
	sum.SkippedBirthdays = engine.CountSkipped(birthdayResults)
	sum.SkippedEvents = engine.CountSkipped(eventResults)

	bCheck := engine.EvaluateBirthdays(today, birthdays, c.Store.LoadMarker(config.BirthdaysMarkerFile), texts)
	sum.BirthdaysRan = bCheck.Ran
	sum.Birthdays = bCheck.Reminders
	sum.SkippedBirthdays += engine.CountSkipped(bCheck.Results)

	eventsMarker := c.Store.LoadMarker(config.EventsMarkerFile)
	eCheck := engine.EventCheck{Marker: engine.MarkerFor(today)}
	if c.GateEvents() && eventsMarker.Covers(today) {
		log.Debug(config.MsgGateClosed, config.LogKeyKind, config.KindEvent, config.LogKeyDate, eventsMarker.Date)
	} else {
		eCheck = engine.EvaluateEvents(today, events, texts)
		sum.EventsRan = true
		sum.Events = eCheck.Reminders
		sum.SkippedEvents += engine.CountSkipped(eCheck.Results)
	}

	if len(sum.Birthdays) > 0 {
		c.notify(config.KindBirthday, texts.BirthdaysTitle(), sum.Birthdays)
	}
	if len(sum.Events) > 0 {
		c.notify(config.KindEvent, texts.EventsTitle(), sum.Events)
	}

	errB := c.Store.SaveMarker(config.BirthdaysMarkerFile, bCheck.Marker)
	errE := c.Store.SaveMarker(config.EventsMarkerFile, eCheck.Marker)

	c.publish(today, birthdays, events)

	log.Info(config.MsgCheckDone,
		config.LogKeyRan, sum.BirthdaysRan,
		config.LogKeyDue, sum.Due(),
		config.LogKeySkipped, sum.SkippedBirthdays+sum.SkippedEvents,
	)
	return sum, errors.Join(errB, errE)
}

func (c *Checker) notify(kind, title string, reminders []engine.Reminder) {
	if c.Notifier == nil {
		return
	}
	c.Notifier.Notify(kind, title, strings.Join(engine.Messages(reminders), config.MessageSeparator))
}

// Publish regenerates the feed from the current store contents.
func (c *Checker) Publish() {
	c.publish(c.clock().Now(),
		engine.Valid(c.Store.LoadBirthdays()),
		engine.Valid(c.Store.LoadEvents()))
}

func (c *Checker) publish(now time.Time, birthdays []engine.BirthdayRecord, events []engine.EventRecord) {
	if c.Publisher == nil {
		return
	}
	data, err := engine.BuildCalendar(now, birthdays, events)
	if err != nil {
		slog.Error(config.MsgFeedFailed,
			config.LogKeyComponent, config.CompScheduler,
			config.LogKeyError, err)
		return
	}
	c.Publisher.Update(data)
	slog.Debug(config.MsgFeedPublished,
		config.LogKeyComponent, config.CompScheduler,
		config.LogKeySizeBytes, len(data))
}

func (c *Checker) texts() Texts {
	if c.Texts == nil {
		return plainTexts{}
	}
	return c.Texts
}

func (c *Checker) clock() engine.Clock {
	if c.Clock == nil {
		return engine.RealClock{}
	}
	return c.Clock
}
