package engine

import (
	"time"

	"github.com/tartampluch/pet-reminder/internal/config"
)

// EventCheck is the outcome of one event evaluation.
type EventCheck struct {
	Reminders []Reminder
	Results   []Result[EventRecord]

	// Marker is today's date; callers persist it for bookkeeping.
	Marker Marker
}

// EvaluateEvents computes the event reminders due "today".
// An event is due when the days left until it equal its own RemindBefore.
// Past events yield negative day counts and still match a negative RemindBefore.
func EvaluateEvents(today time.Time, records []EventRecord, f Formatter) EventCheck {
	f = formatterOrDefault(f)
	check := EventCheck{
		Results: make([]Result[EventRecord], 0, len(records)),
		Marker:  MarkerFor(today),
	}

	for i, e := range records {
		if err := e.Validate(); err != nil {
			logSkipped(config.KindEvent, i, err)
			check.Results = append(check.Results, Result[EventRecord]{Index: i, Record: e, Err: err})
			continue
		}
		check.Results = append(check.Results, Result[EventRecord]{Index: i, Record: e})

		daysLeft := daysBetween(today, e.Date())
		if daysLeft != e.RemindBefore {
			continue
		}

		check.Reminders = append(check.Reminders, Reminder{
			Kind:     config.KindEvent,
			Index:    i,
			Name:     e.Title,
			Date:     e.Date(),
			DaysLeft: daysLeft,
			Hour:     e.Hour,
			Minute:   e.Minute,
			Message:  f.FormatEvent(e.Title, daysLeft, e.TimeOfDay()),
		})
	}
	return check
}

// DaysUntilEvent returns the signed number of days until e.
func DaysUntilEvent(today time.Time, e EventRecord) (int, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}
	return daysBetween(today, e.Date()), nil
}
