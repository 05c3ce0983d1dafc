package engine

import (
	"time"

	"github.com/tartampluch/pet-reminder/internal/config"
)

// Result is the outcome for one input record: either accepted (Err == nil)
// or skipped with the reason in Err.
type Result[T any] struct {
	Index  int
	Record T
	Err    error
}

// Skipped reports whether the record was dropped.
func (r Result[T]) Skipped() bool {
	return r.Err != nil
}

// Valid returns the records of all accepted results, in order.
func Valid[T any](results []Result[T]) []T {
	out := make([]T, 0, len(results))
	for _, r := range results {
		if !r.Skipped() {
			out = append(out, r.Record)
		}
	}
	return out
}

// CountSkipped returns how many results were dropped.
func CountSkipped[T any](results []Result[T]) int {
	n := 0
	for _, r := range results {
		if r.Skipped() {
			n++
		}
	}
	return n
}

// Marker records the last calendar day on which a due-check ran.
type Marker struct {
	Date string `json:"date,omitempty"`
}

// MarkerFor returns the marker for the local calendar day of t.
func MarkerFor(t time.Time) Marker {
	return Marker{Date: t.Format(config.MarkerDateFormat)}
}

// Covers reports whether the marker already holds the calendar day of t.
func (m Marker) Covers(t time.Time) bool {
	return m.Date != "" && m.Date == t.Format(config.MarkerDateFormat)
}

// Reminder is a record that is due today.
type Reminder struct {
	Kind     string    // config.KindBirthday or config.KindEvent
	Index    int       // position in the evaluated list
	Name     string    // person name or event title
	Date     time.Time // occurrence date (birthdays) or event date
	DaysLeft int
	Age      int // birthdays only: age turned at Date
	Hour     int // events only
	Minute   int // events only
	Message  string
}

// Messages extracts the formatted text of each reminder.
func Messages(reminders []Reminder) []string {
	out := make([]string, 0, len(reminders))
	for _, r := range reminders {
		out = append(out, r.Message)
	}
	return out
}
