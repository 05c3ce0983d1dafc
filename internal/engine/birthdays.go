package engine

import (
	"log/slog"
	"time"

	"github.com/tartampluch/pet-reminder/internal/config"
)

// BirthdayCheck is the outcome of one gated birthday evaluation.
type BirthdayCheck struct {
	// Ran is false when the marker showed that today was already evaluated.
	Ran bool

	// Reminders follow input order.
	Reminders []Reminder

	// Results holds one entry per input record when Ran is true.
	Results []Result[BirthdayRecord]

	// Marker is the value the caller must persist. It is always today's date.
	Marker Marker
}

// EvaluateBirthdays computes the birthday reminders due "today".
// If last already covers today the evaluation is skipped entirely.
// The function is pure: persisting the returned marker is the caller's job.
func EvaluateBirthdays(today time.Time, records []BirthdayRecord, last Marker, f Formatter) BirthdayCheck {
	check := BirthdayCheck{Marker: MarkerFor(today)}

	if last.Covers(today) {
		slog.Debug(config.MsgGateClosed,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyKind, config.KindBirthday,
			config.LogKeyDate, last.Date)
		return check
	}

	check.Ran = true
	check.Reminders, check.Results = UpcomingBirthdays(today, records, f)
	return check
}

// UpcomingBirthdays applies the 3/7 day rule without consulting any marker.
// It backs the "nearest birthdays" action, which may be repeated at will.
func UpcomingBirthdays(today time.Time, records []BirthdayRecord, f Formatter) ([]Reminder, []Result[BirthdayRecord]) {
	f = formatterOrDefault(f)

	var reminders []Reminder
	results := make([]Result[BirthdayRecord], 0, len(records))

	for i, b := range records {
		next, age, err := birthdayOccurrence(today, b)
		if err != nil {
			logSkipped(config.KindBirthday, i, err)
			results = append(results, Result[BirthdayRecord]{Index: i, Record: b, Err: err})
			continue
		}
		results = append(results, Result[BirthdayRecord]{Index: i, Record: b})

		daysLeft := daysBetween(today, next)
		if !isBirthdayNotice(daysLeft) {
			continue
		}

		reminders = append(reminders, Reminder{
			Kind:     config.KindBirthday,
			Index:    i,
			Name:     b.Name,
			Date:     next,
			DaysLeft: daysLeft,
			Age:      age,
			Message:  f.FormatBirthday(b.Name, daysLeft, age),
		})
	}
	return reminders, results
}

// DaysUntilBirthday returns the number of days until the next occurrence of b.
// Only month and day are checked; the birth year plays no part.
func DaysUntilBirthday(today time.Time, b BirthdayRecord) (int, error) {
	if err := validateMonthDay(b.Month, b.Day); err != nil {
		return 0, err
	}
	return daysBetween(today, nextOccurrence(today, b.Month, b.Day)), nil
}

// birthdayOccurrence validates b and returns its next occurrence and the age turned then.
// A birth year after the occurrence gives a negative age; the record still counts.
func birthdayOccurrence(today time.Time, b BirthdayRecord) (time.Time, int, error) {
	if err := b.Validate(); err != nil {
		return time.Time{}, 0, err
	}
	next := nextOccurrence(today, b.Month, b.Day)
	return next, next.Year() - b.Year, nil
}

func isBirthdayNotice(daysLeft int) bool {
	return daysLeft == config.BirthdayNoticeNear || daysLeft == config.BirthdayNoticeFar
}

func logSkipped(kind string, index int, err error) {
	slog.Debug(config.MsgRecordSkipped,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyKind, kind,
		config.LogKeyIndex, index,
		config.LogKeyReason, err)
}
