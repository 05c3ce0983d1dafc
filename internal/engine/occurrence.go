package engine

import "time"

// civilDate strips the clock and zone from t, keeping its local calendar day.
// Day differences between civil dates are exact multiples of 24h (no DST).
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the signed number of calendar days from 'from' to 'to'.
func daysBetween(from, to time.Time) int {
	return int(civilDate(to).Sub(civilDate(from)).Hours() / 24)
}

// nextOccurrence returns the first (month, day) on or after the calendar day of 'today'.
// Go's time.Date normalizes Feb 29 to March 1st in non-leap years.
func nextOccurrence(today time.Time, month, day int) time.Time {
	todayStart := civilDate(today)
	candidate := time.Date(todayStart.Year(), time.Month(month), day, 0, 0, 0, 0, time.UTC)

	if candidate.Before(todayStart) {
		// Already passed this year, next one is next year.
		candidate = time.Date(todayStart.Year()+1, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	}
	return candidate
}
