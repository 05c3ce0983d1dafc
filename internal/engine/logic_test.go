package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestNextOccurrence verifies the core temporal logic: wrap-around, today, leap years.
func TestNextOccurrence(t *testing.T) {
	// Reference "Now": June 15th, 2025 (Non-Leap Year), mid-morning.
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		month, day   int
		expectedDate time.Time
	}{
		{"Passed this year", 1, 1, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"Later this year", 12, 31, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"Today counts as next", 6, 15, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)},
		{"Yesterday wraps", 6, 14, time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC)},
		{"Leapling in non-leap year", 2, 29, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedDate, nextOccurrence(now, tt.month, tt.day))
		})
	}
}

func TestNextOccurrence_LeapYearContext(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), nextOccurrence(now, 2, 29),
		"In a leap year, the birthday should be Feb 29, not Mar 1")
}

func TestDaysBetween(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skip("tzdata not available")
	}

	tests := []struct {
		name     string
		from, to time.Time
		want     int
	}{
		{"Same day different hours", time.Date(2024, 6, 1, 23, 59, 0, 0, time.UTC), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 0},
		{"Forward", time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC), 3},
		{"Backward", time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), -3},
		{"Across year end", time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), 3},
		{"Across DST change", time.Date(2024, 3, 30, 8, 0, 0, 0, paris), time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, daysBetween(tt.from, tt.to))
		})
	}
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 29, daysIn(2000, 2))
	assert.Equal(t, 28, daysIn(2025, 2))
	assert.Equal(t, 31, daysIn(2025, 12))
	assert.Equal(t, 30, daysIn(2025, 4))
}
