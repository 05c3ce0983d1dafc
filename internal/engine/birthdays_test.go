package engine_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/pet-reminder/internal/config"
	"github.com/tartampluch/pet-reminder/internal/engine"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 9, 30, 0, 0, time.Local)
}

func TestDaysUntilBirthday(t *testing.T) {
	today := day(2024, 6, 1)

	tests := []struct {
		name string
		rec  engine.BirthdayRecord
		want int
	}{
		{"In three days", engine.BirthdayRecord{Day: 4, Month: 6, Year: 1990}, 3},
		{"Today", engine.BirthdayRecord{Day: 1, Month: 6, Year: 2000}, 0},
		{"Yesterday wraps to next year", engine.BirthdayRecord{Day: 31, Month: 5, Year: 2000}, 364},
		{"Birth year is irrelevant", engine.BirthdayRecord{Day: 4, Month: 6, Year: 2100}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.DaysUntilBirthday(today, tt.rec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := engine.DaysUntilBirthday(today, engine.BirthdayRecord{Day: 1, Month: 13, Year: 1990})
	assert.ErrorIs(t, err, engine.ErrInvalidMonth)
}

func TestUpcomingBirthdays_ThreeAndSevenDayRule(t *testing.T) {
	today := day(2024, 6, 1)
	records := []engine.BirthdayRecord{
		{Name: "Anna", Day: 4, Month: 6, Year: 1990},  // 3 days
		{Name: "Ivan", Day: 1, Month: 6, Year: 2000},  // today, no notice
		{Name: "Olga", Day: 8, Month: 6, Year: 1985},  // 7 days
		{Name: "Petr", Day: 5, Month: 6, Year: 1970},  // 4 days
		{Name: "Masha", Day: 2, Month: 6, Year: 2023}, // 1 day
	}

	reminders, results := engine.UpcomingBirthdays(today, records, nil)

	require.Len(t, results, len(records))
	assert.Zero(t, engine.CountSkipped(results))
	require.Len(t, reminders, 2)

	assert.Equal(t, "Anna", reminders[0].Name)
	assert.Equal(t, 3, reminders[0].DaysLeft)
	assert.Equal(t, 34, reminders[0].Age)
	assert.Equal(t, 0, reminders[0].Index)
	assert.Equal(t, config.KindBirthday, reminders[0].Kind)

	assert.Equal(t, "Olga", reminders[1].Name)
	assert.Equal(t, 7, reminders[1].DaysLeft)
	assert.Equal(t, 39, reminders[1].Age)
	assert.Equal(t, 2, reminders[1].Index)
}

func TestUpcomingBirthdays_AgeAcrossYearEnd(t *testing.T) {
	reminders, _ := engine.UpcomingBirthdays(day(2024, 12, 29), []engine.BirthdayRecord{
		{Name: "Nina", Day: 1, Month: 1, Year: 2000},
	}, nil)

	require.Len(t, reminders, 1)
	assert.Equal(t, 3, reminders[0].DaysLeft)
	assert.Equal(t, 25, reminders[0].Age, "Age is computed for the occurrence year")
	assert.Equal(t, 2025, reminders[0].Date.Year())
}

func TestUpcomingBirthdays_FutureBirthYearStillFires(t *testing.T) {
	records := []engine.BirthdayRecord{{Name: "Later", Day: 4, Month: 6, Year: 2030}}

	reminders, results := engine.UpcomingBirthdays(day(2024, 6, 1), records, nil)

	assert.Zero(t, engine.CountSkipped(results))
	require.Len(t, reminders, 1)
	assert.Equal(t, 3, reminders[0].DaysLeft)
	assert.Equal(t, -6, reminders[0].Age, "Age is next.year - birth_year without a floor")
}

func TestUpcomingBirthdays_MalformedRecordsAreSkipped(t *testing.T) {
	records := []engine.BirthdayRecord{
		{Name: "Broken", Day: 1, Month: 13, Year: 1990},
		{Name: "Anna", Day: 4, Month: 6, Year: 1990},
		{Name: "Feb30", Day: 30, Month: 2, Year: 1990},
		{Name: "Year0", Day: 4, Month: 6, Year: 0},
	}

	reminders, results := engine.UpcomingBirthdays(day(2024, 6, 1), records, nil)

	require.Len(t, results, 4)
	assert.True(t, results[0].Skipped())
	assert.ErrorIs(t, results[0].Err, engine.ErrInvalidMonth)
	assert.False(t, results[1].Skipped())
	assert.ErrorIs(t, results[2].Err, engine.ErrInvalidDay)
	assert.True(t, errors.Is(results[3].Err, engine.ErrInvalidYear))
	assert.Equal(t, 3, engine.CountSkipped(results))

	require.Len(t, reminders, 1, "Siblings of a malformed record are still evaluated")
	assert.Equal(t, "Anna", reminders[0].Name)
	assert.Equal(t, 1, reminders[0].Index)
}

func TestUpcomingBirthdays_Leapling(t *testing.T) {
	rec := []engine.BirthdayRecord{{Name: "Leo", Day: 29, Month: 2, Year: 2000}}

	// 2025 is not a leap year: the birthday is observed on March 1st.
	reminders, _ := engine.UpcomingBirthdays(day(2025, 2, 26), rec, nil)
	require.Len(t, reminders, 1)
	assert.Equal(t, 3, reminders[0].DaysLeft)
	assert.Equal(t, time.March, reminders[0].Date.Month())

	reminders, _ = engine.UpcomingBirthdays(day(2024, 2, 26), rec, nil)
	require.Len(t, reminders, 1)
	assert.Equal(t, time.February, reminders[0].Date.Month())
	assert.Equal(t, 24, reminders[0].Age)
}

func TestUpcomingBirthdays_UsesFormatter(t *testing.T) {
	reminders, _ := engine.UpcomingBirthdays(day(2024, 6, 1), []engine.BirthdayRecord{
		{Name: "Anna", Day: 4, Month: 6, Year: 1990},
	}, engine.PlainFormatter{})

	require.Len(t, reminders, 1)
	assert.Equal(t, "Anna\nIn 3 day(s)\nTurns 34", reminders[0].Message)
	assert.Equal(t, []string{"Anna\nIn 3 day(s)\nTurns 34"}, engine.Messages(reminders))
}

func TestEvaluateBirthdays_MarkerGate(t *testing.T) {
	today := day(2024, 6, 1)
	records := []engine.BirthdayRecord{{Name: "Anna", Day: 4, Month: 6, Year: 1990}}

	first := engine.EvaluateBirthdays(today, records, engine.Marker{}, nil)
	assert.True(t, first.Ran)
	assert.Len(t, first.Reminders, 1)
	assert.Equal(t, "2024-06-01", first.Marker.Date)

	// Same day, marker persisted: nothing is reported.
	second := engine.EvaluateBirthdays(today.Add(3*time.Hour), records, first.Marker, nil)
	assert.False(t, second.Ran)
	assert.Empty(t, second.Reminders)
	assert.Empty(t, second.Results)
	assert.Equal(t, first.Marker, second.Marker)

	// Next day the gate opens again.
	third := engine.EvaluateBirthdays(day(2024, 6, 2), records, first.Marker, nil)
	assert.True(t, third.Ran)
	assert.Empty(t, third.Reminders, "2 days left is not a notice day")
	assert.Equal(t, "2024-06-02", third.Marker.Date)
}

func TestEvaluateBirthdays_StaleOrCorruptMarker(t *testing.T) {
	records := []engine.BirthdayRecord{{Name: "Anna", Day: 4, Month: 6, Year: 1990}}

	for _, m := range []engine.Marker{{Date: "2024-05-31"}, {Date: "garbage"}, {}} {
		check := engine.EvaluateBirthdays(day(2024, 6, 1), records, m, nil)
		assert.True(t, check.Ran, "marker %q must not close the gate", m.Date)
		assert.Len(t, check.Reminders, 1)
	}
}

func TestMarker(t *testing.T) {
	m := engine.MarkerFor(day(2024, 6, 1))
	assert.Equal(t, "2024-06-01", m.Date)
	assert.True(t, m.Covers(day(2024, 6, 1).Add(12*time.Hour)))
	assert.False(t, m.Covers(day(2024, 6, 2)))
	assert.False(t, engine.Marker{}.Covers(day(2024, 6, 1)))
}
