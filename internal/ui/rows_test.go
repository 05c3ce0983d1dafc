package ui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/pet-reminder/internal/config"
	"github.com/tartampluch/pet-reminder/internal/engine"
)

func TestBirthdaysFromRows(t *testing.T) {
	got, err := BirthdaysFromRows([]BirthdayRow{
		{Name: " Anna ", Date: "1990-06-04"},
		{Name: "", Date: "not a date"},
		{Name: "   ", Date: "2000-01-01"},
		{Name: "Leo", Date: "2000-02-29"},
	})
	require.NoError(t, err)
	assert.Equal(t, []engine.BirthdayRecord{
		{Name: "Anna", Day: 4, Month: 6, Year: 1990},
		{Name: "Leo", Day: 29, Month: 2, Year: 2000},
	}, got, "Rows without a name are dropped")
}

func TestBirthdaysFromRows_InvalidDate(t *testing.T) {
	for _, date := range []string{"04.06.1990", "1990-13-01", "2001-02-29", ""} {
		_, err := BirthdaysFromRows([]BirthdayRow{
			{Name: "Anna", Date: "1990-06-04"},
			{Name: "Ivan", Date: date},
		})

		var rowErr *RowError
		require.Truef(t, errors.As(err, &rowErr), "date %q", date)
		assert.Equal(t, 2, rowErr.Row)
		assert.Equal(t, config.TKeyErrDateRow, rowErr.Key)
	}
}

func TestEventsFromRows(t *testing.T) {
	got, err := EventsFromRows([]EventRow{
		{Title: "Vet", Date: "2024-06-03", Time: "09:05", Remind: "2"},
		{Title: "Party", Date: "2024-06-10"},
		{Title: "Past", Date: "2024-05-01", Time: " 23:59 ", Remind: "-3"},
		{Title: "", Date: "garbage"},
	})
	require.NoError(t, err)
	assert.Equal(t, []engine.EventRecord{
		{Title: "Vet", Day: 3, Month: 6, Year: 2024, Hour: 9, Minute: 5, RemindBefore: 2},
		{Title: "Party", Day: 10, Month: 6, Year: 2024},
		{Title: "Past", Day: 1, Month: 5, Year: 2024, Hour: 23, Minute: 59, RemindBefore: -3},
	}, got)
}

func TestEventsFromRows_Errors(t *testing.T) {
	tests := []struct {
		name string
		row  EventRow
		key  string
	}{
		{"Bad date", EventRow{Title: "A", Date: "2024-02-30"}, config.TKeyErrDateRow},
		{"Bad time", EventRow{Title: "A", Date: "2024-02-01", Time: "25:00"}, config.TKeyErrTimeRow},
		{"Time with seconds", EventRow{Title: "A", Date: "2024-02-01", Time: "10:00:00"}, config.TKeyErrTimeRow},
		{"Bad remind", EventRow{Title: "A", Date: "2024-02-01", Remind: "two"}, config.TKeyErrRemindRow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EventsFromRows([]EventRow{tt.row})
			var rowErr *RowError
			require.True(t, errors.As(err, &rowErr))
			assert.Equal(t, 1, rowErr.Row)
			assert.Equal(t, tt.key, rowErr.Key)
		})
	}
}

func TestRows_RoundTrip(t *testing.T) {
	events := []engine.EventRecord{{Title: "Vet", Day: 3, Month: 6, Year: 2024, Hour: 9, Minute: 5, RemindBefore: -1}}
	rows := EventRows(events)
	assert.Equal(t, []EventRow{{Title: "Vet", Date: "2024-06-03", Time: "09:05", Remind: "-1"}}, rows)

	back, err := EventsFromRows(rows)
	require.NoError(t, err)
	assert.Equal(t, events, back)

	birthdays := []engine.BirthdayRecord{{Name: "Anna", Day: 4, Month: 6, Year: 1990}}
	assert.Equal(t, []BirthdayRow{{Name: "Anna", Date: "1990-06-04"}}, BirthdayRows(birthdays))
}

func TestBirthdayRows_MalformedRecordIsShownVerbatim(t *testing.T) {
	rows := BirthdayRows([]engine.BirthdayRecord{{Name: "Broken", Day: 1, Month: 13, Year: 1990}})
	assert.Equal(t, "1990-13-01", rows[0].Date)
}
