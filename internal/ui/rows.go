package ui

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/tartampluch/pet-reminder/internal/config"
	"github.com/tartampluch/pet-reminder/internal/engine"
)

// RowError points at the first editor row that blocks a save.
// Row is 1-based; Key is the translation key of the message.
type RowError struct {
	Row int
	Key string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Key)
}

// BirthdayRow is the editable text of one birthday.
type BirthdayRow struct {
	Name string
	Date string // YYYY-MM-DD
}

// EventRow is the editable text of one event.
type EventRow struct {
	Title  string
	Date   string // YYYY-MM-DD
	Time   string // HH:MM, empty means 00:00
	Remind string // days before, may be negative or empty
}

// BirthdayRows formats records for the editor.
func BirthdayRows(records []engine.BirthdayRecord) []BirthdayRow {
	rows := make([]BirthdayRow, 0, len(records))
	for _, b := range records {
		rows = append(rows, BirthdayRow{Name: b.Name, Date: formatDate(b.Year, b.Month, b.Day)})
	}
	return rows
}

// EventRows formats records for the editor.
func EventRows(records []engine.EventRecord) []EventRow {
	rows := make([]EventRow, 0, len(records))
	for _, e := range records {
		rows = append(rows, EventRow{
			Title:  e.Title,
			Date:   formatDate(e.Year, e.Month, e.Day),
			Time:   e.TimeOfDay(),
			Remind: strconv.Itoa(e.RemindBefore),
		})
	}
	return rows
}

// BirthdaysFromRows parses editor rows. Rows without a name are dropped;
// a row with an unparsable date stops the conversion.
func BirthdaysFromRows(rows []BirthdayRow) ([]engine.BirthdayRecord, error) {
	records := make([]engine.BirthdayRecord, 0, len(rows))
	for i, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			logDropped(config.KindBirthday, i)
			continue
		}
		d, err := parseRowDate(row.Date)
		if err != nil {
			return nil, &RowError{Row: i + 1, Key: config.TKeyErrDateRow}
		}
		records = append(records, engine.BirthdayRecord{
			Name:  name,
			Day:   d.Day(),
			Month: int(d.Month()),
			Year:  d.Year(),
		})
	}
	return records, nil
}

// EventsFromRows parses editor rows with the same rules as BirthdaysFromRows.
func EventsFromRows(rows []EventRow) ([]engine.EventRecord, error) {
	records := make([]engine.EventRecord, 0, len(rows))
	for i, row := range rows {
		title := strings.TrimSpace(row.Title)
		if title == "" {
			logDropped(config.KindEvent, i)
			continue
		}
		d, err := parseRowDate(row.Date)
		if err != nil {
			return nil, &RowError{Row: i + 1, Key: config.TKeyErrDateRow}
		}

		rec := engine.EventRecord{Title: title, Day: d.Day(), Month: int(d.Month()), Year: d.Year()}

		if t := strings.TrimSpace(row.Time); t != "" {
			tod, err := time.Parse(config.TimeFormatDisplay, t)
			if err != nil {
				return nil, &RowError{Row: i + 1, Key: config.TKeyErrTimeRow}
			}
			rec.Hour, rec.Minute = tod.Hour(), tod.Minute()
		}

		if r := strings.TrimSpace(row.Remind); r != "" {
			n, err := strconv.Atoi(r)
			if err != nil {
				return nil, &RowError{Row: i + 1, Key: config.TKeyErrRemindRow}
			}
			rec.RemindBefore = n
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseRowDate(s string) (time.Time, error) {
	return time.Parse(config.DateFormatDisplay, strings.TrimSpace(s))
}

func formatDate(y, m, d int) string {
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}

func logDropped(kind string, index int) {
	slog.Debug(config.MsgRowDropped,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyKind, kind,
		config.LogKeyIndex, index)
}
