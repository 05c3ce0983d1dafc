package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tartampluch/pet-reminder/internal/config"
)

// Validation errors reported through Result.Err for skipped records.
var (
	ErrInvalidDay    = errors.New(config.ErrInvalidDay)
	ErrInvalidMonth  = errors.New(config.ErrInvalidMonth)
	ErrInvalidYear   = errors.New(config.ErrInvalidYear)
	ErrInvalidHour   = errors.New(config.ErrInvalidHour)
	ErrInvalidMinute = errors.New(config.ErrInvalidMinute)
	ErrRecordDecode  = errors.New(config.ErrRecordDecode)
)

// BirthdayRecord is one row of the birthdays list.
// It has no identity beyond its position in the list.
type BirthdayRecord struct {
	Name  string `json:"name"`
	Day   int    `json:"day"`
	Month int    `json:"month"`
	Year  int    `json:"year"`
}

// EventRecord is one row of the events list.
// RemindBefore is the exact number of days ahead at which the reminder fires.
type EventRecord struct {
	Title        string `json:"title"`
	Day          int    `json:"day"`
	Month        int    `json:"month"`
	Year         int    `json:"year"`
	Hour         int    `json:"hour"`
	Minute       int    `json:"minute"`
	RemindBefore int    `json:"remind_before"`
}

// Date returns the birth date. It is only meaningful after Validate succeeds.
func (b BirthdayRecord) Date() time.Time {
	return time.Date(b.Year, time.Month(b.Month), b.Day, 0, 0, 0, 0, time.UTC)
}

// Validate checks the calendar fields. Feb 29 is accepted for any year.
func (b BirthdayRecord) Validate() error {
	if err := validateMonthDay(b.Month, b.Day); err != nil {
		return err
	}
	if b.Year < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidYear, b.Year)
	}
	return nil
}

// Date returns the event date at midnight UTC.
func (e EventRecord) Date() time.Time {
	return time.Date(e.Year, time.Month(e.Month), e.Day, 0, 0, 0, 0, time.UTC)
}

// TimeOfDay renders the stored time as HH:MM.
func (e EventRecord) TimeOfDay() string {
	return fmt.Sprintf(config.TimeOfDayFormat, e.Hour, e.Minute)
}

// Validate checks that the event names a real date and time of day.
func (e EventRecord) Validate() error {
	if e.Year < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidYear, e.Year)
	}
	if e.Month < 1 || e.Month > 12 {
		return fmt.Errorf("%w: %d", ErrInvalidMonth, e.Month)
	}
	if e.Day < 1 || e.Day > daysIn(e.Year, e.Month) {
		return fmt.Errorf("%w: %d", ErrInvalidDay, e.Day)
	}
	if e.Hour < 0 || e.Hour > config.MaxHour {
		return fmt.Errorf("%w: %d", ErrInvalidHour, e.Hour)
	}
	if e.Minute < 0 || e.Minute > config.MaxMinute {
		return fmt.Errorf("%w: %d", ErrInvalidMinute, e.Minute)
	}
	return nil
}

func validateMonthDay(month, day int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}
	if day < 1 || day > daysIn(config.LeapReferenceYear, month) {
		return fmt.Errorf("%w: %d", ErrInvalidDay, day)
	}
	return nil
}

// daysIn returns the number of days in the given month.
func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// -----------------------------------------------------------------------------
// Lenient JSON decoding
// -----------------------------------------------------------------------------

// The files are hand-editable, so integers may arrive as numbers or numeric strings.
// Missing date fields make the record undecodable; hour, minute and remind_before default to 0.

type rawBirthday struct {
	Name  string   `json:"name"`
	Day   *flexInt `json:"day"`
	Month *flexInt `json:"month"`
	Year  *flexInt `json:"year"`
}

type rawEvent struct {
	Title        string   `json:"title"`
	Day          *flexInt `json:"day"`
	Month        *flexInt `json:"month"`
	Year         *flexInt `json:"year"`
	Hour         *flexInt `json:"hour"`
	Minute       *flexInt `json:"minute"`
	RemindBefore *flexInt `json:"remind_before"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *BirthdayRecord) UnmarshalJSON(data []byte) error {
	var raw rawBirthday
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	day, month, year, err := requireDate(raw.Day, raw.Month, raw.Year)
	if err != nil {
		return err
	}
	*b = BirthdayRecord{Name: raw.Name, Day: day, Month: month, Year: year}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *EventRecord) UnmarshalJSON(data []byte) error {
	var raw rawEvent
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	day, month, year, err := requireDate(raw.Day, raw.Month, raw.Year)
	if err != nil {
		return err
	}
	*e = EventRecord{
		Title:        raw.Title,
		Day:          day,
		Month:        month,
		Year:         year,
		Hour:         raw.Hour.orZero(),
		Minute:       raw.Minute.orZero(),
		RemindBefore: raw.RemindBefore.orZero(),
	}
	return nil
}

func requireDate(day, month, year *flexInt) (int, int, int, error) {
	fields := []struct {
		name  string
		value *flexInt
	}{{"day", day}, {"month", month}, {"year", year}}
	for _, f := range fields {
		if f.value == nil {
			return 0, 0, 0, fmt.Errorf("%w: missing %s", ErrRecordDecode, f.name)
		}
	}
	return int(*day), int(*month), int(*year), nil
}

// flexInt accepts 5, 5.0 and "5". Fractions are truncated.
type flexInt int

func (f *flexInt) orZero() int {
	if f == nil {
		return 0
	}
	return int(*f)
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *flexInt) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}

	var text string
	switch t := v.(type) {
	case json.Number:
		text = t.String()
	case string:
		text = strings.TrimSpace(t)
	default:
		return fmt.Errorf("%s: %s", config.ErrNotANumber, string(data))
	}

	if n, err := strconv.Atoi(text); err == nil {
		*f = flexInt(n)
		return nil
	}
	if _, isString := v.(string); !isString {
		if fl, err := strconv.ParseFloat(text, 64); err == nil && !math.IsInf(fl, 0) && !math.IsNaN(fl) {
			*f = flexInt(int(fl))
			return nil
		}
	}
	return fmt.Errorf("%s: %q", config.ErrNotANumber, text)
}
