package engine

import (
	"fmt"

	"github.com/tartampluch/pet-reminder/internal/config"
)

// Formatter turns a due record into the text shown to the user.
// The locale package provides a translated implementation.
type Formatter interface {
	FormatBirthday(name string, daysLeft, age int) string
	FormatEvent(title string, daysLeft int, timeOfDay string) string
}

// PlainFormatter is the untranslated English fallback.
type PlainFormatter struct{}

// FormatBirthday implements Formatter.
func (PlainFormatter) FormatBirthday(name string, daysLeft, age int) string {
	return fmt.Sprintf(config.FallbackBirthdayMsg, name, daysLeft, age)
}

// FormatEvent implements Formatter.
func (PlainFormatter) FormatEvent(title string, daysLeft int, timeOfDay string) string {
	return fmt.Sprintf(config.FallbackEventMsg, title, daysLeft, timeOfDay)
}

func formatterOrDefault(f Formatter) Formatter {
	if f == nil {
		return PlainFormatter{}
	}
	return f
}
