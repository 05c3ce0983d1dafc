package locale

import (
	"github.com/tartampluch/pet-reminder/internal/config"
)

// FormatBirthday implements engine.Formatter.
func (l *Localizer) FormatBirthday(name string, daysLeft, age int) string {
	return l.GetMsgData(config.TKeyMsgBirthday, map[string]any{
		"Name":      name,
		"Days":      daysLeft,
		"DaysWord":  l.Plural(config.TKeyDays, daysLeft),
		"Age":       age,
		"YearsWord": l.Plural(config.TKeyYears, age),
	})
}

// FormatEvent implements engine.Formatter.
func (l *Localizer) FormatEvent(title string, daysLeft int, timeOfDay string) string {
	return l.GetMsgData(config.TKeyMsgEvent, map[string]any{
		"Title":    title,
		"Days":     daysLeft,
		"DaysWord": l.Plural(config.TKeyDays, daysLeft),
		"Time":     timeOfDay,
	})
}

// BirthdaysTitle is the notification title for birthday reminders.
func (l *Localizer) BirthdaysTitle() string {
	return l.GetMsg(config.TKeyNotifBirthdays)
}

// EventsTitle is the notification title for event reminders.
func (l *Localizer) EventsTitle() string {
	return l.GetMsg(config.TKeyNotifEvents)
}

// NoneMessage is shown when the nearest-birthdays action finds nothing.
func (l *Localizer) NoneMessage() string {
	return l.GetMsg(config.TKeyNotifNone)
}
