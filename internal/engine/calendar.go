package engine

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/tartampluch/pet-reminder/internal/config"
)

// uidSpace scopes the name-based UUIDs so they never collide with other producers.
var uidSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte(config.UIDNamespace))

// BuildCalendar renders birthdays and events as an iCalendar feed.
// Each birthday yields all-day events for the previous, current and next year,
// with alarms at the same lead times as the desktop reminders. Each event yields
// one timed VEVENT with an alarm RemindBefore days ahead when it is positive.
// Malformed records are skipped, like in the evaluators.
func BuildCalendar(now time.Time, birthdays []BirthdayRecord, events []EventRecord) ([]byte, error) {
	cal := ical.NewCalendar()

	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986: Suggest a refresh interval
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	for i, b := range birthdays {
		if err := b.Validate(); err != nil {
			logSkipped(config.KindBirthday, i, err)
			continue
		}
		for _, e := range birthdayEvents(now, b) {
			e.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, e.Component)
		}
	}

	for i, ev := range events {
		if err := ev.Validate(); err != nil {
			logSkipped(config.KindEvent, i, err)
			continue
		}
		e := timedEvent(ev)
		e.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, e.Component)
	}

	// A VCALENDAR without components is rejected by the encoder; clients accept the stub.
	if len(cal.Children) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}

// birthdayEvents generates events for CurrentYear-1, CurrentYear and CurrentYear+1.
// No event is created before the person is born.
func birthdayEvents(now time.Time, b BirthdayRecord) []*ical.Event {
	currentYear := now.Year()
	targetYears := []int{currentYear - 1, currentYear, currentYear + 1}

	var events []*ical.Event
	for _, y := range targetYears {
		if y < b.Year {
			continue
		}

		age := y - b.Year
		summary := fmt.Sprintf(config.FallbackSummaryAge, b.Name, age)

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, recordUID(config.FormatBirthdayUID, b.Name, b.Year, b.Month, b.Day, y))
		event.Props.SetText(config.PropSummary, summary)

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(time.Date(y, time.Month(b.Month), b.Day, 0, 0, 0, 0, time.UTC))
		event.Props.Set(dtStartProp)

		for _, days := range config.BirthdayNoticeDays {
			addAlarm(event, days, summary)
		}
		events = append(events, event)
	}
	return events
}

// timedEvent converts an event; the stored wall-clock time is read in the local zone.
func timedEvent(e EventRecord) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, recordUID(config.FormatEventUID, e.Title, e.Year, e.Month, e.Day, e.Hour, e.Minute))
	event.Props.SetText(config.PropSummary, e.Title)

	start := time.Date(e.Year, time.Month(e.Month), e.Day, e.Hour, e.Minute, 0, 0, time.Local)
	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDateTime(start.UTC())
	event.Props.Set(dtStartProp)

	if e.RemindBefore > 0 {
		addAlarm(event, e.RemindBefore, e.Title)
	}
	return event
}

// addAlarm appends a DISPLAY alarm firing the given number of days before the event.
func addAlarm(event *ical.Event, daysBefore int, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = fmt.Sprintf(config.ICalTrigger, daysBefore)
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}

// recordUID derives a stable UID so calendar clients recognise updates.
func recordUID(format string, args ...any) string {
	return uuid.NewSHA1(uidSpace, []byte(fmt.Sprintf(format, args...))).String()
}
