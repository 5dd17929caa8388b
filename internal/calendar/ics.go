package calendar

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
)

// ICS renders the trip as a single-event iCalendar payload, for calendar apps
// that import files instead of following a creation link.
func ICS(title string, start time.Time, details, location string) string {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)

	event := cal.AddEvent(fmt.Sprintf("%d@hiking-helper", start.Unix()))
	event.SetDtStampTime(start)
	// The start is the user's wall clock, same as in the creation link, so
	// both timestamps stay floating: no UTC designator, no TZID.
	event.SetProperty(ical.ComponentPropertyDtStart, start.Format(stampLayout))
	event.SetProperty(ical.ComponentPropertyDtEnd, start.Add(EventDuration).Format(stampLayout))
	event.SetSummary(title)
	event.SetLocation(location)
	event.SetDescription(details)

	return cal.Serialize()
}
