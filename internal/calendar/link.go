// Package calendar hands a composed trip off to an external calendar: either
// a pre-filled Google Calendar creation link or a downloadable iCalendar file.
package calendar

import (
	"net/url"
	"time"
)

const (
	renderBase  = "https://calendar.google.com/calendar/render?action=TEMPLATE"
	stampLayout = "20060102T150405"

	// EventDuration is the fixed length of a trip event. Start time is user
	// chosen; the end is not.
	EventDuration = 6 * time.Hour
)

// Title builds the event title shown in the calendar.
func Title(destination, route string) string {
	if route != "" {
		return "⛰️ " + destination + " - " + route
	}
	return "⛰️ " + destination + " 登山"
}

// DateRange formats the start/end token the calendar service expects.
func DateRange(start time.Time) string {
	end := start.Add(EventDuration)
	return start.Format(stampLayout) + "/" + end.Format(stampLayout)
}

// Link builds the pre-filled event-creation URL. All parameters are
// percent-encoded; the external service owns any length limits on details.
func Link(title string, start time.Time, details, location string) string {
	params := url.Values{}
	params.Set("text", title)
	params.Set("dates", DateRange(start))
	params.Set("location", location)
	params.Set("details", details)
	return renderBase + "&" + params.Encode()
}
