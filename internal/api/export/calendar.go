package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/tripgenie/tripgenie/internal/types"
)

const icsTimestampLayout = "20060102T150405"

// BuildCalendar renders the itinerary as ICS text. Each activity becomes one
// timed event: activity i of day d starts at startDate + (d-1) days + 10:00 +
// i x 2.5h and lasts exactly 2 hours, leaving a half-hour gap between
// consecutive activities. The activity's own start/end time strings are
// descriptive only and never enter the schedule. Events are emitted in day
// order, then activity order within the day.
func BuildCalendar(it *types.Itinerary, startDate time.Time) string {
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\nVERSION:2.0\nPRODID:-//Travel Planner//EN\n")

	baseDate := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, startDate.Location())

	for _, day := range it.Days {
		eventTime := baseDate.Add(time.Duration(day.Day-1)*24*time.Hour + 10*time.Hour)

		for _, activity := range day.Activities {
			start := eventTime.Format(icsTimestampLayout)
			end := eventTime.Add(2 * time.Hour).Format(icsTimestampLayout)

			fmt.Fprintf(&b, "BEGIN:VEVENT\nDTSTART:%s\nDTEND:%s\nSUMMARY:%s\nDESCRIPTION:%s\nLOCATION:%s\nEND:VEVENT\n",
				start, end, activity.Title, activity.Description, activity.Location)

			eventTime = eventTime.Add(150 * time.Minute)
		}
	}

	b.WriteString("END:VCALENDAR")
	return b.String()
}
