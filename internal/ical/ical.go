// Package ical renders the public calendar feed from confirmed date
// records. Each confirmed date becomes one fixed 20:00-23:00 event in the
// configured timezone.
package ical

import (
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/Binaergewitter/datefinder/internal/model"
)

const (
	eventStartHour = 20
	eventEndHour   = 23
)

type Renderer struct {
	name string
	loc  *time.Location
}

func NewRenderer(name string, loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.UTC
	}
	return &Renderer{name: name, loc: loc}
}

// Render produces the feed document. An empty record list yields an empty
// but valid calendar.
func (r *Renderer) Render(confirmed []model.ConfirmedDate) (string, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(fmt.Sprintf("-//%s//EN", r.name))
	cal.SetCalscale("GREGORIAN")
	cal.SetXWRCalName(r.name)

	for _, entry := range confirmed {
		day, err := time.ParseInLocation("2006-01-02", entry.Date, r.loc)
		if err != nil {
			return "", fmt.Errorf("invalid confirmed date %q: %w", entry.Date, err)
		}

		start := time.Date(day.Year(), day.Month(), day.Day(), eventStartHour, 0, 0, 0, r.loc)
		end := time.Date(day.Year(), day.Month(), day.Day(), eventEndHour, 0, 0, 0, r.loc)

		// Stable UID so feed consumers track re-confirms as updates
		event := cal.AddEvent(fmt.Sprintf("%s-podcast@datefinder", entry.Date))
		event.SetDtStampTime(entry.CreatedAt.UTC())
		event.SetStartAt(start)
		event.SetEndAt(end)

		summary := entry.Description
		if summary == "" {
			summary = "Podcast Recording"
		}
		event.SetSummary(summary)

		if entry.ConfirmedBy != "" {
			event.SetDescription("Confirmed by: " + entry.ConfirmedBy)
		}
	}

	return cal.Serialize(), nil
}
