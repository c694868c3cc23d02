package ical

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Binaergewitter/datefinder/internal/model"
)

func TestRender_EmptyFeedIsValid(t *testing.T) {
	renderer := NewRenderer("Test Schedule", time.UTC)

	content, err := renderer.Render(nil)
	require.NoError(t, err)
	require.Contains(t, content, "BEGIN:VCALENDAR")
	require.Contains(t, content, "END:VCALENDAR")
	require.Contains(t, content, "METHOD:PUBLISH")
	require.NotContains(t, content, "BEGIN:VEVENT")
}

func TestRender_ConfirmedDateBecomesEvent(t *testing.T) {
	renderer := NewRenderer("Test Schedule", time.UTC)

	content, err := renderer.Render([]model.ConfirmedDate{
		{
			Date:        "2030-06-15",
			Description: "Ep 42",
			ConfirmedBy: "alice",
			CreatedAt:   time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	})
	require.NoError(t, err)

	require.Contains(t, content, "BEGIN:VEVENT")
	require.Contains(t, content, "UID:2030-06-15-podcast@datefinder")
	require.Contains(t, content, "SUMMARY:Ep 42")
	require.Contains(t, content, "Confirmed by: alice")
	// Fixed 20:00-23:00 slot, UTC renderer
	require.Contains(t, content, "DTSTART:20300615T200000Z")
	require.Contains(t, content, "DTEND:20300615T230000Z")
}

func TestRender_EmptyDescriptionGetsDefaultSummary(t *testing.T) {
	renderer := NewRenderer("Test Schedule", time.UTC)

	content, err := renderer.Render([]model.ConfirmedDate{
		{Date: "2030-06-15", CreatedAt: time.Now()},
	})
	require.NoError(t, err)
	require.Contains(t, content, "SUMMARY:Podcast Recording")
}

func TestRender_InvalidDate(t *testing.T) {
	renderer := NewRenderer("Test Schedule", time.UTC)

	_, err := renderer.Render([]model.ConfirmedDate{{Date: "not-a-date"}})
	require.Error(t, err)
}

func TestRender_OneEventPerConfirmedDate(t *testing.T) {
	renderer := NewRenderer("Test Schedule", time.UTC)

	content, err := renderer.Render([]model.ConfirmedDate{
		{Date: "2030-06-15", CreatedAt: time.Now()},
		{Date: "2030-06-22", CreatedAt: time.Now()},
	})
	require.NoError(t, err)
	require.Equal(t, 2, strings.Count(content, "BEGIN:VEVENT"))
}
