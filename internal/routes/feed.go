package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Binaergewitter/datefinder/internal/ical"
	"github.com/Binaergewitter/datefinder/internal/model"
)

// ConfirmationStore is the slice of the storage provider the feed needs.
type ConfirmationStore interface {
	ListConfirmationsFrom(ctx context.Context, date time.Time) ([]model.ConfirmedDate, error)
}

// FeedHandler serves the public iCalendar feed. No authentication: calendar
// subscriptions cannot send cookies.
type FeedHandler struct {
	store    ConfirmationStore
	renderer *ical.Renderer
}

func NewFeedHandler(store ConfirmationStore, renderer *ical.Renderer) *FeedHandler {
	return &FeedHandler{store: store, renderer: renderer}
}

func (h *FeedHandler) Serve(c *gin.Context) {
	// All confirmed dates, past ones included, so subscribed calendars
	// keep their history.
	confirmed, err := h.store.ListConfirmationsFrom(c.Request.Context(), time.Time{})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	content, err := h.renderer.Render(confirmed)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="podcast.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(content))
}
