package routes

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Binaergewitter/datefinder/internal/calendar"
)

// CalendarHandler exposes the calendar core over the JSON API. Every route
// here requires an authenticated user.
type CalendarHandler struct {
	svc *calendar.Service
}

func NewCalendarHandler(svc *calendar.Service) *CalendarHandler {
	return &CalendarHandler{svc: svc}
}

func (h *CalendarHandler) Routes(r *gin.RouterGroup) {
	r.POST("/toggle/:date", h.Toggle)
	r.GET("/availability", h.Availability)
	r.POST("/confirm/:date", h.Confirm)
	r.POST("/unconfirm/:date", h.Unconfirm)
	r.GET("/confirmed", h.Confirmed)
}

// Toggle advances the caller's availability for a date through the
// available/tentative/absent cycle.
func (h *CalendarHandler) Toggle(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	result, err := h.svc.ToggleAvailability(c.Request.Context(), user, c.Param("date"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"date":         result.Date,
		"user_status":  result.NewStatus,
		"availability": result.View.Availability,
		"has_star":     result.View.HasStar,
	})
}

// Availability returns the forward availability window. The caller's own
// user id is included for client-side highlighting.
func (h *CalendarHandler) Availability(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	views, err := h.svc.ReadAllAvailability(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"current_user_id": user.ID,
		"data":            views,
	})
}

type confirmRequest struct {
	Description string `json:"description"`
}

func (h *CalendarHandler) Confirm(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	// Description may be empty, and an empty body is fine too. The bind is
	// unconditional so chunked requests without a Content-Length still carry
	// their description.
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	result, err := h.svc.ConfirmDate(c.Request.Context(), user, c.Param("date"), req.Description)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"date":         result.Confirmation.Date,
		"created":      result.Created,
		"description":  result.Confirmation.Description,
		"confirmed_by": result.Confirmation.ConfirmedBy,
		"created_at":   result.Confirmation.CreatedAt,
	})
}

func (h *CalendarHandler) Unconfirm(c *gin.Context) {
	user, ok := RequireUser(c)
	if !ok {
		return
	}

	removed, err := h.svc.UnconfirmDate(c.Request.Context(), user, c.Param("date"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"date":    c.Param("date"),
		"removed": removed,
	})
}

// Confirmed lists confirmations for today and later, keyed by date.
func (h *CalendarHandler) Confirmed(c *gin.Context) {
	if _, ok := RequireUser(c); !ok {
		return
	}

	confirmed, err := h.svc.ListConfirmed(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	data := make(gin.H, len(confirmed))
	for _, entry := range confirmed {
		data[entry.Date] = gin.H{
			"description":  entry.Description,
			"confirmed_by": entry.ConfirmedBy,
			"created_at":   entry.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}
