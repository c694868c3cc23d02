// Package broadcast fans state-change events out to every connected
// calendar viewer over a single shared topic. There is no per-user
// filtering and no replay; clients reconcile by fetching the full
// availability window on (re)connect.
package broadcast

import "github.com/Binaergewitter/datefinder/internal/model"

// Event is one of the two calendar update kinds. The JSON shape is the wire
// format pushed to websocket clients.
type Event interface {
	event()
}

type AvailabilityChanged struct {
	Type         string              `json:"type"`
	Date         string              `json:"date"`
	Availability []model.Participant `json:"availability"`
	HasStar      bool                `json:"has_star"`
}

func (AvailabilityChanged) event() {}

func NewAvailabilityChanged(date string, view model.DateView) AvailabilityChanged {
	return AvailabilityChanged{
		Type:         "availability_update",
		Date:         date,
		Availability: view.Availability,
		HasStar:      view.HasStar,
	}
}

type ConfirmationChanged struct {
	Type        string `json:"type"`
	Date        string `json:"date"`
	Confirmed   bool   `json:"confirmed"`
	Description string `json:"description"`
	ConfirmedBy string `json:"confirmed_by"`
}

func (ConfirmationChanged) event() {}

func NewConfirmationChanged(date string, confirmed bool, description, confirmedBy string) ConfirmationChanged {
	return ConfirmationChanged{
		Type:        "confirmation_update",
		Date:        date,
		Confirmed:   confirmed,
		Description: description,
		ConfirmedBy: confirmedBy,
	}
}
