package calendar

import (
	"context"
	"time"

	"github.com/Binaergewitter/datefinder/internal/model"
)

// Aggregator derives per-date views from the availability store. Views are
// computed fresh on every call; nothing is cached.
type Aggregator struct {
	store  Store
	quorum int
}

func NewAggregator(store Store, displayQuorum int) *Aggregator {
	return &Aggregator{store: store, quorum: displayQuorum}
}

// BuildView returns the participants for a date and whether the date has
// reached the display quorum.
func (a *Aggregator) BuildView(ctx context.Context, date time.Time) (model.DateView, error) {
	participants, err := a.store.ListForDate(ctx, date)
	if err != nil {
		return model.DateView{}, err
	}
	return model.DateView{
		Availability: participants,
		HasStar:      len(participants) >= a.quorum,
	}, nil
}

// BuildViewsInRange returns views for every date in [from, to] that has at
// least one entry, keyed by ISO date string. Dates without entries are
// omitted rather than mapped to empty views.
func (a *Aggregator) BuildViewsInRange(ctx context.Context, from, to time.Time) (map[string]model.DateView, error) {
	participants, err := a.store.ListParticipantsInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	views := make(map[string]model.DateView)
	for _, p := range participants {
		view := views[p.Date]
		view.Availability = append(view.Availability, p)
		views[p.Date] = view
	}

	for date, view := range views {
		view.HasStar = len(view.Availability) >= a.quorum
		views[date] = view
	}

	return views, nil
}
