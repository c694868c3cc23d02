// Package calendar implements the availability aggregation and confirmation
// core: the toggle cycle, the quorum rules, the confirmation state machine
// and the ordered broadcast sequence around them.
package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/Binaergewitter/datefinder/internal/broadcast"
	"github.com/Binaergewitter/datefinder/internal/model"
)

// Store is the slice of the storage provider the service depends on.
type Store interface {
	ToggleAvailability(ctx context.Context, userID int64, date time.Time) (*model.Status, error)
	CountForDate(ctx context.Context, date time.Time) (int, error)
	ListForDate(ctx context.Context, date time.Time) ([]model.Participant, error)
	ListParticipantsInRange(ctx context.Context, from, to time.Time) ([]model.Participant, error)

	Confirm(ctx context.Context, date time.Time, description string, confirmedBy int64) (created bool, err error)
	Unconfirm(ctx context.Context, date time.Time) (removed bool, err error)
	GetConfirmation(ctx context.Context, date time.Time) (*model.ConfirmedDate, error)
	ListConfirmationsFrom(ctx context.Context, date time.Time) ([]model.ConfirmedDate, error)
}

// Publisher pushes events to all connected viewers.
type Publisher interface {
	Publish(event broadcast.Event)
}

// Notifier runs the post-action hooks. Failures stay inside the notifier.
type Notifier interface {
	RunConfirm(ctx context.Context, date time.Time, description string, confirmedBy string)
	RunUnconfirm(ctx context.Context, date time.Time)
}

// Options carry the tunable policy constants. The display quorum (star
// marker) and the confirmation quorum are deliberately independent.
type Options struct {
	DisplayQuorum int
	ConfirmQuorum int
	WindowDays    int
	Location      *time.Location
}

type Service struct {
	store      Store
	aggregator *Aggregator
	hub        Publisher
	notifier   Notifier

	confirmQuorum int
	windowDays    int
	loc           *time.Location

	now func() time.Time
}

func NewService(store Store, hub Publisher, notifier Notifier, opts Options) *Service {
	if opts.DisplayQuorum <= 0 {
		opts.DisplayQuorum = 3
	}
	if opts.ConfirmQuorum <= 0 {
		opts.ConfirmQuorum = 2
	}
	if opts.WindowDays <= 0 {
		opts.WindowDays = 90
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}

	return &Service{
		store:         store,
		aggregator:    NewAggregator(store, opts.DisplayQuorum),
		hub:           hub,
		notifier:      notifier,
		confirmQuorum: opts.ConfirmQuorum,
		windowDays:    opts.WindowDays,
		loc:           opts.Location,
		now:           time.Now,
	}
}

func (s *Service) today() time.Time {
	return dateOf(s.now(), s.loc)
}

// ToggleResult is what the actor gets back from a toggle: their own new
// status (nil when the entry was removed) and the fresh view everyone else
// receives over the broadcast channel.
type ToggleResult struct {
	Date      string
	NewStatus *model.Status
	View      model.DateView
}

// ToggleAvailability advances the caller's availability for a date and
// broadcasts the updated view. Steps run strictly in order: validate,
// mutate, aggregate, publish.
func (s *Service) ToggleAvailability(ctx context.Context, user model.User, dateStr string) (*ToggleResult, error) {
	date, err := ParseDate(dateStr)
	if err != nil {
		return nil, err
	}
	if date.Before(s.today()) {
		return nil, fmt.Errorf("%w: %s", ErrPastDate, dateStr)
	}

	status, err := s.store.ToggleAvailability(ctx, user.ID, date)
	if err != nil {
		return nil, err
	}

	view, err := s.aggregator.BuildView(ctx, date)
	if err != nil {
		return nil, err
	}

	s.hub.Publish(broadcast.NewAvailabilityChanged(dateStr, view))

	return &ToggleResult{
		Date:      dateStr,
		NewStatus: status,
		View:      view,
	}, nil
}

// ReadAllAvailability returns views for the forward window starting today.
// Read-only: never mutates, never broadcasts.
func (s *Service) ReadAllAvailability(ctx context.Context) (map[string]model.DateView, error) {
	from := s.today()
	to := from.AddDate(0, 0, s.windowDays)
	return s.aggregator.BuildViewsInRange(ctx, from, to)
}

type ConfirmResult struct {
	Created      bool
	Confirmation model.ConfirmedDate
}

// ConfirmDate confirms a date once the confirmation quorum is met. All
// validation happens before the write; the broadcast and the hooks follow
// it. Hook failures are contained by the notifier and never fail the
// request.
func (s *Service) ConfirmDate(ctx context.Context, user model.User, dateStr string, description string) (*ConfirmResult, error) {
	date, err := ParseDate(dateStr)
	if err != nil {
		return nil, err
	}
	if date.Before(s.today()) {
		return nil, fmt.Errorf("%w: %s", ErrPastDate, dateStr)
	}

	// The count is read as of now; a date that later drops below quorum
	// stays confirmed.
	count, err := s.store.CountForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if count < s.confirmQuorum {
		return nil, fmt.Errorf("%w: %d of %d", ErrInsufficientAvailability, count, s.confirmQuorum)
	}

	created, err := s.store.Confirm(ctx, date, description, user.ID)
	if err != nil {
		return nil, err
	}

	confirmation, err := s.store.GetConfirmation(ctx, date)
	if err != nil {
		return nil, err
	}
	if confirmation == nil {
		return nil, fmt.Errorf("confirmation for %s vanished after write", dateStr)
	}

	s.hub.Publish(broadcast.NewConfirmationChanged(dateStr, true, description, confirmation.ConfirmedBy))
	s.notifier.RunConfirm(ctx, date, description, confirmation.ConfirmedBy)

	return &ConfirmResult{
		Created:      created,
		Confirmation: *confirmation,
	}, nil
}

// UnconfirmDate removes the confirmation for a date. Removing a date that
// was never confirmed is a no-op success; broadcast and hooks only fire
// when a record was actually removed.
func (s *Service) UnconfirmDate(ctx context.Context, user model.User, dateStr string) (bool, error) {
	date, err := ParseDate(dateStr)
	if err != nil {
		return false, err
	}

	removed, err := s.store.Unconfirm(ctx, date)
	if err != nil {
		return false, err
	}

	if removed {
		s.hub.Publish(broadcast.NewConfirmationChanged(dateStr, false, "", ""))
		s.notifier.RunUnconfirm(ctx, date)
	}

	return removed, nil
}

// ListConfirmed returns the confirmed dates from today on, ascending.
func (s *Service) ListConfirmed(ctx context.Context) ([]model.ConfirmedDate, error) {
	return s.store.ListConfirmationsFrom(ctx, s.today())
}
