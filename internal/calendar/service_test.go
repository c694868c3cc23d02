package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Binaergewitter/datefinder/internal/broadcast"
	"github.com/Binaergewitter/datefinder/internal/model"
)

// fakeStore is an in-memory Store keyed by ISO date string. Toggle order is
// preserved so view ordering matches the real provider.
type fakeStore struct {
	availability  map[string][]model.Participant
	confirmations map[string]model.ConfirmedDate

	err error
}

var _ Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		availability:  make(map[string][]model.Participant),
		confirmations: make(map[string]model.ConfirmedDate),
	}
}

func (f *fakeStore) ToggleAvailability(_ context.Context, userID int64, date time.Time) (*model.Status, error) {
	if f.err != nil {
		return nil, f.err
	}
	day := date.Format(ISODate)
	entries := f.availability[day]
	for i, p := range entries {
		if p.UserID != userID {
			continue
		}
		if p.Status == model.StatusAvailable {
			entries[i].Status = model.StatusTentative
			status := model.StatusTentative
			return &status, nil
		}
		f.availability[day] = append(entries[:i], entries[i+1:]...)
		return nil, nil
	}
	f.availability[day] = append(entries, model.Participant{
		Date:   day,
		UserID: userID,
		Status: model.StatusAvailable,
	})
	status := model.StatusAvailable
	return &status, nil
}

func (f *fakeStore) CountForDate(_ context.Context, date time.Time) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return len(f.availability[date.Format(ISODate)]), nil
}

func (f *fakeStore) ListForDate(_ context.Context, date time.Time) ([]model.Participant, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.availability[date.Format(ISODate)], nil
}

func (f *fakeStore) ListParticipantsInRange(_ context.Context, from, to time.Time) ([]model.Participant, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Participant
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		out = append(out, f.availability[day.Format(ISODate)]...)
	}
	return out, nil
}

func (f *fakeStore) Confirm(_ context.Context, date time.Time, description string, confirmedBy int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	day := date.Format(ISODate)
	existing, ok := f.confirmations[day]
	entry := model.ConfirmedDate{
		Date:        day,
		Description: description,
		ConfirmedBy: "alice",
		CreatedAt:   time.Now(),
	}
	if ok {
		entry.CreatedAt = existing.CreatedAt
	}
	f.confirmations[day] = entry
	return !ok, nil
}

func (f *fakeStore) Unconfirm(_ context.Context, date time.Time) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	day := date.Format(ISODate)
	_, ok := f.confirmations[day]
	delete(f.confirmations, day)
	return ok, nil
}

func (f *fakeStore) GetConfirmation(_ context.Context, date time.Time) (*model.ConfirmedDate, error) {
	if f.err != nil {
		return nil, f.err
	}
	entry, ok := f.confirmations[date.Format(ISODate)]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}

func (f *fakeStore) ListConfirmationsFrom(_ context.Context, date time.Time) ([]model.ConfirmedDate, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []model.ConfirmedDate
	for day, entry := range f.confirmations {
		if day >= date.Format(ISODate) {
			out = append(out, entry)
		}
	}
	return out, nil
}

type fakePublisher struct {
	events []broadcast.Event
}

func (f *fakePublisher) Publish(event broadcast.Event) {
	f.events = append(f.events, event)
}

type fakeNotifier struct {
	confirms   []string
	unconfirms []string
}

func (f *fakeNotifier) RunConfirm(_ context.Context, date time.Time, _ string, _ string) {
	f.confirms = append(f.confirms, date.Format(ISODate))
}

func (f *fakeNotifier) RunUnconfirm(_ context.Context, date time.Time) {
	f.unconfirms = append(f.unconfirms, date.Format(ISODate))
}

var (
	_ Publisher = (*fakePublisher)(nil)
	_ Notifier  = (*fakeNotifier)(nil)

	testToday = time.Date(2030, 6, 10, 9, 30, 0, 0, time.UTC)
	alice     = model.User{ID: 1, Username: "alice"}
	bob       = model.User{ID: 2, Username: "bob"}
	carol     = model.User{ID: 3, Username: "carol"}
)

func newTestService(t *testing.T, opts Options) (*Service, *fakeStore, *fakePublisher, *fakeNotifier) {
	t.Helper()

	store := newFakeStore()
	hub := &fakePublisher{}
	notifier := &fakeNotifier{}

	svc := NewService(store, hub, notifier, opts)
	svc.now = func() time.Time { return testToday }

	return svc, store, hub, notifier
}

func TestToggleAvailability_CycleAndBroadcast(t *testing.T) {
	svc, _, hub, _ := newTestService(t, Options{})
	ctx := context.Background()

	result, err := svc.ToggleAvailability(ctx, alice, "2030-06-15")
	require.NoError(t, err)
	require.NotNil(t, result.NewStatus)
	assert.Equal(t, model.StatusAvailable, *result.NewStatus)
	assert.Len(t, result.View.Availability, 1)

	result, err = svc.ToggleAvailability(ctx, alice, "2030-06-15")
	require.NoError(t, err)
	require.NotNil(t, result.NewStatus)
	assert.Equal(t, model.StatusTentative, *result.NewStatus)

	result, err = svc.ToggleAvailability(ctx, alice, "2030-06-15")
	require.NoError(t, err)
	assert.Nil(t, result.NewStatus)
	assert.Empty(t, result.View.Availability)

	// Every toggle broadcasts the fresh view
	require.Len(t, hub.events, 3)
	event, ok := hub.events[2].(broadcast.AvailabilityChanged)
	require.True(t, ok)
	assert.Equal(t, "2030-06-15", event.Date)
	assert.Empty(t, event.Availability)
}

func TestToggleAvailability_RejectsPastAndInvalid(t *testing.T) {
	svc, _, hub, _ := newTestService(t, Options{})
	ctx := context.Background()

	_, err := svc.ToggleAvailability(ctx, alice, "2030-06-09")
	require.ErrorIs(t, err, ErrPastDate)

	_, err = svc.ToggleAvailability(ctx, alice, "garbage")
	require.ErrorIs(t, err, ErrInvalidDate)

	// Today itself is allowed
	_, err = svc.ToggleAvailability(ctx, alice, "2030-06-10")
	require.NoError(t, err)

	// Rejected toggles must not broadcast
	assert.Len(t, hub.events, 1)
}

func TestToggleAvailability_DisplayQuorum(t *testing.T) {
	svc, _, hub, _ := newTestService(t, Options{DisplayQuorum: 3})
	ctx := context.Background()

	for _, user := range []model.User{alice, bob} {
		result, err := svc.ToggleAvailability(ctx, user, "2030-06-15")
		require.NoError(t, err)
		assert.False(t, result.View.HasStar)
	}

	result, err := svc.ToggleAvailability(ctx, carol, "2030-06-15")
	require.NoError(t, err)
	assert.True(t, result.View.HasStar)

	// Tentative entries count toward the quorum: toggling carol to
	// tentative keeps three participants
	result, err = svc.ToggleAvailability(ctx, carol, "2030-06-15")
	require.NoError(t, err)
	require.NotNil(t, result.NewStatus)
	assert.Equal(t, model.StatusTentative, *result.NewStatus)
	assert.True(t, result.View.HasStar)

	event, ok := hub.events[len(hub.events)-1].(broadcast.AvailabilityChanged)
	require.True(t, ok)
	assert.True(t, event.HasStar)
}

func TestReadAllAvailability_WindowAndGrouping(t *testing.T) {
	svc, store, _, _ := newTestService(t, Options{WindowDays: 30})
	ctx := context.Background()

	_, err := svc.ToggleAvailability(ctx, alice, "2030-06-15")
	require.NoError(t, err)
	_, err = svc.ToggleAvailability(ctx, bob, "2030-06-15")
	require.NoError(t, err)
	_, err = svc.ToggleAvailability(ctx, alice, "2030-06-20")
	require.NoError(t, err)

	// An entry beyond the window must not appear
	_, err = store.ToggleAvailability(ctx, alice.ID, time.Date(2030, 8, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	views, err := svc.ReadAllAvailability(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Len(t, views["2030-06-15"].Availability, 2)
	assert.Len(t, views["2030-06-20"].Availability, 1)
}

func TestConfirmDate_QuorumEnforced(t *testing.T) {
	svc, _, hub, notifier := newTestService(t, Options{ConfirmQuorum: 2})
	ctx := context.Background()

	_, err := svc.ToggleAvailability(ctx, alice, "2030-06-15")
	require.NoError(t, err)

	_, err = svc.ConfirmDate(ctx, alice, "2030-06-15", "Ep 42")
	require.ErrorIs(t, err, ErrInsufficientAvailability)
	assert.Empty(t, notifier.confirms)

	_, err = svc.ToggleAvailability(ctx, bob, "2030-06-15")
	require.NoError(t, err)

	result, err := svc.ConfirmDate(ctx, alice, "2030-06-15", "Ep 42")
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Equal(t, "Ep 42", result.Confirmation.Description)

	event, ok := hub.events[len(hub.events)-1].(broadcast.ConfirmationChanged)
	require.True(t, ok)
	assert.True(t, event.Confirmed)
	assert.Equal(t, "2030-06-15", event.Date)
	assert.Equal(t, "Ep 42", event.Description)

	require.Equal(t, []string{"2030-06-15"}, notifier.confirms)
}

func TestConfirmDate_Reconfirm(t *testing.T) {
	svc, _, _, notifier := newTestService(t, Options{ConfirmQuorum: 1})
	ctx := context.Background()

	_, err := svc.ToggleAvailability(ctx, alice, "2030-06-15")
	require.NoError(t, err)

	first, err := svc.ConfirmDate(ctx, alice, "2030-06-15", "Ep 42")
	require.NoError(t, err)
	assert.True(t, first.Created)

	second, err := svc.ConfirmDate(ctx, bob, "2030-06-15", "Ep 42, take two")
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, "Ep 42, take two", second.Confirmation.Description)

	// Hooks fire on re-confirm too
	require.Len(t, notifier.confirms, 2)
}

func TestConfirmDate_RejectsPastAndInvalid(t *testing.T) {
	svc, _, _, notifier := newTestService(t, Options{ConfirmQuorum: 1})
	ctx := context.Background()

	_, err := svc.ConfirmDate(ctx, alice, "2029-12-31", "")
	require.ErrorIs(t, err, ErrPastDate)

	_, err = svc.ConfirmDate(ctx, alice, "someday", "")
	require.ErrorIs(t, err, ErrInvalidDate)

	assert.Empty(t, notifier.confirms)
}

func TestUnconfirmDate(t *testing.T) {
	svc, _, hub, notifier := newTestService(t, Options{ConfirmQuorum: 1})
	ctx := context.Background()

	// Unconfirming a never-confirmed date succeeds without broadcast or
	// hooks
	removed, err := svc.UnconfirmDate(ctx, alice, "2030-06-15")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Empty(t, hub.events)
	assert.Empty(t, notifier.unconfirms)

	_, err = svc.ToggleAvailability(ctx, alice, "2030-06-15")
	require.NoError(t, err)
	_, err = svc.ConfirmDate(ctx, alice, "2030-06-15", "Ep 42")
	require.NoError(t, err)

	removed, err = svc.UnconfirmDate(ctx, alice, "2030-06-15")
	require.NoError(t, err)
	assert.True(t, removed)

	event, ok := hub.events[len(hub.events)-1].(broadcast.ConfirmationChanged)
	require.True(t, ok)
	assert.False(t, event.Confirmed)
	require.Equal(t, []string{"2030-06-15"}, notifier.unconfirms)

	// Unconfirm has no past-date guard: stale confirmations can be cleaned
	// up
	_, err = svc.UnconfirmDate(ctx, alice, "2029-12-31")
	require.NoError(t, err)
}

// The whole flow in one pass: three people toggle, the date earns its star,
// gets confirmed at quorum, and unconfirming leaves the availability intact.
func TestFullSchedulingScenario(t *testing.T) {
	svc, _, hub, notifier := newTestService(t, Options{DisplayQuorum: 3, ConfirmQuorum: 2})
	ctx := context.Background()

	var result *ToggleResult
	for _, user := range []model.User{alice, bob, carol} {
		var err error
		result, err = svc.ToggleAvailability(ctx, user, "2030-06-15")
		require.NoError(t, err)
	}
	require.Len(t, result.View.Availability, 3)
	require.True(t, result.View.HasStar)

	confirm, err := svc.ConfirmDate(ctx, alice, "2030-06-15", "Ep 42")
	require.NoError(t, err)
	assert.True(t, confirm.Created)

	confirmed, err := svc.ListConfirmed(ctx)
	require.NoError(t, err)
	require.Len(t, confirmed, 1)

	removed, err := svc.UnconfirmDate(ctx, alice, "2030-06-15")
	require.NoError(t, err)
	assert.True(t, removed)

	// Unconfirming clears the confirmation but not the availability
	confirmed, err = svc.ListConfirmed(ctx)
	require.NoError(t, err)
	assert.Empty(t, confirmed)

	views, err := svc.ReadAllAvailability(ctx)
	require.NoError(t, err)
	assert.Len(t, views["2030-06-15"].Availability, 3)
	assert.True(t, views["2030-06-15"].HasStar)

	// 3 toggles + 1 confirm + 1 unconfirm broadcasts, hooks both ways
	assert.Len(t, hub.events, 5)
	assert.Equal(t, []string{"2030-06-15"}, notifier.confirms)
	assert.Equal(t, []string{"2030-06-15"}, notifier.unconfirms)
}

func TestConfirmDate_SurvivesQuorumDrop(t *testing.T) {
	svc, _, _, _ := newTestService(t, Options{ConfirmQuorum: 2})
	ctx := context.Background()

	for _, user := range []model.User{alice, bob} {
		_, err := svc.ToggleAvailability(ctx, user, "2030-06-15")
		require.NoError(t, err)
	}
	_, err := svc.ConfirmDate(ctx, alice, "2030-06-15", "Ep 42")
	require.NoError(t, err)

	// Bob backs out entirely: available -> tentative -> gone
	_, err = svc.ToggleAvailability(ctx, bob, "2030-06-15")
	require.NoError(t, err)
	_, err = svc.ToggleAvailability(ctx, bob, "2030-06-15")
	require.NoError(t, err)

	confirmed, err := svc.ListConfirmed(ctx)
	require.NoError(t, err)
	require.Len(t, confirmed, 1)
	assert.Equal(t, "2030-06-15", confirmed[0].Date)
}
