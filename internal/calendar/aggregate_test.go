package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildView_EmptyDate(t *testing.T) {
	aggregator := NewAggregator(newFakeStore(), 3)

	view, err := aggregator.BuildView(context.Background(), time.Date(2030, 6, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, view.Availability)
	assert.False(t, view.HasStar)
}

func TestBuildViewsInRange_GroupsByDateWithQuorum(t *testing.T) {
	store := newFakeStore()
	aggregator := NewAggregator(store, 2)
	ctx := context.Background()

	busy := time.Date(2030, 6, 15, 0, 0, 0, 0, time.UTC)
	quiet := time.Date(2030, 6, 20, 0, 0, 0, 0, time.UTC)

	for _, id := range []int64{1, 2} {
		_, err := store.ToggleAvailability(ctx, id, busy)
		require.NoError(t, err)
	}
	_, err := store.ToggleAvailability(ctx, 1, quiet)
	require.NoError(t, err)

	views, err := aggregator.BuildViewsInRange(ctx, busy, quiet)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.True(t, views["2030-06-15"].HasStar)
	assert.False(t, views["2030-06-20"].HasStar)
	assert.Len(t, views["2030-06-15"].Availability, 2)

	// No entries, no key
	_, ok := views["2030-06-16"]
	assert.False(t, ok)
}
