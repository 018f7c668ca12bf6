package handlers

import (
	"context"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aldermoor/weatherlog/internal/domain/daterange"
	"github.com/aldermoor/weatherlog/internal/domain/mocks"
	"github.com/aldermoor/weatherlog/internal/domain/records"
)

func newQueryFixture() (*QueryHandler, *mocks.WeatherProvider) {
	provider := &mocks.WeatherProvider{
		Snapshot: &records.Snapshot{
			Location: "Paris, France",
			Current:  &records.Current{Temperature: 18.4, WeatherCode: 61},
		},
	}
	return NewQueryHandler(provider, clockwork.NewFakeClockAt(handlerNow)), provider
}

func TestHandleQuery(t *testing.T) {
	h, provider := newQueryFixture()

	snap, err := h.HandleQuery(context.Background(), "Paris", "celsius", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Paris, France", snap.Location)
	assert.Equal(t, 1, provider.CurrentCalls)
}

func TestHandleQueryRejectsBadRangeBeforeFetching(t *testing.T) {
	h, provider := newQueryFixture()

	_, err := h.HandleQuery(context.Background(), "Paris", "celsius", "2024-05-20", "2024-05-10")
	require.ErrorIs(t, err, daterange.ErrStartAfterEnd)
	assert.Zero(t, provider.CurrentCalls)

	_, err = h.HandleQuery(context.Background(), "Paris", "celsius", "2023-01-01", "2023-01-02")
	require.ErrorIs(t, err, daterange.ErrOutOfWindow)
	assert.Zero(t, provider.CurrentCalls)
}

func TestHandleQueryToleratesSingleBound(t *testing.T) {
	// The search form is permissive: a lone bound is not an error here.
	h, provider := newQueryFixture()

	_, err := h.HandleQuery(context.Background(), "Paris", "celsius", "2024-05-15", "")
	require.NoError(t, err)
	assert.Equal(t, 1, provider.CurrentCalls)
}

func TestHandleCoordinates(t *testing.T) {
	h, provider := newQueryFixture()

	snap, err := h.HandleCoordinates(context.Background(), 48.85, 2.35, "celsius")
	require.NoError(t, err)
	assert.NotNil(t, snap)
	assert.Equal(t, 1, provider.CoordinatesCalls)
}

func TestHandleQuerySurfacesProviderErrors(t *testing.T) {
	h, provider := newQueryFixture()
	provider.Err = records.ErrLocationNotFound

	_, err := h.HandleQuery(context.Background(), "Nowhereville", "celsius", "", "")
	assert.ErrorIs(t, err, records.ErrLocationNotFound)
}
