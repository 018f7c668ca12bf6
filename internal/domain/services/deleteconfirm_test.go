package services

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aldermoor/weatherlog/internal/domain/mocks"
	"github.com/aldermoor/weatherlog/internal/domain/records"
)

// waitForExpiry blocks until the confirmation leaves the pending state. The
// fake clock runs timer callbacks on their own goroutine, so expiry is
// observed, not assumed.
func waitForExpiry(t *testing.T, c *DeleteConfirmer) {
	t.Helper()
	require.Eventually(t, func() bool {
		_, ok := c.PendingID()
		return !ok
	}, time.Second, 5*time.Millisecond, "pending confirmation should expire")
}

func newConfirmerFixture(t *testing.T) (*DeleteConfirmer, *mocks.HistoryAPI, *clockwork.FakeClock, records.Record) {
	t.Helper()
	api := &mocks.HistoryAPI{}
	clock := clockwork.NewFakeClockAt(testNow)
	store := NewHistoryStore(api, clock)
	rec := seedRecord(t, store, api)
	return NewDeleteConfirmer(store, clock), api, clock, rec
}

func TestSecondRequestWithinTimeoutDeletes(t *testing.T) {
	c, api, _, rec := newConfirmerFixture(t)
	ctx := context.Background()

	outcome, err := c.RequestDelete(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, DeletePending, outcome)

	pending, ok := c.PendingID()
	require.True(t, ok)
	assert.Equal(t, rec.ID, pending)

	outcome, err = c.RequestDelete(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, DeleteConfirmed, outcome)
	assert.Empty(t, api.Records, "exactly one record deleted")

	_, ok = c.PendingID()
	assert.False(t, ok, "confirmation returns to idle")
}

func TestTimeoutCancelsWithoutDeleting(t *testing.T) {
	c, api, clock, rec := newConfirmerFixture(t)
	ctx := context.Background()

	_, err := c.RequestDelete(ctx, rec.ID)
	require.NoError(t, err)

	clock.Advance(ConfirmTimeout)
	waitForExpiry(t, c)

	assert.Len(t, api.Records, 1, "timeout takes no action")
	assert.Zero(t, api.DeleteCalls)

	// After expiry the next request starts a fresh confirmation.
	outcome, err := c.RequestDelete(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, DeletePending, outcome)
}

func TestRequestForDifferentIDAbandonsPrior(t *testing.T) {
	api := &mocks.HistoryAPI{}
	clock := clockwork.NewFakeClockAt(testNow)
	store := NewHistoryStore(api, clock)
	a := seedRecord(t, store, api)
	b := seedRecord(t, store, api)
	c := NewDeleteConfirmer(store, clock)
	ctx := context.Background()

	_, err := c.RequestDelete(ctx, a.ID)
	require.NoError(t, err)

	outcome, err := c.RequestDelete(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, DeletePending, outcome)

	// A remains undeleted; only B is pending.
	_, found := api.Find(a.ID)
	assert.True(t, found)
	pending, ok := c.PendingID()
	require.True(t, ok)
	assert.Equal(t, b.ID, pending)
}

func TestSupersededTimerCannotClearNewerPending(t *testing.T) {
	api := &mocks.HistoryAPI{}
	clock := clockwork.NewFakeClockAt(testNow)
	store := NewHistoryStore(api, clock)
	a := seedRecord(t, store, api)
	b := seedRecord(t, store, api)
	c := NewDeleteConfirmer(store, clock)
	ctx := context.Background()

	_, err := c.RequestDelete(ctx, a.ID)
	require.NoError(t, err)

	clock.Advance(2 * time.Second)

	_, err = c.RequestDelete(ctx, b.ID)
	require.NoError(t, err)

	// A's original timer would have fired here; it must not disturb B.
	clock.Advance(1500 * time.Millisecond)
	pending, ok := c.PendingID()
	require.True(t, ok)
	assert.Equal(t, b.ID, pending)

	// B's own timeout still works.
	clock.Advance(ConfirmTimeout)
	waitForExpiry(t, c)
}

func TestConfirmedDeleteOfRemovedIDReturnsNotFound(t *testing.T) {
	c, _, _, rec := newConfirmerFixture(t)
	ctx := context.Background()

	_, err := c.RequestDelete(ctx, rec.ID)
	require.NoError(t, err)
	_, err = c.RequestDelete(ctx, rec.ID)
	require.NoError(t, err)

	// The record is gone; a repeated confirmation sequence surfaces NotFound
	// instead of crashing.
	outcome, err := c.RequestDelete(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, DeletePending, outcome)

	outcome, err = c.RequestDelete(ctx, rec.ID)
	assert.Equal(t, DeleteConfirmed, outcome)
	assert.ErrorIs(t, err, records.ErrNotFound)
}

func TestCancelClearsPending(t *testing.T) {
	c, api, _, rec := newConfirmerFixture(t)

	_, err := c.RequestDelete(context.Background(), rec.ID)
	require.NoError(t, err)

	c.Cancel()
	_, ok := c.PendingID()
	assert.False(t, ok)
	assert.Len(t, api.Records, 1)
}
