package services

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// ConfirmTimeout is how long a pending delete confirmation stays armed.
const ConfirmTimeout = 3 * time.Second

// DeleteOutcome reports what a delete request did.
type DeleteOutcome int

const (
	// DeletePending means the request armed the confirmation and no record
	// was removed yet.
	DeletePending DeleteOutcome = iota
	// DeleteConfirmed means the request was the second one for the pending id
	// and the record was removed.
	DeleteConfirmed
)

// DeleteConfirmer is the two-phase confirmation guarding destructive deletes.
// The first request for an id arms a pending confirmation; a second request
// for the same id within ConfirmTimeout performs the removal. The timer is an
// explicitly cancellable handle: a request for a different id abandons the
// prior pending id without deleting it, and a superseded timer can never
// clear a newer pending id.
type DeleteConfirmer struct {
	store   *HistoryStore
	clock   clockwork.Clock
	timeout time.Duration

	mu         sync.Mutex
	pendingID  string
	timer      clockwork.Timer
	generation uint64
}

// NewDeleteConfirmer creates a DeleteConfirmer removing through the given
// store.
func NewDeleteConfirmer(store *HistoryStore, clock clockwork.Clock) *DeleteConfirmer {
	return &DeleteConfirmer{
		store:   store,
		clock:   clock,
		timeout: ConfirmTimeout,
	}
}

// RequestDelete advances the confirmation state machine for id. It returns
// DeleteConfirmed when this request completed the two-step confirmation and
// the record was removed; DeletePending when the confirmation was (re)armed.
// A confirmed delete of an already-removed id surfaces records.ErrNotFound.
func (c *DeleteConfirmer) RequestDelete(ctx context.Context, id string) (DeleteOutcome, error) {
	c.mu.Lock()
	if c.pendingID == id {
		c.disarmLocked()
		c.mu.Unlock()
		return DeleteConfirmed, c.store.Remove(ctx, id)
	}

	c.disarmLocked()
	c.pendingID = id
	c.generation++
	gen := c.generation
	c.timer = c.clock.AfterFunc(c.timeout, func() {
		c.expire(gen)
	})
	c.mu.Unlock()

	return DeletePending, nil
}

// PendingID returns the id currently awaiting confirmation, if any.
func (c *DeleteConfirmer) PendingID() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.pendingID, c.pendingID != ""
}

// Cancel clears any pending confirmation without deleting anything.
func (c *DeleteConfirmer) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.disarmLocked()
}

// expire is the timeout callback. The generation guard drops callbacks from
// timers that were superseded after firing.
func (c *DeleteConfirmer) expire(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return
	}
	c.pendingID = ""
	c.timer = nil
}

func (c *DeleteConfirmer) disarmLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.pendingID = ""
	c.generation++
}
