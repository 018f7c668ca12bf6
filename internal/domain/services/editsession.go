package services

import (
	"context"
	"errors"
	"sync"

	"github.com/aldermoor/weatherlog/internal/domain/records"
)

// ErrNoActiveEdit is returned when a draft operation runs without a session.
var ErrNoActiveEdit = errors.New("no record is being edited")

// Draft is an uncommitted value copy of a record's editable fields. Mutations
// are invisible to other readers of the record until commit.
type Draft struct {
	RecordID  string
	Note      string
	StartDate string
	EndDate   string
}

// EditManager governs the per-record edit session. At most one record may be
// in the editing state at a time; starting a new edit implicitly discards the
// previous draft (last writer wins on session switch, drafts are never
// merged). The manager holds the session state explicitly rather than leaving
// it as ambient globals.
type EditManager struct {
	store *HistoryStore

	mu    sync.Mutex
	draft *Draft
	base  Draft
}

// NewEditManager creates an EditManager committing through the given store.
func NewEditManager(store *HistoryStore) *EditManager {
	return &EditManager{store: store}
}

// StartEdit enters the editing state for a record, snapshotting its editable
// fields into a fresh draft. Any active draft for another record is discarded
// without a store call.
func (m *EditManager) StartEdit(rec records.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.base = Draft{
		RecordID:  rec.ID,
		Note:      rec.Note,
		StartDate: rec.StartDate,
		EndDate:   rec.EndDate,
	}
	draft := m.base
	m.draft = &draft
}

// ActiveID returns the id of the record being edited, if any.
func (m *EditManager) ActiveID() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.draft == nil {
		return "", false
	}
	return m.draft.RecordID, true
}

// Draft returns a copy of the active draft, if any.
func (m *EditManager) Draft() (Draft, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.draft == nil {
		return Draft{}, false
	}
	return *m.draft, true
}

// SetNote buffers a note change on the draft.
func (m *EditManager) SetNote(note string) error {
	return m.mutate(func(d *Draft) { d.Note = note })
}

// SetStartDate buffers a start-date change on the draft.
func (m *EditManager) SetStartDate(date string) error {
	return m.mutate(func(d *Draft) { d.StartDate = date })
}

// SetEndDate buffers an end-date change on the draft.
func (m *EditManager) SetEndDate(date string) error {
	return m.mutate(func(d *Draft) { d.EndDate = date })
}

func (m *EditManager) mutate(fn func(*Draft)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.draft == nil {
		return ErrNoActiveEdit
	}
	fn(m.draft)
	return nil
}

// Commit validates the draft locally and, only when valid, delegates the
// update to the store and returns to the viewing state. On failure the draft
// is kept so the action can be corrected or retried; no partial application
// happens.
func (m *EditManager) Commit(ctx context.Context) (*records.Record, error) {
	m.mu.Lock()
	if m.draft == nil {
		m.mu.Unlock()
		return nil, ErrNoActiveEdit
	}
	draft := *m.draft
	base := m.base
	m.mu.Unlock()

	// Only fields the draft actually touched go into the update. Untouched
	// stored dates in particular must not be re-validated against the current
	// window: a note edit on an aged record stays legal.
	upd := records.Update{}
	if draft.Note != base.Note {
		if err := records.ValidateNote(draft.Note); err != nil {
			return nil, err
		}
		upd.Note = &draft.Note
	}
	if draft.StartDate != base.StartDate || draft.EndDate != base.EndDate {
		// Date bounds travel as a pair so the both-or-neither invariant is
		// checked against the full effective range.
		upd.StartDate = &draft.StartDate
		upd.EndDate = &draft.EndDate
	}

	updated, err := m.store.Update(ctx, draft.RecordID, upd)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	// Clear only if no newer session replaced this one while the update was
	// in flight.
	if m.draft != nil && m.draft.RecordID == draft.RecordID {
		m.draft = nil
	}
	m.mu.Unlock()

	return updated, nil
}

// Cancel discards the active draft without a store call.
func (m *EditManager) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.draft = nil
}
