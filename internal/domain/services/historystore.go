// Package services contains the record lifecycle services built on top of the
// domain ports.
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/aldermoor/weatherlog/internal/domain/daterange"
	"github.com/aldermoor/weatherlog/internal/domain/ports"
	"github.com/aldermoor/weatherlog/internal/domain/records"
)

// HistoryStore owns the client-side copy of the record collection and is the
// sole writer toward the persistence collaborator. The collaborator is the
// source of truth: after any mutation the cached snapshot is refreshed by
// re-listing, never mutated optimistically, so server-side defaulting (ids,
// timestamps) can't drift out of the cache.
type HistoryStore struct {
	api   ports.HistoryAPI
	clock clockwork.Clock

	mu     sync.Mutex
	cached []records.Record
}

// NewHistoryStore creates a HistoryStore backed by the given collaborator.
func NewHistoryStore(api ports.HistoryAPI, clock clockwork.Clock) *HistoryStore {
	return &HistoryStore{
		api:   api,
		clock: clock,
	}
}

// List fetches the full collection from the collaborator and refreshes the
// cached snapshot. There is no internal retry: the caller repeats the action.
func (s *HistoryStore) List(ctx context.Context) ([]records.Record, error) {
	recs, err := s.api.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", records.ErrStoreUnavailable, err)
	}

	s.mu.Lock()
	s.cached = recs
	s.mu.Unlock()

	return recs, nil
}

// Cached returns a copy of the last listed collection without touching the
// network. A stale copy is acceptable; it self-corrects on the next List.
func (s *HistoryStore) Cached() []records.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]records.Record, len(s.cached))
	copy(out, s.cached)
	return out
}

// Create flattens a completed weather query into a new record and persists
// it. An empty requested range defaults to today. Validation failures are
// reported locally and never reach the network. Rapid duplicate creates are
// not deduplicated; each produces a distinct record.
func (s *HistoryStore) Create(ctx context.Context, snap *records.Snapshot, startDate, endDate string) (*records.Record, error) {
	if startDate == "" && endDate == "" {
		today := s.clock.Now().UTC().Format(records.DateLayout)
		startDate, endDate = today, today
	}

	window := daterange.ComputeWindow(s.clock.Now())
	if err := daterange.ValidatePair(startDate, endDate, window); err != nil {
		return nil, err
	}

	rec := records.NewRecord{
		Location:    snap.Location,
		Temperature: snap.LeadTemperature(),
		Description: strconv.Itoa(snap.LeadWeatherCode()),
		StartDate:   startDate,
		EndDate:     endDate,
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	created, err := s.api.Create(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", records.ErrSaveFailed, err)
	}

	s.refresh(ctx)
	return created, nil
}

// Update applies a partial update to a record's editable fields. The note
// cap and the both-or-neither date invariant are enforced here before any
// network call.
func (s *HistoryStore) Update(ctx context.Context, id string, upd records.Update) (*records.Record, error) {
	if upd.Note != nil {
		if err := records.ValidateNote(*upd.Note); err != nil {
			return nil, err
		}
	}
	if upd.StartDate != nil || upd.EndDate != nil {
		start, end := deref(upd.StartDate), deref(upd.EndDate)
		window := daterange.ComputeWindow(s.clock.Now())
		if err := daterange.ValidatePair(start, end, window); err != nil {
			return nil, err
		}
	}

	updated, err := s.api.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, records.ErrNotFound) {
			return nil, records.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", records.ErrUpdateFailed, err)
	}

	s.refresh(ctx)
	return updated, nil
}

// Remove deletes a record. Deleting an already-removed id surfaces
// records.ErrNotFound rather than failing hard.
func (s *HistoryStore) Remove(ctx context.Context, id string) error {
	if err := s.api.Delete(ctx, id); err != nil {
		if errors.Is(err, records.ErrNotFound) {
			return records.ErrNotFound
		}
		return fmt.Errorf("%w: %v", records.ErrDeleteFailed, err)
	}

	s.refresh(ctx)
	return nil
}

// Restore persists previously exported records. The query window does not
// apply here: restored records keep their historical date bounds. Partial
// date pairs are corrected defensively by clearing both bounds, and records
// failing validation are skipped rather than aborting the whole restore.
func (s *HistoryStore) Restore(ctx context.Context, recs []records.NewRecord) (saved, skipped int, err error) {
	for _, rec := range recs {
		if (rec.StartDate == "") != (rec.EndDate == "") {
			rec.StartDate, rec.EndDate = "", ""
		}
		if rec.Validate() != nil {
			skipped++
			continue
		}
		if _, err := s.api.Create(ctx, rec); err != nil {
			return saved, skipped, fmt.Errorf("%w: %v", records.ErrSaveFailed, err)
		}
		saved++
	}

	s.refresh(ctx)
	return saved, skipped, nil
}

// refresh re-lists after a mutation. A failed refresh leaves the stale cache
// in place; the next successful List corrects it.
func (s *HistoryStore) refresh(ctx context.Context) {
	_, _ = s.List(ctx)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
