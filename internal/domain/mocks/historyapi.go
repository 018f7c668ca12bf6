// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/aldermoor/weatherlog/internal/domain/records"
)

// HistoryAPI is an in-memory mock of ports.HistoryAPI. Records live in a
// slice in insertion order (newest first, like the real service). Errors can
// be forced per operation, and calls are counted.
type HistoryAPI struct {
	mu      sync.Mutex
	Records []records.Record
	nextID  int

	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error

	ListCalls   int
	CreateCalls int
	UpdateCalls int
	DeleteCalls int
}

// List returns the configured records or error.
func (m *HistoryAPI) List(_ context.Context) ([]records.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ListCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]records.Record, len(m.Records))
	copy(out, m.Records)
	return out, nil
}

// Create assigns an id and timestamp like the real service and prepends the
// record.
func (m *HistoryAPI) Create(_ context.Context, rec records.NewRecord) (*records.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls++
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	m.nextID++
	created := records.Record{
		ID:          "rec-" + strconv.Itoa(m.nextID),
		Location:    rec.Location,
		Temperature: rec.Temperature,
		Description: rec.Description,
		StartDate:   rec.StartDate,
		EndDate:     rec.EndDate,
		Note:        rec.Note,
		Timestamp:   time.Now().UTC(),
	}
	m.Records = append([]records.Record{created}, m.Records...)
	return &created, nil
}

// Update applies the partial update or returns records.ErrNotFound.
func (m *HistoryAPI) Update(_ context.Context, id string, upd records.Update) (*records.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpdateCalls++
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	for i := range m.Records {
		if m.Records[i].ID != id {
			continue
		}
		if upd.Note != nil {
			m.Records[i].Note = *upd.Note
		}
		if upd.StartDate != nil {
			m.Records[i].StartDate = *upd.StartDate
		}
		if upd.EndDate != nil {
			m.Records[i].EndDate = *upd.EndDate
		}
		rec := m.Records[i]
		return &rec, nil
	}
	return nil, records.ErrNotFound
}

// Delete removes the record or returns records.ErrNotFound.
func (m *HistoryAPI) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteCalls++
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	for i := range m.Records {
		if m.Records[i].ID == id {
			m.Records = append(m.Records[:i], m.Records[i+1:]...)
			return nil
		}
	}
	return records.ErrNotFound
}

// Find returns the stored record with the given id, if present.
func (m *HistoryAPI) Find(id string) (records.Record, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.Records {
		if r.ID == id {
			return r, true
		}
	}
	return records.Record{}, false
}
