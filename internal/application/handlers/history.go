package handlers

import (
	"context"

	"github.com/aldermoor/weatherlog/internal/domain/records"
	"github.com/aldermoor/weatherlog/internal/domain/services"
)

// HistoryHandler orchestrates the record lifecycle: listing, saving, inline
// editing, confirmed deletion and export.
type HistoryHandler struct {
	store     *services.HistoryStore
	edits     *services.EditManager
	confirmer *services.DeleteConfirmer
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(store *services.HistoryStore, edits *services.EditManager, confirmer *services.DeleteConfirmer) *HistoryHandler {
	return &HistoryHandler{
		store:     store,
		edits:     edits,
		confirmer: confirmer,
	}
}

// HandleList fetches the current record collection.
func (h *HistoryHandler) HandleList(ctx context.Context) ([]records.Record, error) {
	return h.store.List(ctx)
}

// HandleSave persists a completed weather query as a new history record.
func (h *HistoryHandler) HandleSave(ctx context.Context, snap *records.Snapshot, startDate, endDate string) (*records.Record, error) {
	return h.store.Create(ctx, snap, startDate, endDate)
}

// EditChanges carries the field changes to buffer on the draft. Nil fields
// keep the record's current value.
type EditChanges struct {
	Note      *string
	StartDate *string
	EndDate   *string
}

// HandleEdit runs an edit session for a record: enter editing, buffer the
// requested changes on the draft, then commit. The record must exist in the
// store's collection.
func (h *HistoryHandler) HandleEdit(ctx context.Context, id string, changes EditChanges) (*records.Record, error) {
	recs, err := h.store.List(ctx)
	if err != nil {
		return nil, err
	}

	var target *records.Record
	for i := range recs {
		if recs[i].ID == id {
			target = &recs[i]
			break
		}
	}
	if target == nil {
		return nil, records.ErrNotFound
	}

	h.edits.StartEdit(*target)
	if changes.Note != nil {
		if err := h.edits.SetNote(*changes.Note); err != nil {
			return nil, err
		}
	}
	if changes.StartDate != nil {
		if err := h.edits.SetStartDate(*changes.StartDate); err != nil {
			return nil, err
		}
	}
	if changes.EndDate != nil {
		if err := h.edits.SetEndDate(*changes.EndDate); err != nil {
			return nil, err
		}
	}

	updated, err := h.edits.Commit(ctx)
	if err != nil {
		// Abandon the draft: the CLI session ends here and a stale draft
		// must not leak into the next command.
		h.edits.Cancel()
		return nil, err
	}
	return updated, nil
}

// HandleRequestDelete advances the two-step delete confirmation for id.
func (h *HistoryHandler) HandleRequestDelete(ctx context.Context, id string) (services.DeleteOutcome, error) {
	return h.confirmer.RequestDelete(ctx, id)
}

// HandleCancelDelete clears any pending delete confirmation.
func (h *HistoryHandler) HandleCancelDelete() {
	h.confirmer.Cancel()
}

// HandleExport refreshes the collection and renders it into the requested
// format. The serializer performs no I/O; the caller writes the artifact.
func (h *HistoryHandler) HandleExport(ctx context.Context, format services.Format) (*services.Artifact, error) {
	recs, err := h.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return services.Render(recs, format)
}
