package ports

import (
	"context"

	"github.com/aldermoor/weatherlog/internal/domain/records"
)

// HistoryAPI is the persistence collaborator: a CRUD resource collection of
// weather history records. It is the source of truth; the client-side store
// never trusts its own cache after a mutation.
type HistoryAPI interface {
	// List fetches the full record collection in display order.
	List(ctx context.Context) ([]records.Record, error)

	// Create persists a new record. The collaborator assigns ID and Timestamp.
	Create(ctx context.Context, rec records.NewRecord) (*records.Record, error)

	// Update applies a partial update to a record's editable fields.
	// Returns records.ErrNotFound when the id no longer exists.
	Update(ctx context.Context, id string, upd records.Update) (*records.Record, error)

	// Delete removes a record. Returns records.ErrNotFound when the id no
	// longer exists.
	Delete(ctx context.Context, id string) error
}
