package ports

import (
	"context"

	"github.com/aldermoor/weatherlog/internal/domain/records"
)

// RecordDB is the server-side storage behind the history service. It mirrors
// HistoryAPI but owns id and timestamp assignment.
type RecordDB interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the database connection.
	Close() error

	// ListRecords returns all records, newest first.
	ListRecords(ctx context.Context) ([]records.Record, error)

	// CreateRecord inserts a record, assigning its id and UTC timestamp.
	CreateRecord(ctx context.Context, rec records.NewRecord) (*records.Record, error)

	// UpdateRecord applies a partial update. Returns records.ErrNotFound when
	// the id does not exist.
	UpdateRecord(ctx context.Context, id string, upd records.Update) (*records.Record, error)

	// DeleteRecord removes a record. Returns records.ErrNotFound when the id
	// does not exist.
	DeleteRecord(ctx context.Context, id string) error
}
