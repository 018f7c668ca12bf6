// Package sqlite provides a SQLite implementation of the RecordDB interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/aldermoor/weatherlog/internal/domain/records"
	"github.com/aldermoor/weatherlog/internal/infrastructure/config"
)

// generateUUID returns a new UUID string.
func generateUUID() string {
	return uuid.New().String()
}

// Repository implements ports.RecordDB using SQLite.
type Repository struct {
	db    *sql.DB
	path  string
	clock clockwork.Clock
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig, clock clockwork.Clock) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:    db,
		path:  cfg.Path,
		clock: clock,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS weather_history (
		id TEXT PRIMARY KEY,
		location TEXT NOT NULL,
		temperature REAL NOT NULL,
		description TEXT NOT NULL,
		start_date TEXT,
		end_date TEXT,
		note TEXT,
		timestamp TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_weather_history_timestamp ON weather_history(timestamp);
	`

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// ListRecords returns all records, newest first.
func (r *Repository) ListRecords(ctx context.Context) ([]records.Record, error) {
	query := `
		SELECT id, location, temperature, description, start_date, end_date, note, timestamp
		FROM weather_history
		ORDER BY timestamp DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	var recs []records.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return recs, nil
}

// CreateRecord inserts a record, assigning its id and UTC timestamp.
func (r *Repository) CreateRecord(ctx context.Context, rec records.NewRecord) (*records.Record, error) {
	created := records.Record{
		ID:          generateUUID(),
		Location:    rec.Location,
		Temperature: rec.Temperature,
		Description: rec.Description,
		StartDate:   rec.StartDate,
		EndDate:     rec.EndDate,
		Note:        rec.Note,
		Timestamp:   r.clock.Now().UTC(),
	}

	query := `
		INSERT INTO weather_history (id, location, temperature, description, start_date, end_date, note, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		created.ID,
		created.Location,
		created.Temperature,
		created.Description,
		nullable(created.StartDate),
		nullable(created.EndDate),
		nullable(created.Note),
		created.Timestamp.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting record: %w", err)
	}
	return &created, nil
}

// UpdateRecord applies a partial update to a record's editable fields.
func (r *Repository) UpdateRecord(ctx context.Context, id string, upd records.Update) (*records.Record, error) {
	existing, err := r.getRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Note != nil {
		existing.Note = *upd.Note
	}
	if upd.StartDate != nil {
		existing.StartDate = *upd.StartDate
	}
	if upd.EndDate != nil {
		existing.EndDate = *upd.EndDate
	}

	query := `
		UPDATE weather_history
		SET note = ?, start_date = ?, end_date = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		nullable(existing.Note),
		nullable(existing.StartDate),
		nullable(existing.EndDate),
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return nil, records.ErrNotFound
	}
	return existing, nil
}

// DeleteRecord removes a record.
func (r *Repository) DeleteRecord(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM weather_history WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return records.ErrNotFound
	}
	return nil
}

func (r *Repository) getRecord(ctx context.Context, id string) (*records.Record, error) {
	query := `
		SELECT id, location, temperature, description, start_date, end_date, note, timestamp
		FROM weather_history
		WHERE id = ?
	`
	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, records.ErrNotFound
	}
	return rec, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*records.Record, error) {
	var (
		rec       records.Record
		start     sql.NullString
		end       sql.NullString
		note      sql.NullString
		timestamp string
	)
	err := row.Scan(&rec.ID, &rec.Location, &rec.Temperature, &rec.Description, &start, &end, &note, &timestamp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning record: %w", err)
	}

	rec.StartDate = start.String
	rec.EndDate = end.String
	rec.Note = note.String

	rec.Timestamp, err = time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return nil, fmt.Errorf("parsing record timestamp: %w", err)
	}
	return &rec, nil
}

// nullable maps empty strings to NULL so optional fields stay optional in
// the table.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
