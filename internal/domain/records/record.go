// Package records contains core domain data structures for saved weather queries.
package records

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxNoteLen is the maximum length of a record note.
const MaxNoteLen = 60

// DateLayout is the calendar-date layout used for record date bounds.
const DateLayout = "2006-01-02"

// Record is a persisted weather history entry. ID and Timestamp are assigned
// by the persistence service at creation and are immutable afterwards, as are
// Location, Temperature and Description. Only Note and the date bounds may be
// edited.
type Record struct {
	ID          string    `json:"id"`
	Location    string    `json:"location"`
	Temperature float64   `json:"temperature"`
	Description string    `json:"description"`
	StartDate   string    `json:"start_date,omitempty"`
	EndDate     string    `json:"end_date,omitempty"`
	Note        string    `json:"note,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewRecord is the payload for creating a record. The persistence service
// assigns the ID and Timestamp.
type NewRecord struct {
	Location    string  `json:"location"`
	Temperature float64 `json:"temperature"`
	Description string  `json:"description"`
	StartDate   string  `json:"start_date,omitempty"`
	EndDate     string  `json:"end_date,omitempty"`
	Note        string  `json:"note,omitempty"`
}

// Update is a partial update of a record's editable fields. Nil fields are
// left untouched by the persistence service.
type Update struct {
	Note      *string `json:"note,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
}

// ValidateNote checks the note length cap. The cap counts characters, not
// bytes, matching the service-side max=60 rule.
func ValidateNote(note string) error {
	if utf8.RuneCountInString(note) > MaxNoteLen {
		return ErrNoteTooLong
	}
	return nil
}

// Validate checks the invariants a record must satisfy before it is sent to
// the persistence service.
func (n NewRecord) Validate() error {
	if strings.TrimSpace(n.Location) == "" {
		return ErrEmptyLocation
	}
	return ValidateNote(n.Note)
}
