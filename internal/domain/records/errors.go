package records

import "errors"

// Validation errors. These block the originating action locally and are never
// sent to the persistence service.
var (
	ErrNoteTooLong   = errors.New("note exceeds 60 characters")
	ErrEmptyLocation = errors.New("location must not be empty")
)

// Store errors. Transport and collaborator failures surface as one of these;
// every operation remains retryable by repeating the user action.
var (
	ErrStoreUnavailable = errors.New("history service unavailable")
	ErrSaveFailed       = errors.New("saving record failed")
	ErrUpdateFailed     = errors.New("updating record failed")
	ErrDeleteFailed     = errors.New("deleting record failed")
	ErrNotFound         = errors.New("record not found")
)

// ErrLocationNotFound is returned by the weather provider when a free-text
// location cannot be geocoded.
var ErrLocationNotFound = errors.New("location not found")
