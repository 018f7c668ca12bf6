package records

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateNoteCountsCharacters(t *testing.T) {
	// 60 two-byte characters: over the cap in bytes, exactly at it in
	// characters.
	note := strings.Repeat("é", MaxNoteLen)
	require.Greater(t, len(note), MaxNoteLen)
	assert.NoError(t, ValidateNote(note))

	assert.ErrorIs(t, ValidateNote(strings.Repeat("é", MaxNoteLen+1)), ErrNoteTooLong)
	assert.ErrorIs(t, ValidateNote(strings.Repeat("x", MaxNoteLen+1)), ErrNoteTooLong)
}

func TestNewRecordValidate(t *testing.T) {
	n := NewRecord{Location: "Paris", Temperature: 18.5, Description: "Clear sky"}
	assert.NoError(t, n.Validate())

	n.Location = "   "
	assert.ErrorIs(t, n.Validate(), ErrEmptyLocation)

	n.Location = "Paris"
	n.Note = strings.Repeat("x", MaxNoteLen+1)
	assert.ErrorIs(t, n.Validate(), ErrNoteTooLong)
}
