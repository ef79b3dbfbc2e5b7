package domain

import (
	"regexp"
	"time"
)

// objectIDPattern matches a 24-character hex document identifier.
var objectIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// JournalEntry is a saved quote owned by the document store.
// SavedAt is always stamped server-side; client-supplied timestamps
// are ignored.
type JournalEntry struct {
	// ID is the store-assigned identifier in hex form.
	ID string

	// Quote is the saved quotation.
	Quote Quote

	// SavedAt is when the entry was persisted.
	SavedAt time.Time
}

// ValidEntryID reports whether id is a syntactically valid journal entry
// identifier. Checked before any store access so malformed ids never
// reach the database.
func ValidEntryID(id string) bool {
	return objectIDPattern.MatchString(id)
}
