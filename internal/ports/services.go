// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application
// layer to depend on abstractions rather than concrete implementations.
//
// Port design principles:
//   - Context as first parameter for cancellation and deadlines
//   - Return domain types, never external DTOs
//   - Error returns use domain error types (ErrNotFound, ErrUnavailable, ...)
package ports

import (
	"context"

	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/domain"
)

// QuoteProvider fetches a batch of quotes from the external quote service.
type QuoteProvider interface {
	// FetchQuotes retrieves up to limit quotes. Items missing a text or
	// author are discarded during translation, so the returned batch may
	// be smaller than requested or empty.
	// Returns domain.ErrRateLimited when the provider throttles us and
	// domain.ErrUnavailable for other transport or payload failures.
	FetchQuotes(ctx context.Context, limit int) ([]domain.Quote, error)
}

// MoodAnalyzer classifies quote text into a mood/color pair via an
// external completion service.
type MoodAnalyzer interface {
	// AnalyzeMood sends the text for analysis and returns a parsed
	// MoodResult. Parsing is total: any completion that arrives yields a
	// result. Returns domain.ErrUnavailable only when no completion could
	// be obtained at all (both models failed or timed out).
	AnalyzeMood(ctx context.Context, text string) (domain.MoodResult, error)
}

// JournalQuery narrows a journal listing. The zero value lists everything.
type JournalQuery struct {
	// Limit caps the number of entries returned; 0 means no limit.
	Limit int

	// AfterID and AfterSavedAt resume a listing after the given entry.
	// Both must be set together.
	AfterID      string
	AfterSavedAt string
}

// JournalStore persists saved quotes in a document collection.
type JournalStore interface {
	// List returns entries sorted by savedAt descending.
	List(ctx context.Context, q JournalQuery) ([]domain.JournalEntry, error)

	// Save persists a quote, stamping savedAt server-side, and returns
	// the stored entry including its assigned identifier.
	Save(ctx context.Context, quote domain.Quote) (*domain.JournalEntry, error)

	// Remove deletes the entry with the given identifier.
	// Returns domain.ErrNotFound if no entry matched. The identifier is
	// assumed syntactically valid; callers check that before the store
	// is touched.
	Remove(ctx context.Context, id string) error
}

// BiographyClient queries the external encyclopedia API.
type BiographyClient interface {
	// SummaryByTitle fetches structured summary content for an exact
	// article title. Returns domain.ErrNotFound for missing articles or
	// empty extracts.
	SummaryByTitle(ctx context.Context, title string) (*domain.Biography, error)

	// SearchTitle runs a full-text search and returns the top hit's
	// article title. Returns domain.ErrNotFound when nothing matches.
	SearchTitle(ctx context.Context, query string) (string, error)
}
