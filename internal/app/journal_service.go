package app

import (
	"context"
	"log/slog"

	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/domain"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/ports"
)

// JournalServiceConfig contains configuration for the journal service.
type JournalServiceConfig struct {
	// Store persists journal entries. Nil means the journal is not
	// configured; requests then fail with domain.ErrNotConfigured.
	Store ports.JournalStore

	// Logger is the structured logger.
	Logger *slog.Logger
}

// JournalService manages the reader's saved quotes.
type JournalService struct {
	store  ports.JournalStore
	logger *slog.Logger
}

// NewJournalService creates a journal service. A nil Store is accepted.
func NewJournalService(cfg JournalServiceConfig) *JournalService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &JournalService{
		store:  cfg.Store,
		logger: logger.With(slog.String("component", "app.JournalService")),
	}
}

// List returns saved entries, newest first.
func (s *JournalService) List(ctx context.Context, q ports.JournalQuery) ([]domain.JournalEntry, error) {
	if err := s.requireStore(); err != nil {
		return nil, err
	}

	return s.store.List(ctx, q)
}

// Save persists a quote and returns the stored entry.
func (s *JournalService) Save(ctx context.Context, quote domain.Quote) (*domain.JournalEntry, error) {
	if err := s.requireStore(); err != nil {
		return nil, err
	}

	if !quote.Valid() {
		return nil, domain.NewValidationError("quote", "both quote and author are required")
	}

	entry, err := s.store.Save(ctx, quote)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "journal entry saved",
		slog.String("entry_id", entry.ID),
		slog.String("author", entry.Quote.Author),
	)

	return entry, nil
}

// Remove deletes an entry by identifier. Malformed identifiers are
// rejected before the store is touched.
func (s *JournalService) Remove(ctx context.Context, id string) error {
	if err := s.requireStore(); err != nil {
		return err
	}

	if !domain.ValidEntryID(id) {
		return domain.NewValidationError("id", "must be a 24-character hex string")
	}

	if err := s.store.Remove(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "journal entry removed", slog.String("entry_id", id))

	return nil
}

func (s *JournalService) requireStore() error {
	if s.store == nil {
		return domain.NewNotConfiguredError("journal", "MONGODB_URI is not set")
	}

	return nil
}
