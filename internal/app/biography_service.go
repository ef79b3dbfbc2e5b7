package app

import (
	"context"
	"log/slog"

	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/domain"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/ports"
)

// BiographyServiceConfig contains configuration for the biography service.
type BiographyServiceConfig struct {
	// Client queries the external encyclopedia API.
	Client ports.BiographyClient

	// Logger is the structured logger.
	Logger *slog.Logger
}

// BiographyService resolves author biographies through ordered lookup
// strategies: direct summary by title, then full-text search followed by
// a summary fetch on the top hit. Lookup never fails; exhausted or broken
// strategies yield a tagged empty result so the caller can render a
// graceful empty state.
type BiographyService struct {
	client ports.BiographyClient
	logger *slog.Logger
}

// NewBiographyService creates a biography service. Panics if Client is nil.
func NewBiographyService(cfg BiographyServiceConfig) *BiographyService {
	if cfg.Client == nil {
		panic("BiographyService: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &BiographyService{
		client: cfg.Client,
		logger: logger.With(slog.String("component", "app.BiographyService")),
	}
}

// Lookup resolves a biography for the given author name. Honorifics are
// stripped before lookup. The result is always usable; Found is false
// when every strategy came up empty or failed.
func (s *BiographyService) Lookup(ctx context.Context, author string) domain.BiographyResult {
	name := domain.NormalizeAuthorName(author)
	if name == "" {
		return domain.BiographyResult{Found: false, Tag: domain.BiographyNotFound}
	}

	var lookupErr error

	bio, err := s.client.SummaryByTitle(ctx, name)
	if err == nil {
		return domain.BiographyResult{Found: true, Tag: domain.BiographyDirect, Biography: bio}
	}

	if !domain.IsNotFound(err) {
		lookupErr = err

		s.logger.WarnContext(ctx, "summary lookup failed",
			slog.String("author", name),
			slog.Any("error", err),
		)
	}

	bio, err = s.lookupViaSearch(ctx, name)
	if err == nil {
		return domain.BiographyResult{Found: true, Tag: domain.BiographyViaSearch, Biography: bio}
	}

	if !domain.IsNotFound(err) {
		lookupErr = err

		s.logger.WarnContext(ctx, "search lookup failed",
			slog.String("author", name),
			slog.Any("error", err),
		)
	}

	tag := domain.BiographyNotFound
	if lookupErr != nil {
		tag = domain.BiographyLookupError
	}

	return domain.BiographyResult{Found: false, Tag: tag}
}

func (s *BiographyService) lookupViaSearch(ctx context.Context, name string) (*domain.Biography, error) {
	title, err := s.client.SearchTitle(ctx, name)
	if err != nil {
		return nil, err
	}

	return s.client.SummaryByTitle(ctx, title)
}
