// Package app contains application services implementing the business
// use cases. Services depend on ports, never on concrete adapters.
package app

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/domain"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/platform/telemetry"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/ports"
)

// QuoteServiceConfig contains configuration for the quote service.
type QuoteServiceConfig struct {
	// Provider fetches quote batches from the external service.
	Provider ports.QuoteProvider

	// Cache holds the most recent batch. Required.
	Cache *QuoteCache

	// BatchSize is how many quotes to request per provider fetch.
	BatchSize int

	// CacheTTL is how long a fetched batch counts as fresh.
	CacheTTL time.Duration

	// Metrics records quote delivery by source tier. Optional.
	Metrics *telemetry.QuoteMetrics

	// Logger is the structured logger.
	Logger *slog.Logger
}

// QuoteService serves quotes through a tiered retrieval chain:
// fresh cache, then a provider fetch, then a stale cache, then the
// static table. GetQuote is total; every failure degrades to a lower
// tier instead of surfacing an error.
type QuoteService struct {
	provider  ports.QuoteProvider
	cache     *QuoteCache
	batchSize int
	cacheTTL  time.Duration
	metrics   *telemetry.QuoteMetrics
	logger    *slog.Logger

	// randIndex is injectable for tests.
	randIndex func(n int) int
}

// NewQuoteService creates a quote service.
// Panics if Provider or Cache is nil.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Provider == nil {
		panic("QuoteService: Provider is required")
	}

	if cfg.Cache == nil {
		panic("QuoteService: Cache is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteService{
		provider:  cfg.Provider,
		cache:     cfg.Cache,
		batchSize: cfg.BatchSize,
		cacheTTL:  cfg.CacheTTL,
		metrics:   cfg.Metrics,
		logger:    logger.With(slog.String("component", "app.QuoteService")),
		randIndex: rand.IntN,
	}
}

// GetQuote returns a quote, the tier that produced it, and the current
// cache size. It never fails: an unexpected panic anywhere in the chain
// is caught and answered from the static table.
func (s *QuoteService) GetQuote(ctx context.Context) (quote domain.Quote, source domain.SourceTag, cacheSize int) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "quote retrieval panicked", slog.Any("panic", r))

			quote = s.staticQuote()
			source = domain.SourceFallbackError
			cacheSize = s.cache.Size()
		}

		s.metrics.RecordQuoteServed(ctx, string(source))
	}()

	quote, source = s.getQuote(ctx)

	return quote, source, s.cache.Size()
}

func (s *QuoteService) getQuote(ctx context.Context) (domain.Quote, domain.SourceTag) {
	if s.cache.Fresh(s.cacheTTL) {
		if q, ok := s.cache.Get(s.randIndex(s.cache.Size())); ok {
			return q, domain.SourceCollection
		}
	}

	batch, err := s.provider.FetchQuotes(ctx, s.batchSize)
	if err == nil && len(batch) > 0 {
		s.cache.Replace(batch)

		return batch[s.randIndex(len(batch))], domain.SourceAPI
	}

	if err != nil {
		s.logger.WarnContext(ctx, "provider fetch failed", slog.Any("error", err))
	} else {
		s.logger.WarnContext(ctx, "provider returned an empty batch")
	}

	// Stale cache beats the static table.
	if q, ok := s.cache.Get(s.randIndex(max(s.cache.Size(), 1))); ok {
		return q, domain.SourceCollection
	}

	if domain.IsRateLimited(err) {
		return s.staticQuote(), domain.SourceFallbackRateLimited
	}

	return s.staticQuote(), domain.SourceFallbackAPIError
}

func (s *QuoteService) staticQuote() domain.Quote {
	return domain.FallbackQuotes[s.randIndex(len(domain.FallbackQuotes))]
}
