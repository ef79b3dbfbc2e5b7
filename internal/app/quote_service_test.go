package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/domain"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/mocks"
)

func newTestQuoteService(provider *mocks.MockQuoteProvider, cache *QuoteCache) *QuoteService {
	s := NewQuoteService(QuoteServiceConfig{
		Provider:  provider,
		Cache:     cache,
		BatchSize: 50,
		CacheTTL:  2 * time.Hour,
	})
	s.randIndex = func(int) int { return 0 }

	return s
}

func TestGetQuote_FreshCacheSkipsProvider(t *testing.T) {
	provider := new(mocks.MockQuoteProvider)

	cache := NewQuoteCache()
	cache.Replace([]domain.Quote{{Text: "cached", Author: "someone"}})

	s := newTestQuoteService(provider, cache)

	quote, source, size := s.GetQuote(context.Background())
	assert.Equal(t, "cached", quote.Text)
	assert.Equal(t, domain.SourceCollection, source)
	assert.Equal(t, 1, size)
	provider.AssertNotCalled(t, "FetchQuotes", mock.Anything, mock.Anything)
}

func TestGetQuote_FetchesWhenCacheEmpty(t *testing.T) {
	batch := []domain.Quote{
		{Text: "fresh", Author: "provider"},
		{Text: "another", Author: "provider"},
	}

	provider := new(mocks.MockQuoteProvider)
	provider.On("FetchQuotes", mock.Anything, 50).Return(batch, nil)

	cache := NewQuoteCache()
	s := newTestQuoteService(provider, cache)

	quote, source, size := s.GetQuote(context.Background())
	assert.Equal(t, "fresh", quote.Text)
	assert.Equal(t, domain.SourceAPI, source)
	assert.Equal(t, 2, size)
	assert.True(t, cache.Fresh(2*time.Hour))
}

func TestGetQuote_StaleCacheBeatsStaticTable(t *testing.T) {
	provider := new(mocks.MockQuoteProvider)
	provider.On("FetchQuotes", mock.Anything, 50).
		Return(nil, domain.NewUnavailableError("zen-quotes", "down"))

	now := time.Now()
	cache := NewQuoteCache()
	cache.now = func() time.Time { return now }
	cache.Replace([]domain.Quote{{Text: "stale", Author: "someone"}})
	cache.now = func() time.Time { return now.Add(3 * time.Hour) }

	s := newTestQuoteService(provider, cache)

	quote, source, _ := s.GetQuote(context.Background())
	assert.Equal(t, "stale", quote.Text)
	assert.Equal(t, domain.SourceCollection, source)
	provider.AssertExpectations(t)
}

func TestGetQuote_RateLimitedFallsToStaticTable(t *testing.T) {
	provider := new(mocks.MockQuoteProvider)
	provider.On("FetchQuotes", mock.Anything, 50).
		Return(nil, domain.NewRateLimitedError("zen-quotes"))

	s := newTestQuoteService(provider, NewQuoteCache())

	quote, source, size := s.GetQuote(context.Background())
	assert.Equal(t, domain.FallbackQuotes[0], quote)
	assert.Equal(t, domain.SourceFallbackRateLimited, source)
	assert.Equal(t, 0, size)
}

func TestGetQuote_ProviderErrorFallsToStaticTable(t *testing.T) {
	provider := new(mocks.MockQuoteProvider)
	provider.On("FetchQuotes", mock.Anything, 50).
		Return(nil, domain.NewUnavailableError("zen-quotes", "boom"))

	s := newTestQuoteService(provider, NewQuoteCache())

	_, source, _ := s.GetQuote(context.Background())
	assert.Equal(t, domain.SourceFallbackAPIError, source)
}

func TestGetQuote_EmptyBatchCountsAsAPIError(t *testing.T) {
	provider := new(mocks.MockQuoteProvider)
	provider.On("FetchQuotes", mock.Anything, 50).Return([]domain.Quote{}, nil)

	s := newTestQuoteService(provider, NewQuoteCache())

	_, source, _ := s.GetQuote(context.Background())
	assert.Equal(t, domain.SourceFallbackAPIError, source)
}

func TestGetQuote_RecoversFromPanic(t *testing.T) {
	provider := new(mocks.MockQuoteProvider)
	provider.On("FetchQuotes", mock.Anything, 50).
		Run(func(mock.Arguments) { panic("unexpected") }).
		Return(nil, nil)

	s := newTestQuoteService(provider, NewQuoteCache())

	quote, source, _ := s.GetQuote(context.Background())
	assert.Equal(t, domain.SourceFallbackError, source)
	assert.True(t, quote.Valid())
}
