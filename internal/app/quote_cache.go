package app

import (
	"sync"
	"time"

	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/domain"
)

// QuoteCache holds the most recent provider batch in memory. A batch is
// fresh for the configured TTL; a stale batch is still usable as a
// degraded tier when the provider is down.
type QuoteCache struct {
	mu        sync.RWMutex
	quotes    []domain.Quote
	fetchedAt time.Time

	// now is injectable for tests.
	now func() time.Time
}

// NewQuoteCache creates an empty cache.
func NewQuoteCache() *QuoteCache {
	return &QuoteCache{now: time.Now}
}

// Replace swaps in a new batch and stamps the fetch time.
func (c *QuoteCache) Replace(quotes []domain.Quote) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.quotes = make([]domain.Quote, len(quotes))
	copy(c.quotes, quotes)
	c.fetchedAt = c.now()
}

// Fresh reports whether the cached batch is non-empty and younger than ttl.
func (c *QuoteCache) Fresh(ttl time.Duration) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.quotes) > 0 && c.now().Sub(c.fetchedAt) < ttl
}

// Size returns the number of cached quotes.
func (c *QuoteCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.quotes)
}

// Get returns the cached quote at index i modulo the batch size.
// The second return is false when the cache is empty.
func (c *QuoteCache) Get(i int) (domain.Quote, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(c.quotes) == 0 {
		return domain.Quote{}, false
	}

	if i < 0 {
		i = -i
	}

	return c.quotes[i%len(c.quotes)], true
}
