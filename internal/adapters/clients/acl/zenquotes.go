package acl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/adapters/clients"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/domain"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/platform/logging"
)

// ZenQuotesClientConfig contains configuration for the quote provider client.
type ZenQuotesClientConfig struct {
	// Client is the HTTP client to use for requests.
	// The client's BaseURL should be set to the provider endpoint.
	Client *clients.Client

	// Logger is the structured logger.
	Logger *slog.Logger
}

// ZenQuotesClient implements ports.QuoteProvider against the ZenQuotes
// batch API. The provider returns a fixed-size batch per call; the limit
// is applied by truncation.
type ZenQuotesClient struct {
	client *clients.Client
	logger *slog.Logger
}

// NewZenQuotesClient creates a new quote provider adapter.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewZenQuotesClient(cfg ZenQuotesClientConfig) *ZenQuotesClient {
	if cfg.Client == nil {
		panic("ZenQuotesClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ZenQuotesClient{
		client: cfg.Client,
		logger: logger,
	}
}

// zenQuoteItem is the external DTO from the provider.
// This is an internal type - never exposed outside the ACL.
type zenQuoteItem struct {
	Q string `json:"q"`
	A string `json:"a"`
}

// FetchQuotes retrieves a batch of quotes from the provider.
// Items missing a text or author are dropped during translation, so the
// returned batch may be smaller than requested or empty.
// Implements ports.QuoteProvider.
func (c *ZenQuotesClient) FetchQuotes(ctx context.Context, limit int) ([]domain.Quote, error) {
	const path = "/api/quotes"
	c.logger.Log(ctx, logging.LevelTrace, "starting request", slog.String("path", path))
	c.logger.DebugContext(ctx, "fetching quote batch", slog.Int("limit", limit))

	resp, err := c.client.Get(ctx, path)
	if err != nil {
		return nil, MapHTTPError(nil, err, c.Name(), "fetch quotes", "")
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Log(ctx, logging.LevelTrace, "request complete",
		slog.String("path", path),
		slog.Int("status", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		return nil, MapHTTPError(resp, nil, c.Name(), "fetch quotes", "")
	}

	var items []zenQuoteItem

	err = json.NewDecoder(resp.Body).Decode(&items)
	if err != nil {
		return nil, domain.NewUnavailableError(c.Name(),
			fmt.Sprintf("decoding quote batch: %v", err))
	}

	quotes := c.translateBatch(ctx, items, limit)

	return quotes, nil
}

// translateBatch converts external items to domain quotes, dropping
// anything that fails domain validation.
func (c *ZenQuotesClient) translateBatch(ctx context.Context, items []zenQuoteItem, limit int) []domain.Quote {
	quotes := make([]domain.Quote, 0, len(items))

	dropped := 0
	for _, item := range items {
		q := domain.Quote{Text: item.Q, Author: item.A}
		if !q.Valid() {
			dropped++
			continue
		}

		quotes = append(quotes, q)
		if limit > 0 && len(quotes) >= limit {
			break
		}
	}

	if dropped > 0 {
		c.logger.DebugContext(ctx, "dropped invalid quote items",
			slog.Int("dropped", dropped),
			slog.Int("kept", len(quotes)))
	}

	return quotes
}

// Name returns the health check name for this client.
// Implements ports.HealthChecker.
func (c *ZenQuotesClient) Name() string {
	return "zen-quotes"
}

// Check performs a health check by fetching a single random quote.
// Implements ports.HealthChecker.
func (c *ZenQuotesClient) Check(ctx context.Context) error {
	resp, err := c.client.Get(ctx, "/api/random")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("quote provider returned status %d", resp.StatusCode)
	}

	return nil
}
