package acl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/adapters/clients"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/domain"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/platform/logging"
)

// WikiClientConfig contains configuration for the encyclopedia client.
type WikiClientConfig struct {
	// Client is the HTTP client to use for requests.
	// The client's BaseURL should be set to the wiki host.
	Client *clients.Client

	// Logger is the structured logger.
	Logger *slog.Logger
}

// WikiClient implements ports.BiographyClient against the Wikipedia REST
// summary endpoint and the legacy full-text search action API.
type WikiClient struct {
	client *clients.Client
	logger *slog.Logger
}

// NewWikiClient creates a new encyclopedia client adapter.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewWikiClient(cfg WikiClientConfig) *WikiClient {
	if cfg.Client == nil {
		panic("WikiClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &WikiClient{
		client: cfg.Client,
		logger: logger,
	}
}

// wikiSummary is the external DTO from the REST summary endpoint.
type wikiSummary struct {
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// wikiSearchResponse is the external DTO from the action API search.
type wikiSearchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

// SummaryByTitle fetches structured summary content for an exact article
// title. Returns domain.ErrNotFound for missing articles or empty extracts.
// Implements ports.BiographyClient.
func (c *WikiClient) SummaryByTitle(ctx context.Context, title string) (*domain.Biography, error) {
	path := "/api/rest_v1/page/summary/" + url.PathEscape(articleTitle(title))
	c.logger.Log(ctx, logging.LevelTrace, "starting request", slog.String("path", path))

	resp, err := c.client.Get(ctx, path)
	if err != nil {
		return nil, MapHTTPError(nil, err, c.Name(), "fetch summary", title)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Log(ctx, logging.LevelTrace, "request complete",
		slog.String("path", path),
		slog.Int("status", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		return nil, MapHTTPError(resp, nil, c.Name(), "fetch summary", title)
	}

	var summary wikiSummary

	err = json.NewDecoder(resp.Body).Decode(&summary)
	if err != nil {
		return nil, domain.NewUnavailableError(c.Name(),
			fmt.Sprintf("decoding summary: %v", err))
	}

	return c.translateSummary(&summary, title)
}

// SearchTitle runs a full-text search and returns the top hit's article
// title. Returns domain.ErrNotFound when nothing matches.
// Implements ports.BiographyClient.
func (c *WikiClient) SearchTitle(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("format", "json")
	params.Set("srlimit", "1")
	params.Set("srsearch", query)

	path := "/w/api.php?" + params.Encode()
	c.logger.Log(ctx, logging.LevelTrace, "starting request", slog.String("path", "/w/api.php"))

	resp, err := c.client.Get(ctx, path)
	if err != nil {
		return "", MapHTTPError(nil, err, c.Name(), "search articles", query)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", MapHTTPError(resp, nil, c.Name(), "search articles", query)
	}

	var search wikiSearchResponse

	err = json.NewDecoder(resp.Body).Decode(&search)
	if err != nil {
		return "", domain.NewUnavailableError(c.Name(),
			fmt.Sprintf("decoding search results: %v", err))
	}

	if len(search.Query.Search) == 0 {
		return "", domain.NewNotFoundError("article", query)
	}

	return search.Query.Search[0].Title, nil
}

// translateSummary converts the external summary to a domain Biography.
// A summary without extract text counts as not found: there is nothing
// to show the reader.
func (c *WikiClient) translateSummary(summary *wikiSummary, requested string) (*domain.Biography, error) {
	if strings.TrimSpace(summary.Extract) == "" {
		return nil, domain.NewNotFoundError("biography", requested)
	}

	return &domain.Biography{
		Title:   summary.Title,
		Extract: summary.Extract,
		URL:     summary.ContentURLs.Desktop.Page,
	}, nil
}

// articleTitle converts a display name to wiki article title form
// (spaces become underscores).
func articleTitle(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}

// Name returns the health check name for this client.
// Implements ports.HealthChecker.
func (c *WikiClient) Name() string {
	return "wikipedia"
}

// Check performs a health check against a stable article summary.
// Implements ports.HealthChecker.
func (c *WikiClient) Check(ctx context.Context) error {
	resp, err := c.client.Get(ctx, "/api/rest_v1/page/summary/Wikipedia")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("encyclopedia API returned status %d", resp.StatusCode)
	}

	return nil
}
