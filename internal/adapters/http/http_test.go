package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/adapters/http/handlers"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/app"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/domain"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/mocks"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/platform/config"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/platform/ratelimit"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testServerConfig() *config.ServerConfig {
	return &config.ServerConfig{
		Host:           "127.0.0.1",
		Port:           0,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    30 * time.Second,
		MaxRequestSize: 1 << 20,
		AllowedOrigin:  "*",
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fullRouterConfig wires every handler the way main does, backed by mocks.
func fullRouterConfig(t *testing.T) RouterConfig {
	t.Helper()

	provider := new(mocks.MockQuoteProvider)
	provider.On("FetchQuotes", mock.Anything, mock.Anything).
		Return([]domain.Quote{{Text: "Be the change", Author: "Gandhi"}}, nil)

	analyzer := new(mocks.MockMoodAnalyzer)
	analyzer.On("AnalyzeMood", mock.Anything, mock.Anything).
		Return(domain.MoodResult{Mood: domain.MoodWise, Color: "#8B4513"}, nil)

	quoteService := app.NewQuoteService(app.QuoteServiceConfig{
		Provider:  provider,
		Cache:     app.NewQuoteCache(),
		BatchSize: 50,
		CacheTTL:  2 * time.Hour,
		Logger:    discardLogger(),
	})
	moodService := app.NewMoodService(app.MoodServiceConfig{Analyzer: analyzer, Logger: discardLogger()})
	journalService := app.NewJournalService(app.JournalServiceConfig{Logger: discardLogger()})

	bioClient := new(mocks.MockBiographyClient)
	bioClient.On("SummaryByTitle", mock.Anything, mock.Anything).
		Return(&domain.Biography{Title: "Gandhi", Extract: "Led Indian independence."}, nil)
	bioService := app.NewBiographyService(app.BiographyServiceConfig{Client: bioClient, Logger: discardLogger()})

	return RouterConfig{
		Logger:           discardLogger(),
		AppConfig:        &config.AppConfig{Name: "quote-journal", Version: "test", Environment: "test"},
		AllowedOrigin:    "*",
		RateLimiter:      ratelimit.NewFixedWindow(time.Minute, 2),
		QuoteHandler:     handlers.NewQuoteHandler(quoteService),
		AnalyzeHandler:   handlers.NewAnalyzeHandler(moodService),
		JournalHandler:   handlers.NewJournalHandler(journalService),
		BiographyHandler: handlers.NewBiographyHandler(bioService),
		HealthHandler:    handlers.NewHealthHandler(nil, handlers.BuildInfo{Version: "test"}),
		Timeout:          DefaultRequestTimeout,
	}
}

func TestSetupRouter_RegistersAllRoutes(t *testing.T) {
	engine := gin.New()
	SetupRouter(engine, fullRouterConfig(t))

	wantRoutes := map[string]string{
		"/-/live":           http.MethodGet,
		"/api/quotes":       http.MethodGet,
		"/api/analyze":      http.MethodPost,
		"/api/journal":      http.MethodGet,
		"/api/journal/:id":  http.MethodDelete,
		"/api/authors/:name": http.MethodGet,
	}

	registered := make(map[string]bool)
	for _, route := range engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for path, method := range wantRoutes {
		assert.True(t, registered[method+" "+path], "missing route %s %s", method, path)
	}
}

func TestSetupRouter_QuoteEndpointEndToEnd(t *testing.T) {
	engine := gin.New()
	SetupRouter(engine, fullRouterConfig(t))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/quotes", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "zen-api", w.Header().Get("X-Quote-Source"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSetupRouter_PreflightAnswered(t *testing.T) {
	engine := gin.New()
	SetupRouter(engine, fullRouterConfig(t))

	for _, path := range []string{"/api/analyze", "/api/journal", "/api/journal/507f1f77bcf86cd799439011", "/api/quotes"} {
		req := httptest.NewRequest(http.MethodOptions, path, nil)
		req.Header.Set("Origin", "https://quotes.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusNoContent, w.Code, "preflight %s", path)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"), "preflight %s", path)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost, "preflight %s", path)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Content-Type", "preflight %s", path)
	}
}

func TestSetupRouter_PreflightDoesNotSpendRateLimit(t *testing.T) {
	engine := gin.New()
	SetupRouter(engine, fullRouterConfig(t))

	// The configured limiter allows two requests; preflights must not
	// count against that budget.
	for range 5 {
		req := httptest.NewRequest(http.MethodOptions, "/api/analyze", nil)
		req.Header.Set("Origin", "https://quotes.example")
		req.Header.Set("X-Forwarded-For", "203.0.113.9")

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		require.Equal(t, http.StatusNoContent, w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"quote": "hi"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", "203.0.113.9")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetupRouter_ExposesPaginationCursorHeader(t *testing.T) {
	engine := gin.New()
	SetupRouter(engine, fullRouterConfig(t))

	req := httptest.NewRequest(http.MethodGet, "/api/journal", nil)
	req.Header.Set("Origin", "https://quotes.example")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "X-Next-Cursor")
}

func TestSetupRouter_AnalyzeIsRateLimited(t *testing.T) {
	engine := gin.New()
	SetupRouter(engine, fullRouterConfig(t))

	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(`{"quote": "hi"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", "203.0.113.7")

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		return w
	}

	assert.Equal(t, http.StatusOK, post().Code)
	assert.Equal(t, http.StatusOK, post().Code)

	w := post()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestSetupRouter_QuotesAreNotRateLimited(t *testing.T) {
	engine := gin.New()
	SetupRouter(engine, fullRouterConfig(t))

	for range 10 {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/quotes", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7")
		engine.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}
}

func TestSetupRouter_HealthSkipsCORSGroup(t *testing.T) {
	engine := gin.New()
	SetupRouter(engine, fullRouterConfig(t))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/live", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSetupMinimalRouter(t *testing.T) {
	engine := gin.New()
	SetupMinimalRouter(engine, discardLogger(), handlers.NewHealthHandler(nil, handlers.BuildInfo{}))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/-/live", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServerStartShutdown(t *testing.T) {
	srv := New(testServerConfig(), discardLogger())

	srv.Engine().GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	errCh := srv.Start()
	time.Sleep(100 * time.Millisecond)

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("server start error: %v", err)
		}
	default:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))

	_, ok := <-errCh
	assert.False(t, ok, "error channel should be closed")
}

func TestServerAddr(t *testing.T) {
	cfg := testServerConfig()
	cfg.Host = "localhost"
	cfg.Port = 8080

	srv := New(cfg, discardLogger())
	assert.Equal(t, "localhost:8080", srv.Addr())
}
