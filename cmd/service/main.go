// Package main is the entry point for the quote journal service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/adapters/clients"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/adapters/clients/acl"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/adapters/clients/openai"
	httpadapter "github.com/Raafay-Qureshi/interactive-quote-journal/internal/adapters/http"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/adapters/http/handlers"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/adapters/storage/mongodb"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/app"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/platform/config"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/platform/logging"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/platform/ratelimit"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/platform/telemetry"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	slog.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	quoteMetrics, err := telemetry.NewQuoteMetrics()
	if err != nil {
		return fmt.Errorf("initializing metrics: %w", err)
	}

	// 5. Create health registry
	healthRegistry := ports.NewHealthRegistry()

	// 6. Create the quote provider adapter (ACL pattern). Single attempt:
	// provider failures degrade through the fallback chain instead of
	// being retried.
	quoteHTTPClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Services.Quotes.BaseURL,
		ServiceName: cfg.Services.Quotes.Name,
		Timeout:     cfg.Services.Quotes.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating quote HTTP client: %w", err)
	}

	quoteProvider := acl.NewZenQuotesClient(acl.ZenQuotesClientConfig{
		Client: quoteHTTPClient,
		Logger: logger,
	})

	if err := healthRegistry.Register(quoteProvider); err != nil {
		return fmt.Errorf("registering quote provider health check: %w", err)
	}

	// 7. Create the encyclopedia adapter
	wikiHTTPClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Services.Wiki.BaseURL,
		ServiceName: cfg.Services.Wiki.Name,
		Timeout:     cfg.Services.Wiki.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating wiki HTTP client: %w", err)
	}

	wikiClient := acl.NewWikiClient(acl.WikiClientConfig{
		Client: wikiHTTPClient,
		Logger: logger,
	})

	if err := healthRegistry.Register(wikiClient); err != nil {
		return fmt.Errorf("registering wiki client health check: %w", err)
	}

	// 8. Create the mood analyzer. A missing key is not fatal here: the
	// analyze endpoint reports the missing configuration on first use.
	var moodAnalyzer ports.MoodAnalyzer
	if cfg.Services.OpenAI.APIKey != "" {
		moodAnalyzer = openai.New(openai.Config{
			APIKey:        cfg.Services.OpenAI.APIKey,
			PrimaryModel:  cfg.Services.OpenAI.PrimaryModel,
			FallbackModel: cfg.Services.OpenAI.FallbackModel,
			Timeout:       cfg.Services.OpenAI.Timeout,
			Logger:        logger,
		})
	} else {
		logger.Warn("OPENAI_API_KEY is not set, mood analysis disabled")
	}

	// 9. Create the journal store. Same policy as the analyzer: the
	// journal endpoints report the missing URI on first use.
	var journalStore ports.JournalStore

	if cfg.Journal.URI != "" {
		store, err := mongodb.New(ctx, mongodb.Config{
			URI:        cfg.Journal.URI,
			Database:   cfg.Journal.Database,
			Collection: cfg.Journal.Collection,
			Timeout:    cfg.Journal.Timeout,
			Logger:     logger,
		})
		if err != nil {
			return fmt.Errorf("connecting journal store: %w", err)
		}

		defer func() {
			if disconnectErr := store.Disconnect(ctx); disconnectErr != nil {
				logger.Error("journal store disconnect error", slog.Any("error", disconnectErr))
			}
		}()

		if err := healthRegistry.Register(store); err != nil {
			return fmt.Errorf("registering journal store health check: %w", err)
		}

		journalStore = store
	} else {
		logger.Warn("MONGODB_URI is not set, journal disabled")
	}

	// 10. Create application services
	quoteService := app.NewQuoteService(app.QuoteServiceConfig{
		Provider:  quoteProvider,
		Cache:     app.NewQuoteCache(),
		BatchSize: cfg.Services.Quotes.BatchSize,
		CacheTTL:  cfg.Services.Quotes.CacheTTL,
		Metrics:   quoteMetrics,
		Logger:    logger,
	})

	moodService := app.NewMoodService(app.MoodServiceConfig{
		Analyzer: moodAnalyzer,
		Metrics:  quoteMetrics,
		Logger:   logger,
	})

	journalService := app.NewJournalService(app.JournalServiceConfig{
		Store:  journalStore,
		Logger: logger,
	})

	biographyService := app.NewBiographyService(app.BiographyServiceConfig{
		Client: wikiClient,
		Logger: logger,
	})

	// 11. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)

	// 12. Create HTTP server and router
	server := httpadapter.New(&cfg.Server, logger)

	httpadapter.SetupRouter(server.Engine(), httpadapter.RouterConfig{
		Logger:           logger,
		AppConfig:        &cfg.App,
		AllowedOrigin:    cfg.Server.AllowedOrigin,
		RateLimiter:      ratelimit.NewFixedWindow(cfg.RateLimit.Window, cfg.RateLimit.MaxRequests),
		QuoteHandler:     handlers.NewQuoteHandler(quoteService),
		AnalyzeHandler:   handlers.NewAnalyzeHandler(moodService),
		JournalHandler:   handlers.NewJournalHandler(journalService),
		BiographyHandler: handlers.NewBiographyHandler(biographyService),
		HealthHandler:    handlers.NewHealthHandler(healthRegistry, buildInfo),
		Timeout:          httpadapter.DefaultRequestTimeout,
	})

	// 13. Start server (non-blocking)
	serverErr := server.Start()

	// 14. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *httpadapter.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
