package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/adapters/http/handlers"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/adapters/http/middleware"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/platform/config"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/platform/ratelimit"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// AppConfig contains application configuration.
	AppConfig *config.AppConfig

	// AllowedOrigin is the CORS origin browsers may call from.
	AllowedOrigin string

	// RateLimiter guards the analyze endpoint. Optional; nil disables
	// rate limiting.
	RateLimiter *ratelimit.FixedWindow

	// Handlers for the business endpoints.
	QuoteHandler     *handlers.QuoteHandler
	AnalyzeHandler   *handlers.AnalyzeHandler
	JournalHandler   *handlers.JournalHandler
	BiographyHandler *handlers.BiographyHandler

	// HealthHandler handles health check endpoints.
	HealthHandler *handlers.HealthHandler

	// Timeout is the default request timeout.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request ID - generate/extract request ID
//  3. Correlation ID - handle distributed tracing correlation
//  4. OpenTelemetry - tracing and metrics
//  5. Logging - request logging (skips health endpoints)
//  6. CORS - browser origin headers, preflight short-circuit
//  7. Timeout - request deadline on the /api group
//
// Route groups:
//   - /-/ (internal): health endpoints, no CORS or timeout
//   - /api/ (public): the browser-facing endpoints
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(cfg.AppConfig.Name),
		telemetry.Middleware(cfg.AppConfig.Name),
		middleware.Logging(cfg.Logger),
	)

	// Health endpoints sit outside the /api group: probes need neither
	// CORS nor the request timeout.
	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	api := engine.Group("/api")
	api.Use(middleware.CORS(cfg.AllowedOrigin))

	// Group middleware only runs for requests that match a registered
	// route, so preflight needs a catch-all OPTIONS route. The CORS
	// middleware answers it with 204 before this handler runs.
	api.OPTIONS("/*path", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	if cfg.Timeout > 0 {
		api.Use(middleware.SimpleTimeout(cfg.Timeout))
	}

	setupAPIRoutes(api, cfg)
}

// setupAPIRoutes registers the business API routes.
func setupAPIRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterQuoteRoutes(rg)
	}

	// Only the analyze endpoint is rate limited: it is the one that
	// spends money per call.
	if cfg.AnalyzeHandler != nil {
		analyze := rg.Group("")
		if cfg.RateLimiter != nil {
			analyze.Use(middleware.RateLimit(cfg.RateLimiter))
		}

		cfg.AnalyzeHandler.RegisterAnalyzeRoutes(analyze)
	}

	if cfg.JournalHandler != nil {
		cfg.JournalHandler.RegisterJournalRoutes(rg)
	}

	if cfg.BiographyHandler != nil {
		cfg.BiographyHandler.RegisterBiographyRoutes(rg)
	}
}

// SetupMinimalRouter sets up a minimal router with just health endpoints.
// Useful for testing or lightweight deployments.
func SetupMinimalRouter(engine *gin.Engine, logger *slog.Logger, healthHandler *handlers.HealthHandler) {
	engine.Use(
		middleware.Recovery(logger),
		middleware.RequestID(),
	)

	if healthHandler != nil {
		healthHandler.RegisterHealthRoutesOnEngine(engine)
	}
}
