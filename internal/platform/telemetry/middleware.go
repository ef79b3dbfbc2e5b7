package telemetry

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/Raafay-Qureshi/interactive-quote-journal/telemetry"
)

// Metrics holds HTTP server metrics.
type Metrics struct {
	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
	activeRequests  metric.Int64UpDownCounter
}

// NewMetrics creates HTTP server metrics.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(instrumentationName)

	requestDuration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	requestTotal, err := meter.Int64Counter(
		"http.server.request.total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	activeRequests, err := meter.Int64UpDownCounter(
		"http.server.active_requests",
		metric.WithDescription("Number of active HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		activeRequests:  activeRequests,
	}, nil
}

// Middleware returns Gin middleware for OpenTelemetry metrics and the
// X-Trace-ID response header. Pair with TracingMiddleware for spans.
func Middleware(serviceName string) gin.HandlerFunc {
	// Metric creation errors are reported but don't break request handling
	metrics, err := NewMetrics()
	if err != nil {
		otel.Handle(err)
	}

	return func(c *gin.Context) {
		start := time.Now()

		if metrics != nil {
			attrs := []attribute.KeyValue{
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", c.FullPath()),
			}

			metrics.activeRequests.Add(c.Request.Context(), 1, metric.WithAttributes(attrs...))
			defer metrics.activeRequests.Add(c.Request.Context(), -1, metric.WithAttributes(attrs...))
		}

		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if span.SpanContext().HasTraceID() {
			c.Header("X-Trace-ID", span.SpanContext().TraceID().String())
		}

		if metrics != nil {
			duration := time.Since(start).Seconds()
			attrs := []attribute.KeyValue{
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", c.FullPath()),
				attribute.Int("http.status_code", c.Writer.Status()),
			}
			metrics.requestDuration.Record(c.Request.Context(), duration, metric.WithAttributes(attrs...))
			metrics.requestTotal.Add(c.Request.Context(), 1, metric.WithAttributes(attrs...))
		}
	}
}

// TracingMiddleware returns just the otelgin tracing middleware.
func TracingMiddleware(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName)
}

// QuoteMetrics counts quote deliveries by source tier and mood analyses
// by outcome, so dashboards can watch fallback rates.
type QuoteMetrics struct {
	quotesServed  metric.Int64Counter
	moodsAnalyzed metric.Int64Counter
}

// NewQuoteMetrics creates the domain-level counters.
func NewQuoteMetrics() (*QuoteMetrics, error) {
	meter := otel.Meter(instrumentationName)

	quotesServed, err := meter.Int64Counter(
		"quotes.served.total",
		metric.WithDescription("Quotes served, partitioned by source tier"),
	)
	if err != nil {
		return nil, err
	}

	moodsAnalyzed, err := meter.Int64Counter(
		"moods.analyzed.total",
		metric.WithDescription("Mood analyses, partitioned by outcome"),
	)
	if err != nil {
		return nil, err
	}

	return &QuoteMetrics{
		quotesServed:  quotesServed,
		moodsAnalyzed: moodsAnalyzed,
	}, nil
}

// RecordQuoteServed counts one served quote for the given source tier.
func (m *QuoteMetrics) RecordQuoteServed(ctx context.Context, source string) {
	if m == nil {
		return
	}
	m.quotesServed.Add(ctx, 1, metric.WithAttributes(attribute.String("source", source)))
}

// RecordMoodAnalyzed counts one mood analysis. Fallback analyses are
// those served from the deterministic rotation after a model failure.
func (m *QuoteMetrics) RecordMoodAnalyzed(ctx context.Context, fallback bool) {
	if m == nil {
		return
	}
	m.moodsAnalyzed.Add(ctx, 1, metric.WithAttributes(attribute.Bool("fallback", fallback)))
}
