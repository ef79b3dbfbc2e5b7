package app

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/domain"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/platform/telemetry"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/ports"
)

// maxAnalyzeLength is the longest quote text accepted for analysis,
// counted in runes.
const maxAnalyzeLength = 1000

// MoodServiceConfig contains configuration for the mood service.
type MoodServiceConfig struct {
	// Analyzer classifies text via the external completion service.
	// Nil means analysis is not configured; requests then fail with
	// domain.ErrNotConfigured.
	Analyzer ports.MoodAnalyzer

	// Metrics records analyses by fallback state. Optional.
	Metrics *telemetry.QuoteMetrics

	// Logger is the structured logger.
	Logger *slog.Logger
}

// MoodService classifies quote text into a mood/color pair. An analyzer
// outage never fails the request: the time-keyed rotation answers
// instead, flagged as a fallback so clients can surface it.
type MoodService struct {
	analyzer ports.MoodAnalyzer
	metrics  *telemetry.QuoteMetrics
	logger   *slog.Logger

	// now is injectable for tests.
	now func() time.Time
}

// NewMoodService creates a mood service. A nil Analyzer is accepted.
func NewMoodService(cfg MoodServiceConfig) *MoodService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &MoodService{
		analyzer: cfg.Analyzer,
		metrics:  cfg.Metrics,
		logger:   logger.With(slog.String("component", "app.MoodService")),
		now:      time.Now,
	}
}

// Analyze classifies text. The fallback return is true when the analyzer
// was unreachable and the rotation answered instead.
//
// Returns domain.ErrValidation for empty or oversized text and
// domain.ErrNotConfigured when no analyzer is wired.
func (s *MoodService) Analyze(ctx context.Context, text string) (result domain.MoodResult, fallback bool, err error) {
	if text == "" {
		return domain.MoodResult{}, false, domain.NewValidationError("quote", "must not be empty")
	}

	if utf8.RuneCountInString(text) > maxAnalyzeLength {
		return domain.MoodResult{}, false, domain.NewValidationError("quote", "must be at most 1000 characters")
	}

	if s.analyzer == nil {
		return domain.MoodResult{}, false, domain.NewNotConfiguredError("mood analysis", "OPENAI_API_KEY is not set")
	}

	result, err = s.analyzer.AnalyzeMood(ctx, text)
	if err != nil {
		s.logger.WarnContext(ctx, "analyzer unreachable, using rotation fallback", slog.Any("error", err))

		result = domain.FallbackByTime(s.now().Unix())
		fallback = true
	}

	s.metrics.RecordMoodAnalyzed(ctx, fallback)

	return result, fallback, nil
}
