// Package openai adapts the OpenAI chat completion API to the
// ports.MoodAnalyzer interface.
package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/domain"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/platform/logging"
)

// systemPrompt pins the completion to the mood:color grammar. The parser
// is total regardless, so a model that ignores the instruction still
// yields a usable result.
const systemPrompt = `You classify the emotional mood of quotes. ` +
	`Respond with exactly one line of the form mood:#RRGGBB where mood is one of: ` +
	`inspirational, motivational, philosophical, humorous, melancholic, optimistic, ` +
	`contemplative, wise, uplifting. Pick a hex color that evokes the mood. ` +
	`No other text.`

const maxCompletionTokens = 20

// completionAPI is the slice of the OpenAI client this adapter uses.
// Narrowed for testability.
type completionAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Config contains configuration for the mood analysis client.
type Config struct {
	// APIKey authenticates against the completion service.
	APIKey string

	// PrimaryModel is tried first; FallbackModel gets the single retry.
	PrimaryModel  string
	FallbackModel string

	// Timeout bounds each completion attempt.
	Timeout time.Duration

	// Logger is the structured logger.
	Logger *slog.Logger
}

// MoodClient implements ports.MoodAnalyzer using chat completions.
// One retry with the fallback model is the only retry in the analysis
// path; anything past that degrades at the service layer.
type MoodClient struct {
	api           completionAPI
	primaryModel  string
	fallbackModel string
	timeout       time.Duration
	logger        *slog.Logger
}

// New creates a mood analysis client. Panics if APIKey is empty: callers
// wire a nil analyzer when the key is absent so the missing configuration
// surfaces as a distinct error at first use, not as a broken client.
func New(cfg Config) *MoodClient {
	if cfg.APIKey == "" {
		panic("MoodClient: APIKey is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &MoodClient{
		api:           openai.NewClient(cfg.APIKey),
		primaryModel:  cfg.PrimaryModel,
		fallbackModel: cfg.FallbackModel,
		timeout:       cfg.Timeout,
		logger:        logger.With(slog.String("component", "openai.MoodClient")),
	}
}

// AnalyzeMood classifies the text into a mood/color pair. The primary
// model is tried once, then the fallback model once. Any completion that
// arrives parses to a result; an error means no completion arrived at all.
// Implements ports.MoodAnalyzer.
func (c *MoodClient) AnalyzeMood(ctx context.Context, text string) (domain.MoodResult, error) {
	models := []string{c.primaryModel}
	if c.fallbackModel != "" && c.fallbackModel != c.primaryModel {
		models = append(models, c.fallbackModel)
	}

	var lastErr error

	for _, model := range models {
		content, err := c.complete(ctx, model, text)
		if err != nil {
			lastErr = err

			c.logger.WarnContext(ctx, "completion attempt failed",
				slog.String("model", model),
				slog.Any("error", err),
			)

			continue
		}

		result := domain.ParseMoodResponse(content)

		c.logger.Log(ctx, logging.LevelTrace, "completion parsed",
			slog.String("model", model),
			slog.String("mood", string(result.Mood)),
			slog.String("color", result.Color),
		)

		return result, nil
	}

	return domain.MoodResult{}, domain.NewUnavailableError("mood-analysis",
		fmt.Sprintf("all completion attempts failed: %v", lastErr))
}

// complete runs one bounded completion attempt against the given model.
func (c *MoodClient) complete(ctx context.Context, model, text string) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(attemptCtx, openai.ChatCompletionRequest{
		Model:     model,
		MaxTokens: maxCompletionTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model %s returned no choices", model)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
