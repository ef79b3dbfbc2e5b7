package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_DefaultValues tests that hardcoded defaults are applied correctly.
// This test doesn't depend on YAML files - it only tests the defaults() function.
func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "quote-journal", cfg.App.Name)
	assert.Equal(t, "dev", cfg.App.Version)
	assert.Equal(t, "local", cfg.App.Environment)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "*", cfg.Server.AllowedOrigin)
}

// TestLoad_EnvVarOverrides tests that environment variables override defaults.
func TestLoad_EnvVarOverrides(t *testing.T) {
	t.Setenv("APP_SERVER_PORT", "9090")
	t.Setenv("APP_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
}

// TestLoad_DurationParsing tests that duration strings are parsed correctly.
func TestLoad_DurationParsing(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 120*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 15*time.Second, cfg.Services.Quotes.Timeout)
	assert.Equal(t, 2*time.Hour, cfg.Services.Quotes.CacheTTL)
	assert.Equal(t, 60*time.Second, cfg.RateLimit.Window)
}

// TestLoad_NonExistentProfile tests that a missing profile file doesn't cause errors.
func TestLoad_NonExistentProfile(t *testing.T) {
	cfg, err := Load("nonexistent")
	require.NoError(t, err)

	// Should fall back to defaults
	assert.Equal(t, "quote-journal", cfg.App.Name)
}

// TestLoad_BoolEnvVar tests that boolean environment variables are parsed correctly.
func TestLoad_BoolEnvVar(t *testing.T) {
	t.Setenv("APP_TELEMETRY_ENABLED", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.True(t, cfg.Telemetry.Enabled)
}

// TestLoad_QuoteProviderDefaults tests the quote provider defaults.
func TestLoad_QuoteProviderDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://zenquotes.io", cfg.Services.Quotes.BaseURL)
	assert.Equal(t, "zen-quotes", cfg.Services.Quotes.Name)
	assert.Equal(t, DefaultQuoteBatchSize, cfg.Services.Quotes.BatchSize)
}

// TestLoad_WikiDefaults tests the encyclopedia client defaults.
func TestLoad_WikiDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://en.wikipedia.org", cfg.Services.Wiki.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Services.Wiki.Timeout)
}

// TestLoad_SecretEnvOverlay tests that well-known secret variables land on
// the config regardless of the APP_ mapping.
func TestLoad_SecretEnvOverlay(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test-123")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sk-test-123", cfg.Services.OpenAI.APIKey)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Journal.URI)
}

// TestLoad_SecretsOptional tests that missing secrets don't fail loading or
// validation. Missing secrets surface at first use, not at startup.
func TestLoad_SecretsOptional(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("MONGODB_URI", "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Empty(t, cfg.Services.OpenAI.APIKey)
	assert.Empty(t, cfg.Journal.URI)
}

// TestLoad_RateLimitDefaults tests the fixed-window limiter defaults.
func TestLoad_RateLimitDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 60*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, DefaultRateLimitMax, cfg.RateLimit.MaxRequests)
}

// TestLoad_LogFileDefaults tests that log file defaults are set correctly.
func TestLoad_LogFileDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.False(t, cfg.Log.File.Enabled)
	assert.Equal(t, "./logs/app.log", cfg.Log.File.Path)
	assert.Equal(t, DefaultLogFileMaxSizeMB, cfg.Log.File.MaxSizeMB)
	assert.Equal(t, DefaultLogFileMaxBackups, cfg.Log.File.MaxBackups)
	assert.Equal(t, DefaultLogFileMaxAgeDays, cfg.Log.File.MaxAgeDays)
	assert.True(t, cfg.Log.File.Compress)
}

// TestValidate_Defaults tests that the default config is valid.
func TestValidate_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.NoError(t, cfg.Validate())
}

// TestValidate_BadPort tests that an out-of-range port fails validation.
func TestValidate_BadPort(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Server.Port = 70000

	verr := cfg.Validate()
	require.Error(t, verr)
	assert.Contains(t, verr.Error(), "server.port")
}

// TestValidate_BadQuoteURL tests that a malformed provider URL fails validation.
func TestValidate_BadQuoteURL(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Services.Quotes.BaseURL = "not a url"

	verr := cfg.Validate()
	require.Error(t, verr)
	assert.Contains(t, verr.Error(), "services.quotes.baseurl")
}
