// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultMaxRequestSize is the default maximum request body size (1MB).
	DefaultMaxRequestSize = 1 << 20

	// DefaultQuoteBatchSize is how many quotes a provider refresh requests.
	DefaultQuoteBatchSize = 50

	// DefaultRateLimitMax is the default analyze-endpoint request budget
	// per client per window.
	DefaultRateLimitMax = 10

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 100

	// DefaultLogFileMaxBackups is the default number of old log files kept.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max age of old log files.
	DefaultLogFileMaxAgeDays = 28
)

// Config is the root configuration structure.
type Config struct {
	App       AppConfig       `koanf:"app"       validate:"required"`
	Server    ServerConfig    `koanf:"server"    validate:"required"`
	Log       LogConfig       `koanf:"log"       validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Client    ClientConfig    `koanf:"client"    validate:"required"`
	Services  ServicesConfig  `koanf:"services"  validate:"required"`
	Journal   JournalConfig   `koanf:"journal"`
	RateLimit RateLimitConfig `koanf:"ratelimit" validate:"required"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
	AllowedOrigin   string        `koanf:"allowed_origin"   validate:"required"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true,omitempty"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// ClientConfig contains shared HTTP client settings for downstream services.
type ClientConfig struct {
	Retry          RetryConfig          `koanf:"retry"           validate:"required"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker" validate:"required"`
}

// RetryConfig contains retry settings for HTTP clients.
// Quote and biography lookups run with a single attempt: their failures
// are absorbed by fallback tiers rather than retried.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"     validate:"required,min=1,max=10"`
	InitialInterval time.Duration `koanf:"initial_interval" validate:"required,min=10ms"`
	MaxInterval     time.Duration `koanf:"max_interval"     validate:"required,min=100ms"`
	Multiplier      float64       `koanf:"multiplier"       validate:"required,min=1.1,max=10"`
}

// CircuitBreakerConfig contains circuit breaker settings for HTTP clients.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"    validate:"required,min=1"`
	Timeout       time.Duration `koanf:"timeout"         validate:"required,min=1s"`
	HalfOpenLimit int           `koanf:"half_open_limit" validate:"required,min=1"`
}

// ServicesConfig contains configuration for downstream services.
type ServicesConfig struct {
	Quotes QuoteProviderConfig `koanf:"quotes" validate:"required"`
	Wiki   WikiConfig          `koanf:"wiki"   validate:"required"`
	OpenAI OpenAIConfig        `koanf:"openai"`
}

// QuoteProviderConfig configures the external quote provider.
type QuoteProviderConfig struct {
	BaseURL   string        `koanf:"base_url"   validate:"required,url"`
	Name      string        `koanf:"name"       validate:"required"`
	BatchSize int           `koanf:"batch_size" validate:"required,min=1,max=100"`
	Timeout   time.Duration `koanf:"timeout"    validate:"required,min=1s"`
	CacheTTL  time.Duration `koanf:"cache_ttl"  validate:"required,min=1m"`
}

// WikiConfig configures the encyclopedia API.
type WikiConfig struct {
	BaseURL string        `koanf:"base_url" validate:"required,url"`
	Name    string        `koanf:"name"     validate:"required"`
	Timeout time.Duration `koanf:"timeout"  validate:"required,min=1s"`
}

// OpenAIConfig configures the mood analysis completion service.
// APIKey is intentionally not required at startup: a missing key surfaces
// as a "not configured" error on first use of the analyze endpoint.
type OpenAIConfig struct {
	APIKey        string        `koanf:"api_key"`
	PrimaryModel  string        `koanf:"primary_model"  validate:"required"`
	FallbackModel string        `koanf:"fallback_model" validate:"required"`
	Timeout       time.Duration `koanf:"timeout"        validate:"required,min=1s"`
}

// JournalConfig configures the document store for saved quotes.
// URI is intentionally not required at startup, matching OpenAIConfig.
type JournalConfig struct {
	URI        string        `koanf:"uri"`
	Database   string        `koanf:"database"   validate:"required"`
	Collection string        `koanf:"collection" validate:"required"`
	Timeout    time.Duration `koanf:"timeout"    validate:"required,min=1s"`
}

// RateLimitConfig configures the fixed-window limiter on the analyze
// endpoint.
type RateLimitConfig struct {
	Window      time.Duration `koanf:"window"       validate:"required,min=1s"`
	MaxRequests int           `koanf:"max_requests" validate:"required,min=1"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "quote-journal",
		"app.version":     "dev",
		"app.environment": "local",

		"server.port":             DefaultServerPort,
		"server.host":             "0.0.0.0",
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "10s",
		"server.max_request_size": DefaultMaxRequestSize,
		"server.allowed_origin":   "*",

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/app.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "quote-journal",
		"telemetry.sampling_rate": 1.0,

		"client.retry.max_attempts":              1,
		"client.retry.initial_interval":          "100ms",
		"client.retry.max_interval":              "5s",
		"client.retry.multiplier":                2.0,
		"client.circuit_breaker.max_failures":    5,
		"client.circuit_breaker.timeout":         "30s",
		"client.circuit_breaker.half_open_limit": 3,

		"services.quotes.base_url":   "https://zenquotes.io",
		"services.quotes.name":       "zen-quotes",
		"services.quotes.batch_size": DefaultQuoteBatchSize,
		"services.quotes.timeout":    "15s",
		"services.quotes.cache_ttl":  "2h",

		"services.wiki.base_url": "https://en.wikipedia.org",
		"services.wiki.name":     "wikipedia",
		"services.wiki.timeout":  "10s",

		"services.openai.api_key":        "",
		"services.openai.primary_model":  "gpt-4o-mini",
		"services.openai.fallback_model": "gpt-3.5-turbo",
		"services.openai.timeout":        "15s",

		"journal.uri":        "",
		"journal.database":   "quote-journal",
		"journal.collection": "entries",
		"journal.timeout":    "10s",

		"ratelimit.window":       "60s",
		"ratelimit.max_requests": DefaultRateLimitMax,
	}
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Environment variables (APP_ prefix)
//  2. Profile config file (configs/{profile}.yaml)
//  3. Base config file (configs/base.yaml)
//  4. Default values
//
// Secrets follow the conventional variable names of the services they
// belong to: OPENAI_API_KEY and MONGODB_URI override the koanf keys when
// set, so deployments don't have to learn the APP_ mapping for them.
func Load(profile string) (*Config, error) {
	k := koanf.New(".")

	err := k.Load(confmap.Provider(defaults(), "."), nil)
	if err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	err = loadFileIfExists(k, "configs/base.yaml")
	if err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	if profile != "" {
		profilePath := fmt.Sprintf("configs/%s.yaml", profile)

		err := loadFileIfExists(k, profilePath)
		if err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
		}
	}

	err = k.Load(env.Provider("APP_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "APP_")),
			"_",
			".",
		)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config

	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	applySecretEnv(&cfg)

	return &cfg, nil
}

// applySecretEnv overlays well-known secret variables onto the config.
func applySecretEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); v != "" {
		cfg.Services.OpenAI.APIKey = v
	}

	if v := strings.TrimSpace(os.Getenv("MONGODB_URI")); v != "" {
		cfg.Journal.URI = v
	}
}

// loadFileIfExists loads a YAML config file if it exists.
// Returns nil if the file doesn't exist, error only for parse/read failures.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
