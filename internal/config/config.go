// Package config defines configuration parsing and helpers.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"dev"`
	Port        int    `env:"PORT" envDefault:"8080"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"mentor-engine"`

	// DatasetPath points at the career knowledge base (JSON or YAML). The
	// dataset is loaded once at startup and only replaced by an explicit
	// reload.
	DatasetPath string `env:"DATASET_PATH" envDefault:"data/career_dataset.json"`

	// ScorerMode pins the scorer variant at initialization: fuzzy or lexical.
	ScorerMode string `env:"SCORER_MODE" envDefault:"fuzzy"`

	// ResolveTiers lists the active fallback tiers in order. The strong-match
	// and heuristic tiers ship disabled by product policy but remain
	// pluggable here without any interface change.
	ResolveTiers []string `env:"RESOLVE_TIERS" envSeparator:"," envDefault:"delegate"`

	GeminiAPIKey  string        `env:"GEMINI_API_KEY"`
	GeminiBaseURL string        `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
	GeminiModel   string        `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	AITimeout     time.Duration `env:"AI_TIMEOUT" envDefault:"30s"`

	// AI retry backoff (5xx/429 only; timeouts are never retried).
	AIBackoffMaxElapsedTime  time.Duration `env:"AI_BACKOFF_MAX_ELAPSED_TIME" envDefault:"60s"`
	AIBackoffInitialInterval time.Duration `env:"AI_BACKOFF_INITIAL_INTERVAL" envDefault:"1s"`
	AIBackoffMaxInterval     time.Duration `env:"AI_BACKOFF_MAX_INTERVAL" envDefault:"10s"`
	AIBackoffMultiplier      float64       `env:"AI_BACKOFF_MULTIPLIER" envDefault:"1.5"`

	RedisAddr       string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	HistoryMaxTurns int           `env:"HISTORY_MAX_TURNS" envDefault:"30"`
	HistoryTTL      time.Duration `env:"HISTORY_TTL" envDefault:"24h"`

	// ReplyMaxChars caps delegate replies before they reach the user.
	ReplyMaxChars int `env:"REPLY_MAX_CHARS" envDefault:"1200"`

	OTLPEndpoint     string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	CORSAllowOrigins string `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
	RateLimitPerMin  int    `env:"RATE_LIMIT_PER_MIN" envDefault:"30"`

	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	HTTPReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	HTTPWriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"60s"`
	HTTPIdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
}

// Load parses environment variables into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("op=config.Load: %w", err)
	}
	return cfg, nil
}

// IsDev reports whether the app is running in development mode.
func (c Config) IsDev() bool { return strings.ToLower(c.AppEnv) == "dev" }

// IsProd reports whether the app is running in production mode.
func (c Config) IsProd() bool { return strings.ToLower(c.AppEnv) == "prod" }

// IsTest reports whether the app is running in test mode.
func (c Config) IsTest() bool { return strings.ToLower(c.AppEnv) == "test" }

// GetAIBackoffConfig returns backoff settings for the current environment.
// Test environments get much shorter intervals for fast test execution.
func (c Config) GetAIBackoffConfig() (maxElapsedTime, initialInterval, maxInterval time.Duration, multiplier float64) {
	if c.IsTest() {
		return 2 * time.Second, 50 * time.Millisecond, 500 * time.Millisecond, 2.0
	}
	return c.AIBackoffMaxElapsedTime, c.AIBackoffInitialInterval, c.AIBackoffMaxInterval, c.AIBackoffMultiplier
}
