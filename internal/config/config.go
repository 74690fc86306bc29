package config

import (
	"log/slog"

	"github.com/caarlos0/env/v10"
)

// Config holds minimal runtime configuration. Extend as needed.
type Config struct {
	// Server
	Port      int    `env:"PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Evaluation limits
	MaxModels      int     `env:"MAX_MODELS" envDefault:"6"`
	MaxPromptChars int     `env:"MAX_PROMPT_CHARS" envDefault:"8000"`
	DefaultTimeout float64 `env:"DEFAULT_TIMEOUT_S" envDefault:"15"` // per-model timeout (seconds)

	// Providers
	OpenAIKey   string `env:"OPENAI_API_KEY"`
	OpenAIModel string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OllamaURL   string `env:"OLLAMA_URL"` // e.g. http://localhost:11434/v1; empty disables ollama
	OllamaModel string `env:"OLLAMA_MODEL" envDefault:"llama3"`

	// Events
	EventsProvider string `env:"EVENTS_PROVIDER" envDefault:"noop"` // "nats" or "noop"
	EventsURL      string `env:"EVENTS_URL"`

	// Rate limiting (disabled when REDIS_ADDR is empty)
	RedisAddr          string `env:"REDIS_ADDR"`
	RedisPassword      string `env:"REDIS_PASSWORD"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"60"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}
