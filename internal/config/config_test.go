package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// Save original env and restore after test
	originalEnv := os.Environ()
	defer func() {
		os.Clearenv()
		for _, env := range originalEnv {
			for i, c := range env {
				if c == '=' {
					os.Setenv(env[:i], env[i+1:])
					break
				}
			}
		}
	}()

	// Clear env to test defaults
	os.Clearenv()

	cfg := Load()

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"Port", cfg.Port, 8080},
		{"LogLevel", cfg.LogLevel, "info"},
		{"LogFormat", cfg.LogFormat, "json"},
		{"MaxModels", cfg.MaxModels, 6},
		{"MaxPromptChars", cfg.MaxPromptChars, 8000},
		{"DefaultTimeout", cfg.DefaultTimeout, 15.0},
		{"OpenAIModel", cfg.OpenAIModel, "gpt-4o-mini"},
		{"OllamaModel", cfg.OllamaModel, "llama3"},
		{"EventsProvider", cfg.EventsProvider, "noop"},
		{"RateLimitPerMinute", cfg.RateLimitPerMinute, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("expected %s=%v, got %v", tt.name, tt.expected, tt.got)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	// Save and restore env
	originalPort := os.Getenv("PORT")
	originalMaxModels := os.Getenv("MAX_MODELS")
	defer func() {
		os.Setenv("PORT", originalPort)
		os.Setenv("MAX_MODELS", originalMaxModels)
	}()

	os.Setenv("PORT", "9090")
	os.Setenv("MAX_MODELS", "3")

	cfg := Load()

	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.MaxModels != 3 {
		t.Errorf("expected max models 3, got %d", cfg.MaxModels)
	}
}

func TestLoadProviderOverrides(t *testing.T) {
	originalEvents := os.Getenv("EVENTS_PROVIDER")
	originalRedis := os.Getenv("REDIS_ADDR")
	defer func() {
		os.Setenv("EVENTS_PROVIDER", originalEvents)
		os.Setenv("REDIS_ADDR", originalRedis)
	}()

	os.Setenv("EVENTS_PROVIDER", "nats")
	os.Setenv("REDIS_ADDR", "localhost:6379")

	cfg := Load()

	if cfg.EventsProvider != "nats" {
		t.Errorf("expected events provider 'nats', got %s", cfg.EventsProvider)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("expected redis addr set, got %s", cfg.RedisAddr)
	}
}
