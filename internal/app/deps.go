package app

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"

	"prism/internal/config"
	"prism/internal/eval"
	"prism/internal/events"
	"prism/internal/logger"
	"prism/internal/provider"
	"prism/internal/ratelimit"
)

// Deps bundles common runtime dependencies for the service.
type Deps struct {
	Config   config.Config
	Log      *slog.Logger
	Registry *provider.Registry
	Engine   *eval.Engine
	Events   events.Publisher
	Limiter  ratelimit.Limiter
}

// Build loads env, config, and shared components.
func Build() (Deps, error) {
	_ = godotenv.Load() // .env is optional
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	registry, err := buildRegistry(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize providers: %w", err)
	}
	dispatcher := eval.NewDispatcher(registry, log)
	engine := eval.NewEngine(dispatcher, log, eval.EngineOptions{
		MaxModels:      cfg.MaxModels,
		MaxPromptChars: cfg.MaxPromptChars,
	})

	pub, err := buildEvents(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize events: %w", err)
	}
	limiter, err := buildLimiter(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize rate limiter: %w", err)
	}

	return Deps{
		Config:   cfg,
		Log:      log,
		Registry: registry,
		Engine:   engine,
		Events:   pub,
		Limiter:  limiter,
	}, nil
}

// Close releases connections held by the dependency bundle.
func (d Deps) Close() {
	if d.Events != nil {
		if err := d.Events.Close(); err != nil {
			d.Log.Warn("failed to close events publisher", "err", err)
		}
	}
	if d.Limiter != nil {
		if err := d.Limiter.Close(); err != nil {
			d.Log.Warn("failed to close rate limiter", "err", err)
		}
	}
}

// buildRegistry registers every known model. Models whose credentials are
// missing stay registered but unavailable, so discovery can report why.
func buildRegistry(cfg config.Config, log *slog.Logger) (*provider.Registry, error) {
	r := provider.NewRegistry()

	mock := provider.NewMock()
	r.Register(provider.ModelInfo{
		ID: "mock:echo", Provider: "mock", Available: true,
		Description: "deterministic echo model",
	}, mock, "echo")
	r.Register(provider.ModelInfo{
		ID: "mock:reasoner", Provider: "mock", Available: true,
		Description: "pseudo reasoning model",
	}, mock, "reasoner")

	openaiID := "openai:" + cfg.OpenAIModel
	if cfg.OpenAIKey != "" {
		client, err := provider.NewOpenAIClient(cfg.OpenAIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
		}
		r.Register(provider.ModelInfo{
			ID: openaiID, Provider: "openai", Available: true,
			Description: "OpenAI chat completions",
		}, client, cfg.OpenAIModel)
		log.Info("openai model enabled", "model", cfg.OpenAIModel)
	} else {
		r.Register(provider.ModelInfo{
			ID: openaiID, Provider: "openai", Available: false,
			Reason: "OPENAI_API_KEY missing",
		}, nil, cfg.OpenAIModel)
	}

	ollamaID := "ollama:" + cfg.OllamaModel
	if cfg.OllamaURL != "" {
		client, err := provider.NewOllamaClient(cfg.OllamaURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Ollama client: %w", err)
		}
		r.Register(provider.ModelInfo{
			ID: ollamaID, Provider: "ollama", Available: true,
			Description: "local Ollama model",
		}, client, cfg.OllamaModel)
		log.Info("ollama model enabled", "model", cfg.OllamaModel, "url", cfg.OllamaURL)
	} else {
		r.Register(provider.ModelInfo{
			ID: ollamaID, Provider: "ollama", Available: false,
			Reason: "OLLAMA_URL not set",
		}, nil, cfg.OllamaModel)
	}

	return r, nil
}

func buildEvents(cfg config.Config, log *slog.Logger) (events.Publisher, error) {
	switch cfg.EventsProvider {
	case "nats":
		if cfg.EventsURL == "" {
			return nil, fmt.Errorf("EVENTS_URL is required when EVENTS_PROVIDER=nats")
		}
		nc, err := nats.Connect(cfg.EventsURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		log.Info("using NATS events publisher")
		return events.NewNATS(log, nc), nil
	case "noop":
		return events.NewNoOpPublisher(), nil
	default:
		return nil, fmt.Errorf("invalid EVENTS_PROVIDER: %s (valid options: nats, noop)", cfg.EventsProvider)
	}
}

func buildLimiter(cfg config.Config, log *slog.Logger) (ratelimit.Limiter, error) {
	if cfg.RedisAddr == "" {
		return ratelimit.NewNoOpLimiter(), nil
	}
	limiter, err := ratelimit.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RateLimitPerMinute)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis limiter: %w", err)
	}
	log.Info("using Redis rate limiter", "per_minute", cfg.RateLimitPerMinute)
	return limiter, nil
}
