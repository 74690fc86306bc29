package eval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"prism/internal/provider"
)

// ErrInvalidRequest marks request-level validation failures, which are
// surfaced to the caller before any client is invoked.
var ErrInvalidRequest = errors.New("invalid_request")

func invalidRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// EngineOptions bounds what a single request may ask for. Zero values fall
// back to defaults.
type EngineOptions struct {
	MaxModels      int
	MaxPromptChars int
}

const (
	defaultMaxModels      = 6
	defaultMaxPromptChars = 8000
)

// Engine composes dispatch, comparison, aggregation and synthesis into one
// request/response cycle. Every request produces an isolated response; the
// engine holds no cross-request state.
type Engine struct {
	dispatcher     *Dispatcher
	log            *slog.Logger
	maxModels      int
	maxPromptChars int
}

func NewEngine(dispatcher *Dispatcher, log *slog.Logger, opts EngineOptions) *Engine {
	if opts.MaxModels <= 0 {
		opts.MaxModels = defaultMaxModels
	}
	if opts.MaxPromptChars <= 0 {
		opts.MaxPromptChars = defaultMaxPromptChars
	}
	return &Engine{
		dispatcher:     dispatcher,
		log:            log,
		maxModels:      opts.MaxModels,
		maxPromptChars: opts.MaxPromptChars,
	}
}

// Evaluate runs one full cycle: validate, dispatch, compare, aggregate,
// synthesize, assemble. The only error it returns is ErrInvalidRequest;
// every per-model failure is data on the response.
func (e *Engine) Evaluate(ctx context.Context, req Request) (*Response, error) {
	prompt := strings.TrimSpace(req.Prompt)
	method := req.SynthesisMethod
	if method == "" {
		method = MethodLongestNonEmpty
	}
	if err := e.validate(prompt, req.Models, method, req.TimeoutS); err != nil {
		return nil, err
	}
	timeout := time.Duration(req.TimeoutS * float64(time.Second))

	params := provider.GenerateParams{
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	results := e.dispatcher.Dispatch(ctx, prompt, params, timeout, req.Models)
	annotate(prompt, results)

	pairs := Compare(results)
	summary := Aggregate(results, pairs)
	synthesis := Synthesize(method, results, pairs)

	resp := &Response{
		RequestID: uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		RunHash:   RunHash(req),
		Prompt:    prompt,
		Params: Params{
			Models:          req.Models,
			Temperature:     req.Temperature,
			MaxTokens:       req.MaxTokens,
			TimeoutS:        req.TimeoutS,
			SynthesisMethod: method,
		},
		Results:   results,
		Synthesis: synthesis,
		Compare:   CompareResult{Pairs: pairs, Summary: summary},
		Status:    runStatus(results),
	}
	e.log.Info("evaluation complete",
		"request_id", resp.RequestID,
		"models", len(results),
		"status", resp.Status,
		"synthesis_ok", synthesis.OK,
	)
	return resp, nil
}

func (e *Engine) validate(prompt string, models []string, method Method, timeoutS float64) error {
	if prompt == "" {
		return invalidRequest("prompt cannot be empty")
	}
	if len(prompt) > e.maxPromptChars {
		return invalidRequest("prompt exceeds maximum length of %d characters", e.maxPromptChars)
	}
	if len(models) == 0 {
		return invalidRequest("at least one model is required")
	}
	if len(models) > e.maxModels {
		return invalidRequest("too many models requested; max is %d", e.maxModels)
	}
	seen := make(map[string]struct{}, len(models))
	for _, id := range models {
		if id == "" {
			return invalidRequest("model ids cannot be empty")
		}
		if _, dup := seen[id]; dup {
			return invalidRequest("duplicate model id %q", id)
		}
		seen[id] = struct{}{}
	}
	switch method {
	case MethodLongestNonEmpty, MethodConsensusOverlap, MethodBestOfN:
	default:
		return invalidRequest("unknown synthesis method %q", method)
	}
	if timeoutS <= 0 {
		return invalidRequest("timeout_s must be positive")
	}
	return nil
}

func runStatus(results []ModelResult) string {
	ok := 0
	for _, r := range results {
		if r.OK {
			ok++
		}
	}
	switch {
	case ok == len(results):
		return RunStatusSuccess
	case ok > 0:
		return RunStatusPartial
	default:
		return RunStatusFailed
	}
}
