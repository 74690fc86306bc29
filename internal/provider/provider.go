package provider

import "context"

// GenerateParams carries the per-request generation knobs forwarded to providers.
type GenerateParams struct {
	Temperature float64
	MaxTokens   int
}

// Usage mirrors provider token accounting when the provider reports it.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens,omitempty"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens,omitempty"`
}

// Generation is a successful provider response.
type Generation struct {
	Text  string
	Usage *Usage
	Meta  map[string]any
}

// Client is a minimal model interface to allow pluggable providers.
// Implementations must honor ctx cancellation and deadlines.
type Client interface {
	Generate(ctx context.Context, model, prompt string, params GenerateParams) (Generation, error)
}

// Error carries a provider-assigned code alongside the message so failures
// can be reported as data without string matching.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}
