package provider

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OllamaClient talks to a local Ollama server through its OpenAI-compatible
// endpoint, so it reuses the same SDK as the OpenAI client.
type OllamaClient struct {
	client *openai.Client
}

// NewOllamaClient builds a client against the given base URL,
// e.g. http://localhost:11434/v1.
func NewOllamaClient(baseURL string) (*OllamaClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base url required")
	}
	cli := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey("ollama"), // ollama ignores the key but the SDK requires one
	)
	return &OllamaClient{client: &cli}, nil
}

func (c *OllamaClient) Generate(ctx context.Context, model, prompt string, params GenerateParams) (Generation, error) {
	if c == nil || c.client == nil {
		return Generation{}, fmt.Errorf("nil ollama client")
	}
	resp, err := c.client.Chat.Completions.New(ctx, chatParams(model, prompt, params))
	if err != nil {
		return Generation{}, err
	}
	return generationFromCompletion(resp)
}
