package provider

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIClient calls the OpenAI Chat Completions API.
type OpenAIClient struct {
	client *openai.Client
}

// NewOpenAIClient builds a client with defaults against api.openai.com.
func NewOpenAIClient(apiKey string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}
	cli := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClient{client: &cli}, nil
}

func (c *OpenAIClient) Generate(ctx context.Context, model, prompt string, params GenerateParams) (Generation, error) {
	if c == nil || c.client == nil {
		return Generation{}, fmt.Errorf("nil openai client")
	}
	resp, err := c.client.Chat.Completions.New(ctx, chatParams(model, prompt, params))
	if err != nil {
		return Generation{}, err
	}
	return generationFromCompletion(resp)
}

func chatParams(model, prompt string, params GenerateParams) openai.ChatCompletionNewParams {
	req := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
	if params.Temperature > 0 {
		req.Temperature = openai.Float(params.Temperature)
	}
	if params.MaxTokens > 0 {
		req.MaxTokens = openai.Int(int64(params.MaxTokens))
	}
	return req
}

func generationFromCompletion(resp *openai.ChatCompletion) (Generation, error) {
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return Generation{}, &Error{Code: "empty_response", Message: "no choices returned"}
	}
	choice := resp.Choices[0]
	return Generation{
		Text: choice.Message.Content,
		Usage: &Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
		Meta: map[string]any{
			"finish_reason": string(choice.FinishReason),
			"model":         resp.Model,
		},
	}, nil
}
