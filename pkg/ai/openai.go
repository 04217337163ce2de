package ai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hospitalvoice/booking-agent/pkg/config"
)

// ChatCompleter produces one chat completion for a transcript plus tool table
type ChatCompleter interface {
	Complete(ctx context.Context, messages []openai.ChatCompletionMessage, tools []openai.Tool) (openai.ChatCompletionMessage, error)
}

// OpenAIClient wraps the go-openai client for chat completions against any
// OpenAI-compatible endpoint
type OpenAIClient struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewOpenAIClient creates a chat completion client from config
func NewOpenAIClient(cfg *config.OpenAIConfig) *OpenAIClient {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIClient{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

// Complete requests one chat completion with the given transcript and tools
func (c *OpenAIClient) Complete(ctx context.Context, messages []openai.ChatCompletionMessage, tools []openai.Tool) (openai.ChatCompletionMessage, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}
	if len(tools) > 0 {
		req.Tools = tools
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return openai.ChatCompletionMessage{}, err
	}
	if len(resp.Choices) == 0 {
		return openai.ChatCompletionMessage{}, ErrEmptyCompletion
	}
	return resp.Choices[0].Message, nil
}
