package advisor

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// GroqClient talks to Groq's OpenAI-compatible chat completion API.
type GroqClient struct {
	client *openai.Client
	model  string
}

func NewGroqClient(apiKey, baseURL, model string) *GroqClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &GroqClient{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (c *GroqClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.7,
		MaxTokens:   2000,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
