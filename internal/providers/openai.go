package providers

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAIClient struct {
	baseURL string
}

func NewOpenAIClient(baseURL string) *OpenAIClient {
	return &OpenAIClient{baseURL: baseURL}
}

func (c *OpenAIClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if req.APIKey == "" {
		return "", errors.New("missing OpenAI API key")
	}

	cfg := openai.DefaultConfig(req.APIKey)
	if c.baseURL != "" {
		cfg.BaseURL = c.baseURL
	}
	client := openai.NewClientWithConfig(cfg)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(req)},
			{Role: openai.ChatMessageRoleUser, Content: composeUserContent(req)},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
