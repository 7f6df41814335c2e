package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Juicern/remagik/internal/config"
	"github.com/Juicern/remagik/internal/domain"
	"github.com/Juicern/remagik/internal/providers"
)

var defaultModels = map[string]string{
	"openai": "gpt-4o-mini",
	"gemini": "gemini-2.0-flash",
}

type RewriteService struct {
	registry *providers.Registry
	cfg      config.LLMConfig
}

func NewRewriteService(registry *providers.Registry, cfg config.LLMConfig) *RewriteService {
	return &RewriteService{
		registry: registry,
		cfg:      cfg,
	}
}

func (s *RewriteService) Rewrite(ctx context.Context, req domain.RewriteRequest) (string, error) {
	if req.Blank() {
		return "", fmt.Errorf("%w: text is required", ErrInvalidInput)
	}

	provider := strings.ToLower(s.cfg.Provider)
	client, ok := s.registry.Client(provider)
	if !ok {
		return "", ErrProviderNotSupported
	}

	apiKey, err := s.apiKey(provider)
	if err != nil {
		return "", err
	}

	model := s.cfg.Model
	if model == "" {
		model = defaultModels[provider]
	}

	return client.Generate(ctx, providers.GenerateRequest{
		Provider:    provider,
		Model:       model,
		Channel:     req.Channel.String(),
		Text:        req.Text,
		TonePrompt:  req.Prompt,
		ToneExample: req.Example,
		APIKey:      apiKey,
	})
}

func (s *RewriteService) apiKey(provider string) (string, error) {
	var key string
	switch provider {
	case "openai":
		key = s.cfg.OpenAIKey
	case "gemini":
		key = s.cfg.GeminiKey
	default:
		return "", nil
	}
	if key == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingAPIKey, provider)
	}
	return key, nil
}

// NewRegistry registers every supported provider.
func NewRegistry(cfg config.LLMConfig) *providers.Registry {
	registry := providers.NewRegistry()
	registry.Register("echo", providers.EchoClient{})
	registry.Register("openai", providers.NewOpenAIClient(cfg.OpenAIBaseURL))
	registry.Register("gemini", providers.NewGeminiClient())
	return registry
}
