package providers

import (
	"context"
	"fmt"
	"strings"
)

// GenerateRequest is one rewrite handed to a language model.
type GenerateRequest struct {
	Provider    string
	Model       string
	Channel     string
	Text        string
	TonePrompt  string
	ToneExample string
	APIKey      string
}

type LLMClient interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

type Registry struct {
	clients map[string]LLMClient
}

func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[string]LLMClient),
	}
}

func (r *Registry) Register(provider string, client LLMClient) {
	r.clients[strings.ToLower(provider)] = client
}

func (r *Registry) Client(provider string) (LLMClient, bool) {
	client, ok := r.clients[strings.ToLower(provider)]
	return client, ok
}

// EchoClient answers without a model. It is the default provider so the
// backend runs without credentials.
type EchoClient struct{}

func (EchoClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text := strings.TrimSpace(req.Text)
	if req.TonePrompt == "" {
		return fmt.Sprintf("[%s] %s", req.Channel, text), nil
	}
	return fmt.Sprintf("[%s | %s] %s", req.Channel, collapse(req.TonePrompt), text), nil
}

func collapse(text string) string {
	runes := []rune(text)
	if len(runes) > 60 {
		return string(runes[:60]) + "..."
	}
	return text
}

func systemPrompt(req GenerateRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You rewrite messages so they read naturally as a %s.", req.Channel)
	b.WriteString(" Keep the author's meaning and facts. Reply with the rewritten message only.")
	return b.String()
}

func composeUserContent(req GenerateRequest) string {
	var b strings.Builder
	if req.TonePrompt != "" {
		fmt.Fprintf(&b, "Tone instructions:\n%s\n\n", req.TonePrompt)
	}
	if req.ToneExample != "" {
		fmt.Fprintf(&b, "Example of the desired voice:\n%s\n\n", req.ToneExample)
	}
	fmt.Fprintf(&b, "Please rewrite the following content:\n%s", req.Text)
	return b.String()
}
