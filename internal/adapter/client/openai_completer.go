package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	llmdomain "github.com/lexlapax/go-llms/pkg/llm/domain"
	"github.com/lexlapax/go-llms/pkg/llm/provider"
)

// OpenAIConfig configures OpenAICompleter
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// OpenAICompleter calls an OpenAI-compatible chat completions endpoint through go-llms
type OpenAICompleter struct {
	provider llmdomain.Provider
	baseURL  string
	model    string
}

// NewOpenAICompleter creates a new OpenAI completer.
// BaseURL may include the trailing /v1; the provider appends its own API path.
func NewOpenAICompleter(cfg OpenAIConfig) *OpenAICompleter {
	baseURL := strings.TrimSuffix(strings.TrimRight(cfg.BaseURL, "/"), "/v1")
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	p := provider.NewOpenAIProvider(
		cfg.APIKey,
		model,
		llmdomain.NewBaseURLOption(baseURL),
		llmdomain.NewHTTPClientOption(&http.Client{Timeout: cfg.Timeout}),
	)

	return &OpenAICompleter{
		provider: p,
		baseURL:  baseURL,
		model:    model,
	}
}

// Name returns provider/model
func (c *OpenAICompleter) Name() string {
	return "openai/" + c.model
}

// Complete sends prompt as one user message with provider default sampling
// and returns the reply content unmodified.
func (c *OpenAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.provider.GenerateMessage(ctx, []llmdomain.Message{
		llmdomain.NewTextMessage(llmdomain.RoleUser, prompt),
	})
	if err != nil {
		return "", fmt.Errorf("openai generate failed: %w", err)
	}

	return resp.Content, nil
}
