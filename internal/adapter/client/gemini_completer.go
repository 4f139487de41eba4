package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"
)

// ErrEmptyCompletion is returned when the provider replies without any candidate content
var ErrEmptyCompletion = errors.New("completion contained no message content")

// GeminiConfig configures GeminiCompleter
type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// GeminiCompleter calls Google's Gemini API through the genai SDK
type GeminiCompleter struct {
	client *genai.Client
	model  string
}

// NewGeminiCompleter creates a new Gemini completer
func NewGeminiCompleter(ctx context.Context, cfg GeminiConfig) (*GeminiCompleter, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiCompleter{client: client, model: model}, nil
}

// Name returns provider/model
func (c *GeminiCompleter) Name() string {
	return "gemini/" + c.model
}

// Complete sends prompt as one user turn with default generation config
func (c *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: blocked: %s", ErrEmptyCompletion, resp.PromptFeedback.BlockReason)
		}
		return "", ErrEmptyCompletion
	}

	return resp.Text(), nil
}
