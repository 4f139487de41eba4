package client

import (
	"context"
	"fmt"

	"github.com/ressKim-io/promptclf/internal/domain/service"
	"github.com/ressKim-io/promptclf/internal/infrastructure/config"
)

// NewCompleter builds the completion provider selected by cfg.Provider
func NewCompleter(ctx context.Context, cfg *config.LLMConfig) (service.Completer, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAICompleter(OpenAIConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		}), nil
	case config.ProviderGemini:
		baseURL := cfg.BaseURL
		if baseURL == config.DefaultOpenAIBaseURL {
			baseURL = ""
		}
		model := cfg.Model
		if model == config.DefaultOpenAIModel {
			model = ""
		}
		return NewGeminiCompleter(ctx, GeminiConfig{
			APIKey:  cfg.APIKey,
			BaseURL: baseURL,
			Model:   model,
			Timeout: cfg.Timeout,
		})
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}
