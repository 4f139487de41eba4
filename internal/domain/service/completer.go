package service

import "context"

// Completer is a large-language-model completion provider.
// The prompt is sent as a single user message with provider-default sampling.
type Completer interface {
	// Complete returns the raw completion text for prompt
	Complete(ctx context.Context, prompt string) (string, error)

	// Name identifies the provider and model, e.g. "openai/gpt-4o-mini"
	Name() string
}

// CompleterFunc adapts a function to the Completer interface
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

// Complete calls f
func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Name returns "func"
func (f CompleterFunc) Name() string {
	return "func"
}
