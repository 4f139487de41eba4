package service

import (
	"context"

	"github.com/ressKim-io/promptclf/internal/domain/entity"
)

// ClassificationResult is the label predicted for one text
type ClassificationResult struct {
	Label string `json:"label"`
}

// Classifier defines the interface for remote text classification
type Classifier interface {
	// Classify classifies a single text against labels, with optional few-shot examples
	Classify(ctx context.Context, text string, labels *entity.LabelSet, examples []entity.Example) (*ClassificationResult, error)
}

type requestIDKey struct{}

// WithRequestID tags ctx with an id that remote classifiers forward to the service
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id set by WithRequestID, or ""
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
