package client

import (
	"context"

	"github.com/ressKim-io/promptclf/internal/domain/entity"
	"github.com/ressKim-io/promptclf/internal/domain/service"
)

// RemoteClassifier adapts ClassifyClient to the Classifier interface
type RemoteClassifier struct {
	client *ClassifyClient
}

// NewRemoteClassifier creates a new RemoteClassifier
func NewRemoteClassifier(client *ClassifyClient) service.Classifier {
	return &RemoteClassifier{client: client}
}

// Classify classifies a single text, forwarding service.RequestID(ctx) as X-Request-ID
func (c *RemoteClassifier) Classify(ctx context.Context, text string, labels *entity.LabelSet, examples []entity.Example) (*service.ClassificationResult, error) {
	resp, err := c.client.Classify(ctx, &ClassifyRequest{
		InputText: text,
		Labels:    labels,
		Examples:  examples,
	}, service.RequestID(ctx))
	if err != nil {
		return nil, err
	}

	return &service.ClassificationResult{Label: resp.Label}, nil
}
