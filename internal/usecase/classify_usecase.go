package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ressKim-io/promptclf/internal/domain/entity"
	"github.com/ressKim-io/promptclf/internal/domain/prompt"
	"github.com/ressKim-io/promptclf/internal/domain/service"
	"github.com/ressKim-io/promptclf/internal/infrastructure/metrics"
)

// ExampleInput is one few-shot example in a classification request
type ExampleInput struct {
	Text  *string `json:"text" binding:"required"`
	Label *string `json:"label" binding:"required"`
}

// ClassifyInput represents a classification request.
// input_text must be present but may be empty; examples may be omitted or null.
type ClassifyInput struct {
	InputText *string          `json:"input_text" binding:"required"`
	Labels    *entity.LabelSet `json:"labels" binding:"required"`
	Examples  []ExampleInput   `json:"examples" binding:"omitempty,dive"`
}

// NewClassifyInput builds a request from plain values
func NewClassifyInput(text string, labels *entity.LabelSet, examples []entity.Example) *ClassifyInput {
	input := &ClassifyInput{InputText: &text, Labels: labels}
	for _, ex := range examples {
		ex := ex
		input.Examples = append(input.Examples, ExampleInput{Text: &ex.Text, Label: &ex.Label})
	}
	return input
}

// FewShot converts the request examples, nil when there are none
func (in *ClassifyInput) FewShot() []entity.Example {
	if len(in.Examples) == 0 {
		return nil
	}
	examples := make([]entity.Example, 0, len(in.Examples))
	for _, ex := range in.Examples {
		var text, label string
		if ex.Text != nil {
			text = *ex.Text
		}
		if ex.Label != nil {
			label = *ex.Label
		}
		examples = append(examples, entity.NewExample(text, label))
	}
	return examples
}

// ClassifyOutput represents the predicted label.
// It is not guaranteed to be one of the requested labels.
type ClassifyOutput struct {
	Label string `json:"label"`
}

// ClassifyUsecase defines the interface for prompt-based classification
type ClassifyUsecase interface {
	Classify(ctx context.Context, input *ClassifyInput) (*ClassifyOutput, error)
}

type classifyUsecase struct {
	completer service.Completer
	metrics   *metrics.Metrics
}

// NewClassifyUsecase creates a new classify usecase. m may be nil.
func NewClassifyUsecase(completer service.Completer, m *metrics.Metrics) ClassifyUsecase {
	return &classifyUsecase{
		completer: completer,
		metrics:   m,
	}
}

func (u *classifyUsecase) Classify(ctx context.Context, input *ClassifyInput) (*ClassifyOutput, error) {
	if input == nil || input.InputText == nil || input.Labels == nil {
		return nil, ErrInvalidRequest
	}

	p := prompt.Build(*input.InputText, input.Labels, input.FewShot())

	start := time.Now()
	raw, err := u.completer.Complete(ctx, p)
	u.metrics.ObserveClassification(u.completer.Name(), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCompletionFailed, u.completer.Name(), err)
	}

	return &ClassifyOutput{Label: prompt.ParseLabel(raw)}, nil
}

// localClassifier runs classification in-process through a ClassifyUsecase
type localClassifier struct {
	uc ClassifyUsecase
}

// NewLocalClassifier exposes a ClassifyUsecase as a service.Classifier
func NewLocalClassifier(uc ClassifyUsecase) service.Classifier {
	return &localClassifier{uc: uc}
}

func (c *localClassifier) Classify(ctx context.Context, text string, labels *entity.LabelSet, examples []entity.Example) (*service.ClassificationResult, error) {
	out, err := c.uc.Classify(ctx, NewClassifyInput(text, labels, examples))
	if err != nil {
		return nil, err
	}
	return &service.ClassificationResult{Label: out.Label}, nil
}
