package usecase

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SuiteEntry is one dataset/mode pair in an evaluation suite
type SuiteEntry struct {
	Dataset string `yaml:"dataset"`
	Name    string `yaml:"name"`
	FewShot bool   `yaml:"few_shot"`
}

// DisplayName returns Name, falling back to the dataset id
func (e SuiteEntry) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.Dataset
}

// Suite is an ordered list of evaluations sharing slice sizes
type Suite struct {
	MaxExamples int          `yaml:"max_examples"`
	Shots       int          `yaml:"shots"`
	Evaluations []SuiteEntry `yaml:"evaluations"`
}

// DefaultSuite evaluates Yelp Polarity, AG News and TREC, each zero-shot and 10-shot
func DefaultSuite() *Suite {
	s := &Suite{MaxExamples: DefaultMaxExamples, Shots: DefaultShots}
	for _, ds := range []struct{ id, name string }{
		{"yelp_polarity", "Yelp Polarity"},
		{"ag_news", "AG News"},
		{"trec", "TREC"},
	} {
		s.Evaluations = append(s.Evaluations,
			SuiteEntry{Dataset: ds.id, Name: ds.name, FewShot: false},
			SuiteEntry{Dataset: ds.id, Name: ds.name, FewShot: true},
		)
	}
	return s
}

// LoadSuite reads a suite from a YAML file
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file: %w", err)
	}
	return ParseSuite(data)
}

// ParseSuite decodes a YAML suite and fills unset slice sizes with defaults
func ParseSuite(data []byte) (*Suite, error) {
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse suite: %w", err)
	}
	if s.MaxExamples == 0 {
		s.MaxExamples = DefaultMaxExamples
	}
	if s.Shots == 0 {
		s.Shots = DefaultShots
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the suite can be run
func (s *Suite) Validate() error {
	if len(s.Evaluations) == 0 {
		return fmt.Errorf("%w: suite has no evaluations", ErrInvalidRequest)
	}
	if s.MaxExamples < 0 || s.Shots < 0 {
		return fmt.Errorf("%w: negative slice size", ErrInvalidRequest)
	}
	for i, e := range s.Evaluations {
		if e.Dataset == "" {
			return fmt.Errorf("%w: evaluation %d has no dataset", ErrInvalidRequest, i)
		}
	}
	return nil
}

// Inputs expands the suite into evaluation inputs, in order
func (s *Suite) Inputs() []*EvaluateInput {
	inputs := make([]*EvaluateInput, len(s.Evaluations))
	for i, e := range s.Evaluations {
		shots := 0
		if e.FewShot {
			shots = s.Shots
		}
		inputs[i] = &EvaluateInput{Dataset: e.Dataset, Shots: shots, MaxExamples: s.MaxExamples}
	}
	return inputs
}

// FormatAccuracy renders a result line such as "AG News accuracy (10-Shot): 85.50%"
func FormatAccuracy(name string, out *EvaluationOutput) string {
	return fmt.Sprintf("%s accuracy (%s): %.2f%%", name, out.Mode, out.Accuracy*100)
}
