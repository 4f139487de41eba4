package entity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidLabelSet is returned when a label set cannot be decoded
var ErrInvalidLabelSet = errors.New("labels must be a JSON object of string descriptions")

// Label is a single classification category
type Label struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// LabelSet is an ordered mapping from label identifier to description.
// Iteration order is insertion order; it decides the order labels are listed in prompts.
type LabelSet struct {
	labels []Label
	index  map[string]int
}

// NewLabelSet creates an empty label set
func NewLabelSet() *LabelSet {
	return &LabelSet{index: make(map[string]int)}
}

// NewLabelSetFromNames creates a label set whose descriptions are the default sentence
func NewLabelSetFromNames(names ...string) *LabelSet {
	ls := NewLabelSet()
	for _, name := range names {
		ls.Set(name, DefaultLabelDescription(name))
	}
	return ls
}

// DefaultLabelDescription restates the identifier as a sentence
func DefaultLabelDescription(id string) string {
	return fmt.Sprintf("Text is classified as %s.", id)
}

// Set adds a label, or replaces the description of an existing one in place
func (s *LabelSet) Set(id, description string) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[id]; ok {
		s.labels[i].Description = description
		return
	}
	s.index[id] = len(s.labels)
	s.labels = append(s.labels, Label{ID: id, Description: description})
}

// Get returns the description for id
func (s *LabelSet) Get(id string) (string, bool) {
	if s == nil {
		return "", false
	}
	i, ok := s.index[id]
	if !ok {
		return "", false
	}
	return s.labels[i].Description, true
}

// Has reports whether id is one of the identifiers
func (s *LabelSet) Has(id string) bool {
	_, ok := s.Get(id)
	return ok
}

// Len returns the number of labels
func (s *LabelSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.labels)
}

// Labels returns a copy of the labels in insertion order
func (s *LabelSet) Labels() []Label {
	if s == nil {
		return nil
	}
	out := make([]Label, len(s.labels))
	copy(out, s.labels)
	return out
}

// IDs returns the identifiers in insertion order
func (s *LabelSet) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, len(s.labels))
	for i, l := range s.labels {
		ids[i] = l.ID
	}
	return ids
}

// MarshalJSON encodes the set as a JSON object, keeping insertion order
func (s *LabelSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, l := range s.Labels() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(l.ID)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(l.Description)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping key order.
// A repeated key keeps its first position and takes the last description.
func (s *LabelSet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLabelSet, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ErrInvalidLabelSet
	}

	decoded := NewLabelSet()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidLabelSet, err)
		}
		key, ok := tok.(string)
		if !ok {
			return ErrInvalidLabelSet
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("%w: label %q: %v", ErrInvalidLabelSet, key, err)
		}
		var desc string
		if bytes.Equal(raw, []byte("null")) {
			return fmt.Errorf("%w: label %q has null description", ErrInvalidLabelSet, key)
		}
		if err := json.Unmarshal(raw, &desc); err != nil {
			return fmt.Errorf("%w: label %q: %v", ErrInvalidLabelSet, key, err)
		}
		decoded.Set(key, desc)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLabelSet, err)
	}

	*s = *decoded
	return nil
}
