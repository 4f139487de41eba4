package entity

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSplit is returned for split expressions that cannot be parsed
var ErrInvalidSplit = errors.New("invalid split")

// DatasetRecord is a single labeled text
type DatasetRecord struct {
	Text  string `json:"text"`
	Label int    `json:"label"`
}

// Dataset is a slice of a labeled text classification dataset
type Dataset struct {
	Name       string          `json:"name"`
	Split      string          `json:"split"`
	LabelNames []string        `json:"label_names"`
	Records    []DatasetRecord `json:"records"`
}

// LabelName maps a label index to its name
func (d *Dataset) LabelName(id int) (string, error) {
	if id < 0 || id >= len(d.LabelNames) {
		return "", fmt.Errorf("label %d out of range for %s (%d labels)", id, d.Name, len(d.LabelNames))
	}
	return d.LabelNames[id], nil
}

// LabelSet returns every label name with the default description, in index order
func (d *Dataset) LabelSet() *LabelSet {
	return NewLabelSetFromNames(d.LabelNames...)
}

// Examples converts the records into few-shot examples with label names
func (d *Dataset) Examples() ([]Example, error) {
	examples := make([]Example, 0, len(d.Records))
	for _, rec := range d.Records {
		name, err := d.LabelName(rec.Label)
		if err != nil {
			return nil, err
		}
		examples = append(examples, NewExample(rec.Text, name))
	}
	return examples, nil
}

// SplitRange is a parsed split expression such as "test[:200]".
// Length < 0 means "to the end".
type SplitRange struct {
	Name   string
	Offset int
	Length int
}

// ParseSplit parses "name", "name[:n]", "name[m:]" and "name[m:n]"
func ParseSplit(expr string) (SplitRange, error) {
	expr = strings.TrimSpace(expr)
	open := strings.IndexByte(expr, '[')
	if open < 0 {
		if expr == "" {
			return SplitRange{}, fmt.Errorf("%w: empty", ErrInvalidSplit)
		}
		return SplitRange{Name: expr, Length: -1}, nil
	}
	if !strings.HasSuffix(expr, "]") || open == 0 {
		return SplitRange{}, fmt.Errorf("%w: %q", ErrInvalidSplit, expr)
	}

	name := expr[:open]
	bounds := expr[open+1 : len(expr)-1]
	lo, hi, ok := strings.Cut(bounds, ":")
	if !ok {
		return SplitRange{}, fmt.Errorf("%w: %q", ErrInvalidSplit, expr)
	}

	start := 0
	if lo != "" {
		n, err := strconv.Atoi(lo)
		if err != nil || n < 0 {
			return SplitRange{}, fmt.Errorf("%w: %q", ErrInvalidSplit, expr)
		}
		start = n
	}

	length := -1
	if hi != "" {
		end, err := strconv.Atoi(hi)
		if err != nil || end < start {
			return SplitRange{}, fmt.Errorf("%w: %q", ErrInvalidSplit, expr)
		}
		length = end - start
	}

	return SplitRange{Name: name, Offset: start, Length: length}, nil
}

// String renders the range back into split syntax
func (r SplitRange) String() string {
	switch {
	case r.Offset == 0 && r.Length < 0:
		return r.Name
	case r.Length < 0:
		return fmt.Sprintf("%s[%d:]", r.Name, r.Offset)
	case r.Offset == 0:
		return fmt.Sprintf("%s[:%d]", r.Name, r.Length)
	default:
		return fmt.Sprintf("%s[%d:%d]", r.Name, r.Offset, r.Offset+r.Length)
	}
}
