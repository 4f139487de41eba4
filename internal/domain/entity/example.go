package entity

// Example is a labeled text used as few-shot context.
// Label is not checked against any LabelSet.
type Example struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// NewExample creates an Example
func NewExample(text, label string) Example {
	return Example{Text: text, Label: label}
}
