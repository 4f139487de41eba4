// Package prompt turns a classification request into completion-provider text
// and reads the predicted label back out of the completion.
package prompt

import (
	"strings"

	"github.com/ressKim-io/promptclf/internal/domain/entity"
)

const (
	preamble      = "You are an assistant that classifies texts into the following categories:\n"
	examplesIntro = "Here are some example texts and their corresponding labels: \n\n"
	instruction   = "Please read the following text and provide the most appropriate label.\n"
	labelCue      = "Label: "
)

// Build renders the prompt for inputText.
//
// Labels are listed in set order and examples in slice order, so equal inputs
// always give identical output. A nil and an empty examples slice render the same.
// Texts are wrapped in double quotes without escaping. The prompt ends with the
// label cue and no newline so the completion continues with the label itself.
func Build(inputText string, labels *entity.LabelSet, examples []entity.Example) string {
	var b strings.Builder

	b.WriteString(preamble)
	b.WriteString(LabelBlock(labels))
	b.WriteString("\n\n")
	b.WriteString(ExampleBlock(examples))
	b.WriteString(instruction)
	writeText(&b, inputText)
	b.WriteString(labelCue)

	return b.String()
}

// LabelBlock renders one "- <id>: <description>" line per label.
// Descriptions are written verbatim, including empty ones.
func LabelBlock(labels *entity.LabelSet) string {
	all := labels.Labels()
	lines := make([]string, 0, len(all))
	for _, l := range all {
		lines = append(lines, "- "+l.ID+": "+l.Description)
	}
	return strings.Join(lines, "\n")
}

// ExampleBlock renders the few-shot section, or "" when there are no examples.
func ExampleBlock(examples []entity.Example) string {
	if len(examples) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(examplesIntro)
	for _, ex := range examples {
		writeText(&b, ex.Text)
		b.WriteString(labelCue)
		b.WriteString(ex.Label)
		b.WriteString("\n\n")
	}
	return b.String()
}

func writeText(b *strings.Builder, text string) {
	b.WriteString(`Text: "`)
	b.WriteString(text)
	b.WriteString("\"\n")
}
