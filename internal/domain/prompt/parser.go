package prompt

import "strings"

// ParseLabel returns the completion with surrounding whitespace removed.
//
// The result is not checked against the requested labels, is not cut at the
// first newline and keeps an echoed "Label:" cue. Empty input gives "".
func ParseLabel(completion string) string {
	return strings.TrimSpace(completion)
}
