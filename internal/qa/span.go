package qa

import (
	"strings"
	"unicode/utf8"
)

// LocateSpan returns the character offsets of the first occurrence of span in text,
// or -1, -1 when span does not occur verbatim.
func LocateSpan(text, span string) (int, int) {
	if span == "" {
		return -1, -1
	}
	idx := strings.Index(text, span)
	if idx < 0 {
		return -1, -1
	}
	start := utf8.RuneCountInString(text[:idx])
	return start, start + utf8.RuneCountInString(span)
}
