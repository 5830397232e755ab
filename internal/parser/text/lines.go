package text

import "strings"

// RawLine is a single trimmed, non-empty line of the source text.
type RawLine struct {
	Index   int // position in the original text
	Content string
}

// NormalizeLines splits a text blob into trimmed, non-empty lines in
// original order. An empty input yields an empty sequence; downstream
// stages handle that by producing zero invoices, not by failing.
func NormalizeLines(text string) []RawLine {
	var lines []RawLine
	for i, raw := range strings.Split(text, "\n") {
		content := strings.TrimSpace(raw)
		if content == "" {
			continue
		}
		lines = append(lines, RawLine{Index: i, Content: content})
	}
	return lines
}
