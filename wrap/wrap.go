// Package wrap breaks text into lines that fit a measured width.
//
// The measurement is injected, so callers can wrap against any font
// backend (or a fake one in tests) without this package knowing about it.
package wrap

import "strings"

// MeasureFunc returns the rendered width of s.
type MeasureFunc func(s string) float64

// Lines splits text on whitespace and greedily packs words into lines whose
// measured width does not exceed maxWidth. A word that is wider than
// maxWidth on its own is emitted as a line by itself; words are never
// split. Blank text yields no lines.
func Lines(text string, maxWidth float64, measure MeasureFunc) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var (
		lines []string
		line  []string
	)
	for _, word := range words {
		if len(line) == 0 {
			line = append(line, word)
			continue
		}
		candidate := strings.Join(append(line, word), " ")
		if measure(candidate) > maxWidth {
			lines = append(lines, strings.Join(line, " "))
			line = []string{word}
			continue
		}
		line = append(line, word)
	}
	return append(lines, strings.Join(line, " "))
}

// Count returns the number of lines Lines would produce.
func Count(text string, maxWidth float64, measure MeasureFunc) int {
	return len(Lines(text, maxWidth, measure))
}
