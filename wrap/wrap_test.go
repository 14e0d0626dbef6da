package wrap_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"

	"github.com/andrewdmarques/Penn-VCC-CRF-Generator/wrap"
)

// runeWidth measures one unit per rune, which keeps expectations readable.
func runeWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s))
}

func TestLines(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width float64
		want  []string
	}{
		{"empty", "", 10, nil},
		{"blank", "  \t\n ", 10, nil},
		{"single word", "Name?", 10, []string{"Name?"}},
		{"fits exactly", "abc def", 7, []string{"abc def"}},
		{"breaks before overflowing word", "abc def", 6, []string{"abc", "def"}},
		{"collapses whitespace", "a   b\n\tc", 10, []string{"a b c"}},
		{"greedy packing", "one two three four five", 9, []string{"one two", "three", "four five"}},
		{"overlong word alone", "tiny enormousword tiny", 5, []string{"tiny", "enormousword", "tiny"}},
		{"overlong first word", "enormousword a", 5, []string{"enormousword", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrap.Lines(tt.text, tt.width, runeWidth)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Lines(%q, %v) mismatch (-want +got):\n%s", tt.text, tt.width, diff)
			}
		})
	}
}

func TestLinesWidthBound(t *testing.T) {
	text := "Over the past two weeks, how often have you been bothered by " +
		"little interest or pleasure in doing things? Supercalifragilisticexpialidocious " +
		"answers are allowed but discouraged."

	for _, width := range []float64{1, 5, 12, 20, 33, 80, 500} {
		for _, line := range wrap.Lines(text, width, runeWidth) {
			if runeWidth(line) <= width {
				continue
			}
			if strings.Contains(line, " ") {
				t.Errorf("width %v: multi-word line %q overflows (%v)", width, line, runeWidth(line))
			}
		}
	}
}

func TestLinesCompleteness(t *testing.T) {
	texts := []string{
		"Name?",
		"Please describe  any\tadverse events since the last visit, including onset date.",
		"a b c d e f g h i j k l m n o p",
		"averyveryverylongsingleword followed by short ones",
	}
	for _, text := range texts {
		for _, width := range []float64{3, 10, 25, 1000} {
			lines := wrap.Lines(text, width, runeWidth)
			got := strings.Fields(strings.Join(lines, " "))
			if diff := cmp.Diff(strings.Fields(text), got); diff != "" {
				t.Errorf("width %v: words changed (-want +got):\n%s", width, diff)
			}
			for _, line := range lines {
				if line == "" {
					t.Errorf("width %v: empty line emitted for %q", width, text)
				}
			}
		}
	}
}

func TestCount(t *testing.T) {
	if got := wrap.Count("", 10, runeWidth); got != 0 {
		t.Errorf("Count(blank) = %d, want 0", got)
	}
	if got := wrap.Count("one two three", 7, runeWidth); got != 2 {
		t.Errorf("Count = %d, want 2", got)
	}
}
