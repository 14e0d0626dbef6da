package field

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedChoice is returned for a choice entry without a comma.
var ErrMalformedChoice = errors.New("field: choice entry has no value,label separator")

// ChoiceError reports which entry of a choice string could not be parsed.
type ChoiceError struct {
	Entry string // the offending entry, trimmed
	Index int    // 0-based position of the entry
	Err   error
}

func (e *ChoiceError) Error() string {
	return fmt.Sprintf("field: choice %d %q: %v", e.Index+1, e.Entry, e.Err)
}

func (e *ChoiceError) Unwrap() error {
	return e.Err
}

// ParseChoices parses pipe-delimited "value,label" pairs. Each entry is split
// on its first comma only, so labels may contain commas. A blank string
// yields nil. An entry without a comma is an error: rendering options whose
// values and labels cannot be told apart would silently corrupt the form.
func ParseChoices(raw string) ([]Choice, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	entries := strings.Split(raw, "|")
	choices := make([]Choice, 0, len(entries))
	for i, entry := range entries {
		entry = strings.TrimSpace(entry)
		value, label, ok := strings.Cut(entry, ",")
		if !ok {
			return nil, &ChoiceError{Entry: entry, Index: i, Err: ErrMalformedChoice}
		}
		choices = append(choices, Choice{
			Value: strings.TrimSpace(value),
			Label: strings.TrimSpace(label),
		})
	}
	return choices, nil
}

// Labels returns the labels of choices in order.
func Labels(choices []Choice) []string {
	labels := make([]string, len(choices))
	for i, c := range choices {
		labels[i] = c.Label
	}
	return labels
}
