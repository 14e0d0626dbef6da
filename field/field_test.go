package field

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseChoices(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []Choice
	}{
		{"blank", "  ", nil},
		{"two options", "1,Male|2,Female", []Choice{{"1", "Male"}, {"2", "Female"}}},
		{"spaces trimmed", " 1, Yes | 0, No ", []Choice{{"1", "Yes"}, {"0", "No"}}},
		{"label keeps commas", "1, Yes, sometimes|2, No, never", []Choice{{"1", "Yes, sometimes"}, {"2", "No, never"}}},
		{"empty label", "9,", []Choice{{"9", ""}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseChoices(tt.raw)
			if err != nil {
				t.Fatalf("ParseChoices(%q): %v", tt.raw, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseChoicesMalformed(t *testing.T) {
	_, err := ParseChoices("1,Yes|No answer|3,Maybe")
	if !errors.Is(err, ErrMalformedChoice) {
		t.Fatalf("expected ErrMalformedChoice, got %v", err)
	}
	var ce *ChoiceError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ChoiceError, got %T", err)
	}
	if ce.Index != 1 || ce.Entry != "No answer" {
		t.Errorf("ChoiceError = {Index:%d Entry:%q}, want {1 \"No answer\"}", ce.Index, ce.Entry)
	}
}

func TestParseType(t *testing.T) {
	aliases := map[string]string{"dropdown": "radio", "textarea": "Notes"}
	tests := []struct {
		in   string
		want Type
	}{
		{"text", Text},
		{"TEXT", Text},
		{" notes ", Notes},
		{"radio", Radio},
		{"checkbox", Checkbox},
		{"dropdown", Radio},
		{"textarea", Notes},
		{"", Other},
		{"descriptive", Other},
		{"other", Other},
	}
	for _, tt := range tests {
		if got := ParseType(tt.in, aliases); got != tt.want {
			t.Errorf("ParseType(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTypeString(t *testing.T) {
	if got := Checkbox.String(); got != "checkbox" {
		t.Errorf("Checkbox.String() = %q", got)
	}
	if got := Type(42).String(); got != "other" {
		t.Errorf("Type(42).String() = %q", got)
	}
	if !Radio.HasChoices() || Notes.HasChoices() {
		t.Error("HasChoices mismatch")
	}
}

func TestCleanQuestion(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Name?", "Name?"},
		{`<div style="padding-left: 3em">Date of visit</div>`, "Date of visit"},
		{"<b>Weight</b> &amp; height", "Weight & height"},
		{"<div>first</div><div>second</div>", "first second"},
		{"  padded  ", "padded"},
	}
	for _, tt := range tests {
		got := CleanQuestion(tt.in)
		// Whitespace runs are irrelevant to layout; compare words.
		if diff := cmp.Diff(strings.Fields(tt.want), strings.Fields(got)); diff != "" {
			t.Errorf("CleanQuestion(%q) = %q (-want +got):\n%s", tt.in, got, diff)
		}
	}
}

func TestLabels(t *testing.T) {
	got := Labels([]Choice{{"1", "Never"}, {"2", "Sometimes"}})
	if diff := cmp.Diff([]string{"Never", "Sometimes"}, got); diff != "" {
		t.Errorf("Labels mismatch (-want +got):\n%s", diff)
	}
}
