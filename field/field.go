// Package field defines the records a questionnaire definition is made of.
//
// A Record is one row of the data dictionary: a question, the kind of
// answer it expects, an optional list of choices, and the keys used to
// group rows into forms and matrix sections. Records are read once and
// never modified afterwards.
package field

import "strings"

// Type specifies the kind of input affordance drawn for a field.
type Type int

const (
	Other    Type = iota // unrecognised or absent type; label only
	Text                 // single-line text box
	Notes                // multi-line free text area
	Radio                // single choice, drawn with circles
	Checkbox             // multiple choice, drawn with squares
)

var typeNames = map[Type]string{
	Other:    "other",
	Text:     "text",
	Notes:    "notes",
	Radio:    "radio",
	Checkbox: "checkbox",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "other"
}

// HasChoices reports whether fields of this type carry a choice list.
func (t Type) HasChoices() bool {
	return t == Radio || t == Checkbox
}

// ParseType maps a type name from the source data to a Type.
// Matching is case-insensitive; aliases are consulted after the built-in
// names. Anything unrecognised, including the empty string, is Other.
func ParseType(name string, aliases map[string]string) Type {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[key]; ok {
		key = strings.ToLower(strings.TrimSpace(alias))
	}
	for t, n := range typeNames {
		if n == key && t != Other {
			return t
		}
	}
	return Other
}

// Choice is one (value, label) option of a radio or checkbox field.
type Choice struct {
	Value string
	Label string
}

// Record is one field of a form.
type Record struct {
	Form     string   // form the field belongs to
	Variable string   // variable name, informational
	Question string   // label text, may contain markup
	Type     Type     // input affordance
	Choices  []Choice // nil when the source has no choices
	Matrix   string   // matrix group name, "" for standalone fields
	Section  string   // section header drawn above the field
	Note     string   // field note drawn below the input
	Required bool
}

// InMatrix reports whether the record belongs to a matrix group.
func (r Record) InMatrix() bool {
	return r.Matrix != ""
}
