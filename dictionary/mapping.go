// Package dictionary reads questionnaire definitions from CSV data
// dictionaries into field records.
//
// Source headers are resolved to canonical column names through a Mapping
// before any row is interpreted, so exports whose headers differ from the
// canonical names only need a different mapping file.
package dictionary

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Canonical column names understood by Read.
const (
	ColForm     = "form"
	ColQuestion = "question"
	ColType     = "type"
	ColChoice   = "choice"
	ColMatrix   = "matrix_name"
	ColVariable = "variable_name"
	ColSection  = "section_header"
	ColNote     = "field_note"
	ColRequired = "required_field"
)

var canonical = map[string]bool{
	ColForm: true, ColQuestion: true, ColType: true, ColChoice: true,
	ColMatrix: true, ColVariable: true, ColSection: true, ColNote: true,
	ColRequired: true,
}

// Mapping resolves source headers to canonical column names and source type
// names to field types.
type Mapping struct {
	Columns map[string]string `yaml:"columns"` // source header -> canonical name
	Types   map[string]string `yaml:"types"`   // source type -> text, notes, radio, checkbox
}

// REDCapMapping returns the mapping for REDCap data dictionary exports.
func REDCapMapping() Mapping {
	return Mapping{
		Columns: map[string]string{
			"Variable / Field Name":                      ColVariable,
			"Form Name":                                  ColForm,
			"Section Header":                             ColSection,
			"Field Type":                                 ColType,
			"Field Label":                                ColQuestion,
			"Choices, Calculations, OR Slider Labels":    ColChoice,
			"Field Note":                                 ColNote,
			"Text Validation Type OR Show Slider Number": "validation_type",
			"Text Validation Min":                        "validation_min",
			"Text Validation Max":                        "validation_max",
			"Identifier?":                                "identifier",
			"Branching Logic (Show field only if...)":    "branching_logic",
			"Required Field?":                            ColRequired,
			"Custom Alignment":                           "custom_alignment",
			"Question Number (surveys only)":             "question_number",
			"Matrix Group Name":                          ColMatrix,
			"Matrix Ranking?":                            "matrix_ranking",
			"Field Annotation":                           "field_annotation",
		},
		Types: map[string]string{
			"dropdown": "radio",
		},
	}
}

// LoadMapping reads a YAML mapping file.
func LoadMapping(path string) (Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return Mapping{}, fmt.Errorf("dictionary: open mapping: %w", err)
	}
	defer f.Close()
	return ReadMapping(f)
}

// ReadMapping decodes a YAML mapping. An empty document yields an empty
// mapping, under which only canonical headers are recognised.
func ReadMapping(r io.Reader) (Mapping, error) {
	var m Mapping
	if err := yaml.NewDecoder(r).Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return Mapping{}, fmt.Errorf("dictionary: parse mapping: %w", err)
	}
	for header, name := range m.Columns {
		if name == "" {
			return Mapping{}, fmt.Errorf("dictionary: mapping for %q is empty", header)
		}
	}
	return m, nil
}

// Merge returns a copy of m with the entries of other added, other taking
// precedence.
func (m Mapping) Merge(other Mapping) Mapping {
	out := Mapping{
		Columns: make(map[string]string, len(m.Columns)+len(other.Columns)),
		Types:   make(map[string]string, len(m.Types)+len(other.Types)),
	}
	for k, v := range m.Columns {
		out.Columns[k] = v
	}
	for k, v := range other.Columns {
		out.Columns[k] = v
	}
	for k, v := range m.Types {
		out.Types[k] = v
	}
	for k, v := range other.Types {
		out.Types[k] = v
	}
	return out
}

// resolve returns the canonical name for a source header, or "" when the
// header is not of interest.
func (m Mapping) resolve(header string) string {
	if name, ok := m.Columns[header]; ok {
		if canonical[name] {
			return name
		}
		return ""
	}
	if canonical[header] {
		return header
	}
	return ""
}
