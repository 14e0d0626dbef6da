package dictionary

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andrewdmarques/Penn-VCC-CRF-Generator/field"
)

// ErrMissingColumn is returned when a required canonical column cannot be
// resolved from the source headers.
var ErrMissingColumn = errors.New("dictionary: required column missing")

// RowError reports a row that could not be turned into a record.
type RowError struct {
	Line     int    // 1-based line in the source
	Variable string // variable name of the row, if known
	Err      error
}

func (e *RowError) Error() string {
	if e.Variable != "" {
		return fmt.Sprintf("dictionary: line %d (%s): %v", e.Line, e.Variable, e.Err)
	}
	return fmt.Sprintf("dictionary: line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// ReadFile reads a CSV data dictionary from disk.
func ReadFile(path string, m Mapping) ([]field.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dictionary: open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, m)
}

// Read parses a CSV data dictionary. The first row holds the headers.
// Rows keep their source order. Rows without any content are skipped.
func Read(r io.Reader, m Mapping) ([]field.Record, error) {
	cr := csv.NewReader(skipBOM(r))
	cr.FieldsPerRecord = -1

	headers, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: %s (empty input)", ErrMissingColumn, ColForm)
	}
	if err != nil {
		return nil, fmt.Errorf("dictionary: reading header: %w", err)
	}

	cols := make(map[string]int)
	for i, h := range headers {
		name := m.resolve(strings.TrimSpace(h))
		if name == "" {
			continue
		}
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	for _, required := range []string{ColForm, ColQuestion} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	var records []field.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dictionary: %w", err)
		}
		line, _ := cr.FieldPos(0)

		get := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		if isBlank(row) {
			continue
		}

		rec := field.Record{
			Form:     get(ColForm),
			Variable: get(ColVariable),
			Question: get(ColQuestion),
			Type:     field.ParseType(get(ColType), m.Types),
			Matrix:   get(ColMatrix),
			Section:  get(ColSection),
			Note:     get(ColNote),
			Required: isTruthy(get(ColRequired)),
		}
		if rec.Form == "" {
			return nil, &RowError{Line: line, Variable: rec.Variable, Err: errors.New("form name is empty")}
		}
		// Other types reuse the choice column for calculations and slider
		// labels, which are not value,label lists.
		if rec.Type.HasChoices() || rec.InMatrix() {
			rec.Choices, err = field.ParseChoices(get(ColChoice))
			if err != nil {
				return nil, &RowError{Line: line, Variable: rec.Variable, Err: err}
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// skipBOM drops a leading UTF-8 byte order mark, which spreadsheet exports
// like to add and which would otherwise break a quoted first header.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(3); err == nil && bytes.Equal(b, []byte{0xEF, 0xBB, 0xBF}) {
		br.Discard(3)
	}
	return br
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func isTruthy(v string) bool {
	switch strings.ToLower(v) {
	case "y", "yes", "1", "true":
		return true
	}
	return false
}
