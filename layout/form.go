package layout

import (
	"fmt"

	"github.com/andrewdmarques/Penn-VCC-CRF-Generator/field"
)

// Run is a unit of layout: one standalone record, or a contiguous group of
// records sharing a matrix name.
type Run struct {
	Matrix  string // "" for a standalone record
	Records []field.Record
}

// IsMatrix reports whether the run is drawn as a grid.
func (r Run) IsMatrix() bool {
	return r.Matrix != ""
}

// Partition splits records, in order, into runs. Consecutive records with
// the same non-empty matrix name form one matrix run; every other record is
// a run of its own. Two groups with the same name that are separated by
// other records stay separate runs, so no record ever moves.
func Partition(records []field.Record) []Run {
	var runs []Run
	for _, rec := range records {
		if rec.InMatrix() && len(runs) > 0 {
			last := &runs[len(runs)-1]
			if last.Matrix == rec.Matrix {
				last.Records = append(last.Records, rec)
				continue
			}
		}
		runs = append(runs, Run{Matrix: rec.Matrix, Records: []field.Record{rec}})
	}
	return runs
}

// Options configures RenderForm.
type Options struct {
	Geometry    Geometry // zero value means Letter
	HeaderAlign Align
	Numbering   bool // prefix questions with "N. "
	Observer    Observer
}

// RenderForm lays out the records of one form on c and saves the document.
// It returns the number of pages produced.
func RenderForm(c Canvas, form string, records []field.Record, opts Options) (int, error) {
	g := opts.Geometry
	if g == (Geometry{}) {
		g = Letter()
	}
	if err := g.Validate(); err != nil {
		return 0, err
	}

	flow := NewFlow(c, g, form, opts.HeaderAlign, opts.Observer)
	fields := NewFieldRenderer(c, g, opts.Numbering)
	matrices := NewMatrixRenderer(c, g, opts.Numbering)

	number := 1
	for _, run := range Partition(records) {
		var content Content
		if run.IsMatrix() {
			content = matrices.Layout(run.Records, number)
		} else {
			content = fields.Layout(run.Records[0], number)
		}
		if err := flow.Place(content); err != nil {
			return flow.Page(), fmt.Errorf("layout: form %q: %w", form, err)
		}
		number += len(run.Records)
	}

	pages := flow.Page()
	if err := flow.Close(); err != nil {
		return pages, err
	}
	return pages, nil
}
