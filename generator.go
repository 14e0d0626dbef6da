// Package crfgen turns questionnaire records into printable PDF forms: one
// document per form and a combined document with every form in order.
//
// The layout itself lives in package layout; this package owns the run:
// grouping records into forms, naming and writing files, rendering forms
// concurrently and merging the results.
package crfgen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/andrewdmarques/Penn-VCC-CRF-Generator/field"
	"github.com/andrewdmarques/Penn-VCC-CRF-Generator/layout"
	"github.com/andrewdmarques/Penn-VCC-CRF-Generator/pageops"
	"github.com/andrewdmarques/Penn-VCC-CRF-Generator/pdfcanvas"
)

// Document describes one written form document.
type Document struct {
	Form    string `json:"form"`
	Path    string `json:"path"`
	Pages   int    `json:"pages"`
	Records int    `json:"records"`
}

// Report is the outcome of a run. Documents and Failures are in form order.
type Report struct {
	Documents     []Document
	Failures      []*FormError
	Combined      string // path of the merged document, "" if not written
	CombinedPages int
	MergeErr      error
}

// Failed reports whether any form or the merge failed.
func (r *Report) Failed() bool {
	return len(r.Failures) > 0 || r.MergeErr != nil
}

// Err joins every failure of the run, or returns nil.
func (r *Report) Err() error {
	var errs []error
	for _, f := range r.Failures {
		errs = append(errs, f)
	}
	if r.MergeErr != nil {
		errs = append(errs, r.MergeErr)
	}
	return errors.Join(errs...)
}

// Generator renders forms to files. It holds no per-run state and may be
// used for several runs.
type Generator struct {
	s        settings
	names    *namer
	combined string // file name of the merged document, "" when disabled
}

// New returns a Generator. A version is required, and the name patterns
// must render for it.
func New(opts ...Option) (*Generator, error) {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	if s.version == "" {
		return nil, ErrNoVersion
	}
	if err := s.geometry.Validate(); err != nil {
		return nil, err
	}
	if s.workers < 1 {
		s.workers = 1
	}
	names, err := newNamer(s.namePattern, s.combinedPattern)
	if err != nil {
		return nil, err
	}
	g := &Generator{s: s, names: names}
	if s.combined {
		if g.combined, err = names.Combined(s.version); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Forms returns the forms a run over records would render, in order.
func (g *Generator) Forms(records []field.Record) []Form {
	return selectForms(GroupForms(records, g.s.order), g.s.forms)
}

type job struct {
	index int
	form  Form
	path  string
}

type result struct {
	doc Document
	err *FormError
}

// Generate renders every form of records to its own file and then merges
// the documents that succeeded. A failing form is recorded in the report
// and does not stop the others.
//
// The returned error is reserved for failures that prevent the run as a
// whole: no records, an unusable output directory, or cancellation of ctx.
// Cancellation is checked between forms.
func (g *Generator) Generate(ctx context.Context, records []field.Record) (*Report, error) {
	forms := g.Forms(records)
	if len(forms) == 0 {
		return nil, ErrNoRecords
	}
	if err := os.MkdirAll(g.s.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("crfgen: creating output directory: %w", err)
	}

	results := make([]result, len(forms))
	jobs := g.plan(forms, results)

	queue := make(chan job)
	var wg sync.WaitGroup
	for w := 0; w < min(g.s.workers, len(jobs)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range queue {
				if err := ctx.Err(); err != nil {
					results[j.index].err = newFormError(j.form.Name, "render", err)
					continue
				}
				results[j.index] = g.render(j)
			}
		}()
	}
	for _, j := range jobs {
		queue <- j
	}
	close(queue)
	wg.Wait()

	report := &Report{}
	var paths []string
	for _, r := range results {
		if r.err != nil {
			g.s.logger.Printf("form %s: %v", r.err.Form, r.err.Err)
			report.Failures = append(report.Failures, r.err)
			continue
		}
		report.Documents = append(report.Documents, r.doc)
		paths = append(paths, r.doc.Path)
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}

	if g.s.combined {
		g.merge(report, paths)
	}
	return report, nil
}

// plan names every form's file. Forms that cannot be named get their
// failure recorded in results and no job.
func (g *Generator) plan(forms []Form, results []result) []job {
	var jobs []job
	used := map[string]string{}
	for i, f := range forms {
		name, err := g.names.File(f.Name, g.s.version)
		if err == nil {
			if other, ok := used[name]; ok {
				err = fmt.Errorf("%w: %s (also form %q)", ErrDuplicateName, name, other)
			} else if g.combined != "" && name == g.combined {
				err = fmt.Errorf("%w: %s (combined document)", ErrDuplicateName, name)
			}
		}
		if err != nil {
			results[i].err = newFormError(f.Name, "name", err)
			continue
		}
		used[name] = f.Name
		jobs = append(jobs, job{index: i, form: f, path: filepath.Join(g.s.outputDir, name)})
	}
	return jobs
}

// render writes one form. The file is removed if anything fails.
func (g *Generator) render(j job) result {
	name := j.form.Name
	f, err := os.Create(j.path)
	if err != nil {
		return result{err: newFormError(name, "create", err)}
	}

	canvasOpts := []pdfcanvas.Option{pdfcanvas.WithGeometry(g.s.geometry)}
	if g.s.footer {
		canvasOpts = append(canvasOpts,
			pdfcanvas.WithFooter(name, g.s.version),
			pdfcanvas.WithBarcode(g.s.barcode))
	}
	canvas := pdfcanvas.New(f, canvasOpts...)

	pages, err := layout.RenderForm(canvas, name, j.form.Records, layout.Options{
		Geometry:    g.s.geometry,
		HeaderAlign: g.s.headerAlign,
		Numbering:   g.s.numbering,
		Observer: layout.Observer{
			Break: func(page int) { g.s.logger.Printf("form %s: page %d", name, page) },
		},
	})
	if err != nil {
		f.Close()
		os.Remove(j.path)
		return result{err: newFormError(name, "render", err)}
	}
	if err := f.Close(); err != nil {
		os.Remove(j.path)
		return result{err: newFormError(name, "close", err)}
	}

	g.s.logger.Printf("form %s: wrote %s (%d pages)", name, j.path, pages)
	return result{doc: Document{Form: name, Path: j.path, Pages: pages, Records: len(j.form.Records)}}
}

func (g *Generator) merge(report *Report, paths []string) {
	out := filepath.Join(g.s.outputDir, g.combined)
	if err := pageops.MergeFiles(out, paths...); err != nil {
		report.MergeErr = fmt.Errorf("crfgen: merging: %w", err)
		return
	}
	report.Combined = out

	pages, err := pageops.PageCount(out)
	if err != nil {
		report.MergeErr = fmt.Errorf("crfgen: counting merged pages: %w", err)
		return
	}
	report.CombinedPages = pages
	g.s.logger.Printf("combined %d documents into %s (%d pages)", len(paths), out, pages)
}
