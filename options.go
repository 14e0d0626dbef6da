package crfgen

import (
	"io"
	"log"

	"github.com/andrewdmarques/Penn-VCC-CRF-Generator/layout"
	"github.com/andrewdmarques/Penn-VCC-CRF-Generator/pdfcanvas"
)

// Option is a functional option for configuring a Generator via New.
type Option func(*settings)

type settings struct {
	version         string
	outputDir       string
	namePattern     string
	combinedPattern string
	geometry        layout.Geometry
	headerAlign     layout.Align
	numbering       bool
	workers         int
	order           Order
	forms           []string
	barcode         pdfcanvas.Symbology
	footer          bool
	combined        bool
	logger          *log.Logger
}

func defaultSettings() settings {
	return settings{
		outputDir:       ".",
		namePattern:     DefaultNamePattern,
		combinedPattern: DefaultCombinedPattern,
		geometry:        layout.Letter(),
		workers:         1,
		footer:          true,
		combined:        true,
		logger:          log.New(io.Discard, "", 0),
	}
}

// WithVersion sets the version tag used in file names and footers.
func WithVersion(version string) Option {
	return func(s *settings) {
		s.version = version
	}
}

// WithOutputDir sets the directory documents are written to. It is created
// if missing.
func WithOutputDir(dir string) Option {
	return func(s *settings) {
		s.outputDir = dir
	}
}

// WithNamePattern sets the pongo2 pattern for per-form file names.
func WithNamePattern(pattern string) Option {
	return func(s *settings) {
		s.namePattern = pattern
	}
}

// WithCombinedPattern sets the pongo2 pattern for the merged file name.
func WithCombinedPattern(pattern string) Option {
	return func(s *settings) {
		s.combinedPattern = pattern
	}
}

// WithGeometry sets the page geometry of every document.
func WithGeometry(g layout.Geometry) Option {
	return func(s *settings) {
		s.geometry = g
	}
}

// WithHeaderAlign positions the per-page header.
func WithHeaderAlign(a layout.Align) Option {
	return func(s *settings) {
		s.headerAlign = a
	}
}

// WithNumbering prefixes every question with its number within the form.
func WithNumbering(on bool) Option {
	return func(s *settings) {
		s.numbering = on
	}
}

// WithWorkers sets how many forms are rendered concurrently. Values below
// one mean one.
func WithWorkers(n int) Option {
	return func(s *settings) {
		s.workers = n
	}
}

// WithOrder sets the form order used for rendering and merging.
func WithOrder(o Order) Option {
	return func(s *settings) {
		s.order = o
	}
}

// WithForms restricts generation to the named forms.
func WithForms(names ...string) Option {
	return func(s *settings) {
		s.forms = append([]string(nil), names...)
	}
}

// WithBarcode adds a footer barcode to every page.
func WithBarcode(sym pdfcanvas.Symbology) Option {
	return func(s *settings) {
		s.barcode = sym
	}
}

// WithFooter turns the page footer on or off. It is on by default.
func WithFooter(on bool) Option {
	return func(s *settings) {
		s.footer = on
	}
}

// WithCombined turns the merged document on or off. It is on by default.
func WithCombined(on bool) Option {
	return func(s *settings) {
		s.combined = on
	}
}

// WithLogger sets the logger progress is reported to. By default nothing
// is logged.
func WithLogger(l *log.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}
