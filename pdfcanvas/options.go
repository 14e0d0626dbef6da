package pdfcanvas

import "github.com/andrewdmarques/Penn-VCC-CRF-Generator/layout"

// Option configures a Canvas created with New.
type Option func(*config)

type config struct {
	geom    layout.Geometry
	form    string
	version string
	barcode Symbology
	creator string
}

// WithGeometry sets the page size. Only Width and Height are used by the
// canvas; the footer is placed inside Margin and FooterReserve.
func WithGeometry(g layout.Geometry) Option {
	return func(c *config) {
		c.geom = g
	}
}

// WithFooter enables the page footer: "Page N - Form: <form>" on the left
// and the version tag on the right.
func WithFooter(form, version string) Option {
	return func(c *config) {
		c.form = form
		c.version = version
	}
}

// WithBarcode adds a barcode identifying form, version and page to every
// footer. It has no effect without WithFooter.
func WithBarcode(s Symbology) Option {
	return func(c *config) {
		c.barcode = s
	}
}

// WithCreator sets the document creator metadata.
func WithCreator(creator string) Option {
	return func(c *config) {
		c.creator = creator
	}
}
