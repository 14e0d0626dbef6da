// Package pdfcanvas implements layout.Canvas on top of an fpdf document.
//
// The layout engine works in points with the origin at the bottom-left
// corner; fpdf uses a top-left origin. All conversion happens here.
package pdfcanvas

import (
	"fmt"
	"io"

	gofpdf "github.com/go-pdf/fpdf"

	"github.com/andrewdmarques/Penn-VCC-CRF-Generator/layout"
)

// Canvas draws onto a single fpdf document and writes it to w on Save.
type Canvas struct {
	pdf *gofpdf.Fpdf
	w   io.Writer
	tr  func(string) string
	cfg config
}

var _ layout.Canvas = (*Canvas)(nil)

// New returns a canvas with its first page already started. The document
// is written to w when Save is called.
func New(w io.Writer, opts ...Option) *Canvas {
	cfg := config{geom: layout.Letter(), creator: "crfgen"}
	for _, opt := range opts {
		opt(&cfg)
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: cfg.geom.Width, Ht: cfg.geom.Height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCreator(cfg.creator, true)
	if cfg.form != "" {
		pdf.SetTitle(layout.FormTitle(cfg.form), true)
	}
	pdf.SetLineWidth(0.5)

	c := &Canvas{
		pdf: pdf,
		w:   w,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
		cfg: cfg,
	}
	if cfg.form != "" || cfg.version != "" {
		pdf.SetFooterFunc(c.footer)
	}
	pdf.AddPage()
	return c
}

// flip converts a bottom-left y coordinate to fpdf's top-left one.
func (c *Canvas) flip(y float64) float64 {
	return c.cfg.geom.Height - y
}

func (c *Canvas) DrawText(x, y float64, text string, font layout.Font) {
	c.pdf.SetFont(font.Family, font.Style, font.Size)
	c.pdf.Text(x, c.flip(y), c.tr(text))
}

func (c *Canvas) DrawRect(x, y, w, h float64) {
	c.pdf.Rect(x, c.flip(y+h), w, h, "D")
}

func (c *Canvas) DrawCircle(cx, cy, r float64) {
	c.pdf.Circle(cx, c.flip(cy), r, "D")
}

func (c *Canvas) MeasureText(text string, font layout.Font) float64 {
	c.pdf.SetFont(font.Family, font.Style, font.Size)
	return c.pdf.GetStringWidth(c.tr(text))
}

func (c *Canvas) NewPage() {
	c.pdf.AddPage()
}

// Pages returns the number of pages started so far.
func (c *Canvas) Pages() int {
	return c.pdf.PageNo()
}

// Save closes the document and writes it out. Errors recorded by fpdf while
// drawing, including footer barcode failures, are reported here.
func (c *Canvas) Save() error {
	if c.pdf.Err() {
		return fmt.Errorf("pdfcanvas: %w", c.pdf.Error())
	}
	if err := c.pdf.Output(c.w); err != nil {
		return fmt.Errorf("pdfcanvas: writing document: %w", err)
	}
	return nil
}
