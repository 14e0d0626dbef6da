package pdfcanvas

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	gofpdf "github.com/go-pdf/fpdf"
	pdf417 "github.com/ruudk/golang-pdf417"
)

// ErrUnknownSymbology is returned by ParseSymbology for unsupported names.
var ErrUnknownSymbology = errors.New("pdfcanvas: unknown barcode symbology")

// Symbology selects the footer barcode.
type Symbology int

const (
	NoBarcode Symbology = iota
	Code128
	PDF417
)

func (s Symbology) String() string {
	switch s {
	case NoBarcode:
		return "none"
	case Code128:
		return "code128"
	case PDF417:
		return "pdf417"
	}
	return fmt.Sprintf("Symbology(%d)", int(s))
}

// ParseSymbology maps "", "none", "code128" or "pdf417" to a Symbology.
func ParseSymbology(name string) (Symbology, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return NoBarcode, nil
	case "code128":
		return Code128, nil
	case "pdf417":
		return PDF417, nil
	}
	return NoBarcode, fmt.Errorf("%w: %q", ErrUnknownSymbology, name)
}

const (
	footerSize     = 8
	footerBaseline = 25 // above the bottom edge
	barcodeBottom  = 32
	barcodeWidth   = 144
	barcodeMaxH    = 36
	code128Height  = 20 // pixels
	pdf417Columns  = 4
	pdf417Security = 2
)

// FooterText returns the left footer line for a page.
func FooterText(page int, form string) string {
	return fmt.Sprintf("Page %d - Form: %s", page, form)
}

// BarcodeContent returns the payload encoded in a page's barcode.
func BarcodeContent(form, version string, page int) string {
	return fmt.Sprintf("%s|%s|%d", form, version, page)
}

func (c *Canvas) footer() {
	pdf := c.pdf
	g := c.cfg.geom
	page := pdf.PageNo()
	y := g.Height - footerBaseline

	pdf.SetFont("Helvetica", "", footerSize)
	pdf.SetTextColor(128, 128, 128)
	pdf.Text(g.Margin, y, c.tr(FooterText(page, c.cfg.form)))
	if v := c.cfg.version; v != "" {
		text := c.tr("Version: " + v)
		pdf.Text(g.Width-g.Margin-pdf.GetStringWidth(text), y, text)
	}
	pdf.SetTextColor(0, 0, 0)

	if c.cfg.barcode == NoBarcode {
		return
	}
	if err := c.drawBarcode(page); err != nil {
		pdf.SetError(err)
	}
}

func (c *Canvas) drawBarcode(page int) error {
	img, err := encodeBarcode(c.cfg.barcode, BarcodeContent(c.cfg.form, c.cfg.version, page))
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("pdfcanvas: encoding barcode: %w", err)
	}

	name := fmt.Sprintf("barcode-p%d", page)
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	c.pdf.RegisterImageOptionsReader(name, opts, &buf)
	if c.pdf.Err() {
		return c.pdf.Error()
	}

	b := img.Bounds()
	w, h := float64(barcodeWidth), float64(barcodeMaxH)
	if c.cfg.barcode == PDF417 {
		h = w * float64(b.Dy()) / float64(b.Dx())
		if h > barcodeMaxH {
			w, h = w*barcodeMaxH/h, barcodeMaxH
		}
	} else {
		h = barcodeMaxH / 2
	}
	g := c.cfg.geom
	x := (g.Width - w) / 2
	c.pdf.ImageOptions(name, x, g.Height-barcodeBottom-h, w, h, false, opts, 0, "")
	return nil
}

// encodeBarcode renders content as an 8-bit grayscale image. fpdf does not
// accept 16-bit PNGs, which is what the barcode images encode to directly.
func encodeBarcode(s Symbology, content string) (image.Image, error) {
	var src image.Image
	switch s {
	case Code128:
		bc, err := code128.Encode(content)
		if err != nil {
			return nil, fmt.Errorf("pdfcanvas: code128 %q: %w", content, err)
		}
		scaled, err := barcode.Scale(bc, bc.Bounds().Dx(), code128Height)
		if err != nil {
			return nil, fmt.Errorf("pdfcanvas: scaling barcode: %w", err)
		}
		src = scaled
	case PDF417:
		src = pdf417.Encode(content, pdf417Columns, pdf417Security)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownSymbology, s)
	}

	gray := image.NewGray(src.Bounds())
	draw.Draw(gray, gray.Bounds(), src, src.Bounds().Min, draw.Src)
	return gray, nil
}
