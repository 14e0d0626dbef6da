// Package pageops combines finished PDF documents.
//
// Input page counts come from the Geek0x0/pdf reader; pages are copied by
// importing them as templates into a new fpdf document with the gofpdi
// contrib package.
package pageops

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Geek0x0/pdf"
	gofpdf "github.com/go-pdf/fpdf"
	"github.com/go-pdf/fpdf/contrib/gofpdi"
)

// ErrNoInput is returned when there is nothing to merge.
var ErrNoInput = errors.New("pageops: no input files provided")

// Letter page size in points, used when an imported page reports no
// media box.
const (
	letterWidth  = 612
	letterHeight = 792
)

// PageCount returns the number of pages in a PDF file.
func PageCount(filename string) (int, error) {
	f, r, err := pdf.Open(filename)
	if err != nil {
		return 0, fmt.Errorf("pageops: reading %s: %w", filename, err)
	}
	defer f.Close()
	return r.NumPage(), nil
}

// importPage imports a single page from a source file into the target PDF.
// Returns the template ID and page dimensions.
func importPage(doc *gofpdf.Fpdf, imp *gofpdi.Importer, sourceFile string, pageNum int) (tplID int, w, h float64) {
	tplID = imp.ImportPage(doc, sourceFile, pageNum, "/MediaBox")
	sizes := imp.GetPageSizes()
	if dims, ok := sizes[pageNum]; ok {
		if mb, ok := dims["/MediaBox"]; ok {
			w = mb["w"]
			h = mb["h"]
		}
	}
	return
}

// writePDFToFile writes the PDF to a file, removing it again if the write
// fails.
func writePDFToFile(doc *gofpdf.Fpdf, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("pageops: creating %s: %w", filename, err)
	}
	if err := writePDF(doc, f); err != nil {
		f.Close()
		os.Remove(filename)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(filename)
		return fmt.Errorf("pageops: closing %s: %w", filename, err)
	}
	return nil
}

func writePDF(doc *gofpdf.Fpdf, w io.Writer) error {
	if err := doc.Output(w); err != nil {
		return fmt.Errorf("pageops: writing merged document: %w", err)
	}
	return nil
}
