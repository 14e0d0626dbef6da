package pageops

import (
	"fmt"
	"io"

	gofpdf "github.com/go-pdf/fpdf"
	"github.com/go-pdf/fpdf/contrib/gofpdi"
)

// MergeFiles combines multiple PDF files into a single output file.
// Pages are added in order: all pages from the first file, then all from
// the second, etc. Each page keeps its own size.
func MergeFiles(outputPath string, inputPaths ...string) error {
	doc, err := merge(inputPaths)
	if err != nil {
		return err
	}
	return writePDFToFile(doc, outputPath)
}

// Merge combines multiple PDF files and writes the result to w.
func Merge(w io.Writer, inputPaths ...string) error {
	doc, err := merge(inputPaths)
	if err != nil {
		return err
	}
	return writePDF(doc, w)
}

func merge(inputPaths []string) (*gofpdf.Fpdf, error) {
	if len(inputPaths) == 0 {
		return nil, ErrNoInput
	}

	doc := gofpdf.New("P", "pt", "Letter", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetCreator("crfgen", true)

	// One importer for all inputs keeps template IDs unique in doc.
	imp := gofpdi.NewImporter()
	for _, inputPath := range inputPaths {
		if err := appendFile(doc, imp, inputPath); err != nil {
			return nil, fmt.Errorf("pageops: merging %s: %w", inputPath, err)
		}
	}
	return doc, nil
}

// appendFile imports all pages from a PDF file into the target PDF.
func appendFile(doc *gofpdf.Fpdf, imp *gofpdi.Importer, inputPath string) (err error) {
	pageCount, err := PageCount(inputPath)
	if err != nil {
		return err
	}

	// gofpdi panics on input it cannot parse.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("importing pages: %v", r)
		}
	}()

	for i := 1; i <= pageCount; i++ {
		tplID, w, h := importPage(doc, imp, inputPath, i)
		if w == 0 || h == 0 {
			w, h = letterWidth, letterHeight
		}

		doc.AddPageFormat("P", gofpdf.SizeType{Wd: w, Ht: h})
		imp.UseImportedTemplate(doc, tplID, 0, 0, w, h)
	}

	return doc.Error()
}
