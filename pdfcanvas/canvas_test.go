package pdfcanvas_test

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"unicode"

	"github.com/Geek0x0/pdf"

	"github.com/andrewdmarques/Penn-VCC-CRF-Generator/field"
	"github.com/andrewdmarques/Penn-VCC-CRF-Generator/layout"
	"github.com/andrewdmarques/Penn-VCC-CRF-Generator/pdfcanvas"
)

func readBack(t *testing.T, b []byte) *pdf.Reader {
	t.Helper()
	if !bytes.HasPrefix(b, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", b[:min(len(b), 16)])
	}
	r, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	return r
}

func squash(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func pageText(t *testing.T, r *pdf.Reader, page int) string {
	t.Helper()
	text, err := r.Page(page).GetPlainText(context.Background(), nil)
	if err != nil {
		t.Fatalf("page %d text: %v", page, err)
	}
	return squash(text)
}

func TestCanvasPagesAndText(t *testing.T) {
	var buf bytes.Buffer
	c := pdfcanvas.New(&buf)
	c.DrawText(50, 700, "Hello", layout.QuestionFont)
	c.DrawRect(50, 600, 100, 18)
	c.DrawCircle(60, 580, 4)
	c.NewPage()
	c.DrawText(50, 700, "World", layout.TitleFont)
	if c.Pages() != 2 {
		t.Errorf("Pages = %d, want 2", c.Pages())
	}
	if err := c.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	r := readBack(t, buf.Bytes())
	if r.NumPage() != 2 {
		t.Fatalf("NumPage = %d, want 2", r.NumPage())
	}
	if got := pageText(t, r, 1); !strings.Contains(got, "Hello") {
		t.Errorf("page 1 text %q lacks Hello", got)
	}
	if got := pageText(t, r, 2); !strings.Contains(got, "World") || strings.Contains(got, "Hello") {
		t.Errorf("page 2 text = %q", got)
	}
}

func TestCanvasUsesBottomLeftOrigin(t *testing.T) {
	var buf bytes.Buffer
	c := pdfcanvas.New(&buf)
	c.DrawText(72, 700, "X", layout.QuestionFont)
	if err := c.Save(); err != nil {
		t.Fatal(err)
	}

	r := readBack(t, buf.Bytes())
	for _, txt := range r.Page(1).Content().Text {
		if txt.S != "X" {
			continue
		}
		if math.Abs(txt.X-72) > 0.01 || math.Abs(txt.Y-700) > 0.01 {
			t.Errorf("X drawn at (%v, %v), want (72, 700)", txt.X, txt.Y)
		}
		return
	}
	t.Fatal("text X not found")
}

func TestMeasureText(t *testing.T) {
	c := pdfcanvas.New(&bytes.Buffer{})
	short := c.MeasureText("abc", layout.QuestionFont)
	long := c.MeasureText("abcabc", layout.QuestionFont)
	if short <= 0 || math.Abs(long-2*short) > 1e-6 {
		t.Errorf("widths %v and %v are not proportional", short, long)
	}
	if big := c.MeasureText("abc", layout.TitleFont); big <= short {
		t.Errorf("16pt bold width %v not wider than 10pt %v", big, short)
	}
}

func TestFooterOnEveryPage(t *testing.T) {
	for _, sym := range []pdfcanvas.Symbology{pdfcanvas.NoBarcode, pdfcanvas.Code128, pdfcanvas.PDF417} {
		t.Run(sym.String(), func(t *testing.T) {
			var buf bytes.Buffer
			c := pdfcanvas.New(&buf, pdfcanvas.WithFooter("vitals", "v2"), pdfcanvas.WithBarcode(sym))
			c.DrawText(50, 700, "Body", layout.QuestionFont)
			c.NewPage()
			c.NewPage()
			if err := c.Save(); err != nil {
				t.Fatalf("save: %v", err)
			}

			r := readBack(t, buf.Bytes())
			if r.NumPage() != 3 {
				t.Fatalf("NumPage = %d, want 3", r.NumPage())
			}
			for p := 1; p <= 3; p++ {
				got := pageText(t, r, p)
				if want := squash(pdfcanvas.FooterText(p, "vitals")); !strings.Contains(got, want) {
					t.Errorf("page %d text %q lacks %q", p, got, want)
				}
				if !strings.Contains(got, "Version:v2") {
					t.Errorf("page %d text %q lacks version", p, got)
				}
			}
		})
	}
}

func TestRenderFormOnPDF(t *testing.T) {
	var buf bytes.Buffer
	c := pdfcanvas.New(&buf, pdfcanvas.WithFooter("demographics", "1.0"))
	records := []field.Record{
		{Form: "demographics", Question: "Name?", Type: field.Text},
		{Form: "demographics", Question: "Sex?", Type: field.Radio, Choices: []field.Choice{{Value: "1", Label: "Male"}, {Value: "2", Label: "Female"}}},
	}
	pages, err := layout.RenderForm(c, "demographics", records, layout.Options{Numbering: true})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if pages != 1 {
		t.Errorf("pages = %d, want 1", pages)
	}

	got := pageText(t, readBack(t, buf.Bytes()), 1)
	for _, want := range []string{"DEMOGRAPHICS-Page1", "1.Name?", "2.Sex?", "Male", "Female"} {
		if !strings.Contains(got, want) {
			t.Errorf("page text %q lacks %q", got, want)
		}
	}
}

func TestParseSymbology(t *testing.T) {
	tests := map[string]pdfcanvas.Symbology{
		"":        pdfcanvas.NoBarcode,
		"none":    pdfcanvas.NoBarcode,
		"Code128": pdfcanvas.Code128,
		" pdf417": pdfcanvas.PDF417,
	}
	for in, want := range tests {
		got, err := pdfcanvas.ParseSymbology(in)
		if err != nil || got != want {
			t.Errorf("ParseSymbology(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := pdfcanvas.ParseSymbology("qr"); !errors.Is(err, pdfcanvas.ErrUnknownSymbology) {
		t.Errorf("ParseSymbology(qr) err = %v", err)
	}
}

func TestSaveReportsWriteError(t *testing.T) {
	c := pdfcanvas.New(failingWriter{})
	c.DrawText(50, 700, "x", layout.QuestionFont)
	if err := c.Save(); err == nil {
		t.Fatal("expected an error from a failing writer")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("write failed")
}
