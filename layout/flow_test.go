package layout_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/andrewdmarques/Penn-VCC-CRF-Generator/field"
	"github.com/andrewdmarques/Penn-VCC-CRF-Generator/layout"
)

func textFields(form string, n int) []field.Record {
	records := make([]field.Record, n)
	for i := range records {
		records[i] = field.Record{Form: form, Type: field.Text, Question: fmt.Sprintf("Question number %d", i+1)}
	}
	return records
}

func spacer(h float64) layout.Block {
	return layout.Block{Height: h}
}

func TestFormTitle(t *testing.T) {
	tests := map[string]string{
		"adverse_events":    "ADVERSE EVENTS",
		"Demographics":      "DEMOGRAPHICS",
		"visit_1_follow_up": "VISIT 1 FOLLOW UP",
		"":                  "",
	}
	for in, want := range tests {
		if got := layout.FormTitle(in); got != want {
			t.Errorf("FormTitle(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseAlign(t *testing.T) {
	if layout.ParseAlign("Left") != layout.AlignLeft {
		t.Error("ParseAlign(Left) != AlignLeft")
	}
	if layout.ParseAlign("right") != layout.AlignRight || layout.ParseAlign("") != layout.AlignRight {
		t.Error("ParseAlign default is not AlignRight")
	}
}

func TestNewFlowDrawsHeaderAndTitle(t *testing.T) {
	rec := newRecorder()
	g := layout.Letter()
	f := layout.NewFlow(rec, g, "vital_signs", layout.AlignRight, layout.Observer{})

	header := "VITAL SIGNS - Page 1"
	want := []op{
		{Kind: "text", Page: 1, X: g.Width - g.Margin - rec.MeasureText(header, layout.HeaderFont), Y: 762, Text: header, Font: layout.HeaderFont},
		{Kind: "text", Page: 1, X: 50, Y: 722, Text: "VITAL SIGNS", Font: layout.TitleFont},
	}
	if diff := cmp.Diff(want, rec.ops); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
	if f.Y() != 682 {
		t.Errorf("cursor after title = %v, want 682", f.Y())
	}
	if f.State() != layout.OnPage || f.Page() != 1 {
		t.Errorf("state = %v page %d, want OnPage page 1", f.State(), f.Page())
	}
}

func TestFlowLeftAlignedHeader(t *testing.T) {
	rec := newRecorder()
	layout.NewFlow(rec, layout.Letter(), "a", layout.AlignLeft, layout.Observer{})
	if got := rec.ops[0]; got.X != 50 || got.Text != "A - Page 1" {
		t.Errorf("header op = %+v, want left-aligned at margin", got)
	}
}

func TestAdvanceMarksPageFull(t *testing.T) {
	rec := newRecorder()
	g := layout.Letter()
	f := layout.NewFlow(rec, g, "a", layout.AlignRight, layout.Observer{})

	f.Advance(f.Y() - g.Bottom())
	if f.State() != layout.OnPage {
		t.Fatalf("state at exactly the bottom = %v, want OnPage", f.State())
	}
	f.Advance(1)
	if f.State() != layout.PageBreaking {
		t.Fatalf("state below the bottom = %v, want PageBreaking", f.State())
	}
	if rec.page != 1 {
		t.Fatalf("new page started before anything was drawn")
	}

	if err := f.Place(layout.Content{Body: []layout.Block{spacer(10)}}); err != nil {
		t.Fatal(err)
	}
	if f.Page() != 2 || rec.page != 2 {
		t.Errorf("page = %d (canvas %d), want 2", f.Page(), rec.page)
	}
	if f.Y() != g.Top()-10 {
		t.Errorf("cursor = %v, want %v", f.Y(), g.Top()-10)
	}
}

func TestAdvanceIgnoresNonPositive(t *testing.T) {
	f := layout.NewFlow(newRecorder(), layout.Letter(), "a", layout.AlignRight, layout.Observer{})
	y := f.Y()
	f.Advance(0)
	f.Advance(-5)
	if f.Y() != y {
		t.Errorf("cursor moved from %v to %v", y, f.Y())
	}
}

func TestPlaceMovesContentToFreshPage(t *testing.T) {
	rec := newRecorder()
	g := layout.Letter()
	f := layout.NewFlow(rec, g, "a", layout.AlignRight, layout.Observer{})
	f.Advance(f.Y() - g.Bottom() - 30)

	var tops []float64
	mark := layout.Block{Height: 20, Draw: func(_ layout.Canvas, top float64) { tops = append(tops, top) }}
	if err := f.Place(layout.Content{Body: []layout.Block{mark, mark}}); err != nil {
		t.Fatal(err)
	}

	if f.Page() != 2 {
		t.Fatalf("page = %d, want 2", f.Page())
	}
	if diff := cmp.Diff([]float64{g.Top(), g.Top() - 20}, tops); diff != "" {
		t.Errorf("block tops mismatch (-want +got):\n%s", diff)
	}
}

func TestPlaceRepeatsHeadOnContinuationPages(t *testing.T) {
	rec := newRecorder()
	g := layout.Letter()
	f := layout.NewFlow(rec, g, "a", layout.AlignRight, layout.Observer{})

	headPages := map[int]int{}
	head := layout.Block{Height: 20, Draw: func(layout.Canvas, float64) { headPages[f.Page()]++ }}
	body := make([]layout.Block, 80)
	for i := range body {
		body[i] = spacer(20)
	}
	if err := f.Place(layout.Content{Head: []layout.Block{head}, Body: body}); err != nil {
		t.Fatal(err)
	}

	if f.Page() < 3 {
		t.Fatalf("expected content to span at least 3 pages, got %d", f.Page())
	}
	for p := 1; p <= f.Page(); p++ {
		if headPages[p] != 1 {
			t.Errorf("page %d: head drawn %d times, want 1", p, headPages[p])
		}
	}
}

func TestBreakOnFreshPageIsIgnored(t *testing.T) {
	rec := newRecorder()
	g := layout.Letter()
	f := layout.NewFlow(rec, g, "a", layout.AlignRight, layout.Observer{})
	f.Advance(f.Y() - g.Bottom() + 1)
	// Oversized content lands on page 2 and overflows it rather than
	// producing blank pages.
	if err := f.Place(layout.Content{Body: []layout.Block{spacer(g.Usable() + 100)}}); err != nil {
		t.Fatal(err)
	}
	if f.Page() != 2 {
		t.Errorf("page = %d, want 2", f.Page())
	}
	f.Break()
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	if rec.page != 2 {
		t.Errorf("canvas has %d pages, want 2", rec.page)
	}
}

func TestCloseDiscardsPendingBreak(t *testing.T) {
	rec := newRecorder()
	g := layout.Letter()
	f := layout.NewFlow(rec, g, "a", layout.AlignRight, layout.Observer{})
	f.Advance(f.Y())
	if f.State() != layout.PageBreaking {
		t.Fatalf("state = %v, want PageBreaking", f.State())
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	if rec.page != 1 || !rec.saved {
		t.Errorf("canvas pages = %d saved = %v, want 1 page saved", rec.page, rec.saved)
	}
	if f.State() != layout.Closed {
		t.Errorf("state = %v, want Closed", f.State())
	}
}

func TestClosedFlow(t *testing.T) {
	rec := newRecorder()
	f := layout.NewFlow(rec, layout.Letter(), "a", layout.AlignRight, layout.Observer{})
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); !errors.Is(err, layout.ErrClosed) {
		t.Errorf("second Close: %v, want ErrClosed", err)
	}
	if err := f.Place(layout.Content{}); !errors.Is(err, layout.ErrClosed) {
		t.Errorf("Place after Close: %v, want ErrClosed", err)
	}
}

func TestCloseReportsSaveError(t *testing.T) {
	rec := newRecorder()
	rec.saveErr = errors.New("disk full")
	f := layout.NewFlow(rec, layout.Letter(), "a", layout.AlignRight, layout.Observer{})
	if err := f.Close(); !errors.Is(err, rec.saveErr) {
		t.Errorf("Close: %v, want wrapped save error", err)
	}
}

func TestCursorDecreasesWithinPage(t *testing.T) {
	g := layout.Letter()
	type move struct {
		page     int
		from, to float64
	}
	var moves []move
	obs := layout.Observer{
		Advance: func(page int, from, to float64) { moves = append(moves, move{page, from, to}) },
	}

	records := append(textFields("a", 30), field.Record{
		Form: "a", Type: field.Radio, Question: "Pick one",
		Choices: []field.Choice{{Value: "1", Label: "One"}, {Value: "2", Label: "Two"}, {Value: "3", Label: "Three"}},
	})
	records = append(records, textFields("a", 30)...)
	pages, err := layout.RenderForm(newRecorder(), "a", records, layout.Options{Observer: obs})
	if err != nil {
		t.Fatal(err)
	}
	if pages < 2 {
		t.Fatalf("expected several pages, got %d", pages)
	}

	for i, m := range moves {
		if m.to >= m.from {
			t.Fatalf("move %d on page %d: cursor %v -> %v did not decrease", i, m.page, m.from, m.to)
		}
		if i == 0 {
			continue
		}
		prev := moves[i-1]
		switch {
		case m.page == prev.page && m.from != prev.to:
			t.Errorf("move %d: cursor jumped from %v to %v within page %d", i, prev.to, m.from, m.page)
		case m.page == prev.page+1 && m.from != g.Top():
			t.Errorf("move %d: page %d starts at %v, want %v", i, m.page, m.from, g.Top())
		case m.page != prev.page && m.page != prev.page+1:
			t.Errorf("move %d: page jumped from %d to %d", i, prev.page, m.page)
		}
	}
}

func TestHeaderOnEveryPage(t *testing.T) {
	rec := newRecorder()
	g := layout.Letter()
	var breaks []int
	obs := layout.Observer{Break: func(page int) { breaks = append(breaks, page) }}

	pages, err := layout.RenderForm(rec, "adverse_events", textFields("adverse_events", 60), layout.Options{Observer: obs})
	if err != nil {
		t.Fatal(err)
	}
	if pages < 3 {
		t.Fatalf("expected at least 3 pages, got %d", pages)
	}
	if rec.page != pages {
		t.Errorf("canvas has %d pages, RenderForm reported %d", rec.page, pages)
	}

	headers := rec.headers(g)
	if len(headers) != pages {
		t.Fatalf("got %d headers for %d pages", len(headers), pages)
	}
	for i, h := range headers {
		want := fmt.Sprintf("ADVERSE EVENTS - Page %d", i+1)
		if h.Page != i+1 || h.Text != want {
			t.Errorf("header %d = page %d %q, want page %d %q", i, h.Page, h.Text, i+1, want)
		}
	}
	for i, p := range breaks {
		if p != i+2 {
			t.Errorf("break %d started page %d, want %d", i, p, i+2)
		}
	}
}
