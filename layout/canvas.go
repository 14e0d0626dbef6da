// Package layout lays out questionnaire forms as flowing content across
// fixed-size pages.
//
// The package draws only through the Canvas capability set, so it has no
// dependency on a PDF writer. Coordinates are in points with the origin at
// the bottom-left corner of the page; the vertical cursor starts near the
// top and decreases as content is placed.
//
// Responsibilities are split as follows: FieldRenderer and MatrixRenderer
// turn records into Content (blocks with known heights) and never decide
// page breaks; Flow owns the cursor and the page number, places Content,
// and alone decides when a new page starts.
package layout

// Font selects a typeface, style and size for DrawText and MeasureText.
type Font struct {
	Family string  // Helvetica, Times, Courier
	Style  string  // "" (regular), "B", "I", "BI"
	Size   float64 // points
}

// Fonts used by the renderers.
var (
	HeaderFont   = Font{Family: "Helvetica", Size: 10}
	TitleFont    = Font{Family: "Helvetica", Style: "B", Size: 16}
	SectionFont  = Font{Family: "Helvetica", Style: "B", Size: 11}
	QuestionFont = Font{Family: "Helvetica", Size: 10}
	NoteFont     = Font{Family: "Helvetica", Style: "I", Size: 8}
)

// Canvas is the drawing capability the layout engine needs from a document
// backend. All positions are in points, origin bottom-left.
type Canvas interface {
	// DrawText draws text with its baseline starting at (x, y).
	DrawText(x, y float64, text string, font Font)
	// DrawRect strokes a rectangle whose bottom-left corner is (x, y).
	DrawRect(x, y, w, h float64)
	// DrawCircle strokes a circle centred on (cx, cy).
	DrawCircle(cx, cy, r float64)
	// MeasureText returns the width text would occupy in font.
	MeasureText(text string, font Font) float64
	// NewPage finishes the current page and starts a new one.
	NewPage()
	// Save finishes the document and reports any accumulated error.
	Save() error
}
