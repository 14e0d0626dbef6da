package layout

import (
	"fmt"

	"github.com/andrewdmarques/Penn-VCC-CRF-Generator/field"
	"github.com/andrewdmarques/Penn-VCC-CRF-Generator/wrap"
)

// Vertical metrics of a standalone field. The question line height is
// tighter than the font's natural leading to keep forms compact.
const (
	questionLeading = 12
	sectionLeading  = 14
	sectionGap      = 4
	noteLeading     = 10

	boxHeight   = 18 // text and notes input box
	boxDrop     = 15 // box bottom below the cursor
	textAdvance = 25
	notesLines  = 5
	notesAdv    = 22

	optionAdvance = 15
	optionIndent  = 20
	otherAdvance  = 5

	fieldGap = 10
)

// FieldRenderer turns a standalone record into Content. It never breaks
// pages; Flow decides where the content goes.
type FieldRenderer struct {
	canvas    Canvas
	geom      Geometry
	numbering bool
}

// NewFieldRenderer returns a renderer measuring text with c.
func NewFieldRenderer(c Canvas, g Geometry, numbering bool) *FieldRenderer {
	return &FieldRenderer{canvas: c, geom: g, numbering: numbering}
}

func (r *FieldRenderer) lines(text string, width float64, font Font) []string {
	return wrap.Lines(text, width, func(s string) float64 {
		return r.canvas.MeasureText(s, font)
	})
}

// Layout returns the content for rec: an optional section header, the
// wrapped question, the input affordance for its type, an optional note,
// and a trailing gap. number is the question number shown when numbering
// is enabled.
func (r *FieldRenderer) Layout(rec field.Record, number int) Content {
	left := r.geom.Margin
	width := r.geom.TextWidth()

	body := sectionBlocks(r.canvas, r.geom, field.CleanQuestion(rec.Section))

	for _, line := range r.lines(questionText(rec, number, r.numbering), width, QuestionFont) {
		body = append(body, textBlock(left, line, QuestionFont, questionLeading))
	}

	switch rec.Type {
	case field.Text:
		body = append(body, boxBlock(left, width, textAdvance))
	case field.Notes:
		for i := 0; i < notesLines; i++ {
			body = append(body, boxBlock(left, width, notesAdv))
		}
	case field.Radio, field.Checkbox:
		for _, ch := range rec.Choices {
			body = append(body, r.optionBlock(rec.Type, ch.Label))
		}
	default:
		body = append(body, Block{Height: otherAdvance})
	}

	if note := field.CleanQuestion(rec.Note); note != "" {
		for _, line := range r.lines(note, width, NoteFont) {
			body = append(body, textBlock(left, line, NoteFont, noteLeading))
		}
	}

	return Content{Body: body, After: fieldGap}
}

// sectionBlocks wraps a section header over the text width. The last line
// carries the gap to the content below.
func sectionBlocks(c Canvas, g Geometry, section string) []Block {
	lines := wrap.Lines(section, g.TextWidth(), func(s string) float64 {
		return c.MeasureText(s, SectionFont)
	})
	blocks := make([]Block, 0, len(lines))
	for i, line := range lines {
		h := float64(sectionLeading)
		if i == len(lines)-1 {
			h += sectionGap
		}
		blocks = append(blocks, textBlock(g.Margin, line, SectionFont, h))
	}
	return blocks
}

// optionBlock draws one choice: a circle for radio, a square for checkbox,
// and the wrapped label to its right.
func (r *FieldRenderer) optionBlock(t field.Type, label string) Block {
	left := r.geom.Margin
	labels := r.lines(label, r.geom.TextWidth()-optionIndent, QuestionFont)
	h := float64(optionAdvance)
	if len(labels) > 1 {
		h += float64(questionLeading * (len(labels) - 1))
	}
	return Block{
		Height: h,
		Draw: func(c Canvas, y float64) {
			if t == field.Radio {
				c.DrawCircle(left+10, y-5, 4)
			} else {
				c.DrawRect(left+5, y-10, 10, 10)
			}
			for i, line := range labels {
				c.DrawText(left+optionIndent, y-10-float64(questionLeading*i), line, QuestionFont)
			}
		},
	}
}

// questionText returns the cleaned question with its number and required
// marker.
func questionText(rec field.Record, number int, numbering bool) string {
	q := field.CleanQuestion(rec.Question)
	if q == "" {
		return ""
	}
	if rec.Required {
		q += " *"
	}
	if numbering && number > 0 {
		q = fmt.Sprintf("%d. %s", number, q)
	}
	return q
}

func textBlock(x float64, text string, font Font, h float64) Block {
	return Block{
		Height: h,
		Draw: func(c Canvas, y float64) {
			c.DrawText(x, y, text, font)
		},
	}
}

func boxBlock(x, w, h float64) Block {
	return Block{
		Height: h,
		Draw: func(c Canvas, y float64) {
			c.DrawRect(x, y-boxDrop, w, boxHeight)
		},
	}
}
