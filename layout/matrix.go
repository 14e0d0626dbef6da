package layout

import (
	"strings"

	"github.com/andrewdmarques/Penn-VCC-CRF-Generator/field"
	"github.com/andrewdmarques/Penn-VCC-CRF-Generator/wrap"
)

const (
	cellPadding  = 5  // horizontal text inset inside a cell
	cellBaseline = 10 // first baseline below the top of a row
	rowPadding   = 6  // extra height below the last line of a row
	markSize     = 10 // checkbox square side
	markRadius   = 4  // radio circle radius
	matrixGap    = 10
)

// MatrixRenderer turns a matrix group into a grid: a leading question column
// followed by one column per choice of the group's first record.
//
// The head is the row of choice labels; Flow repeats it on every page the
// grid continues on. Each record is one body row, never split across pages.
type MatrixRenderer struct {
	canvas    Canvas
	geom      Geometry
	numbering bool
}

// NewMatrixRenderer returns a renderer measuring text with c.
func NewMatrixRenderer(c Canvas, g Geometry, numbering bool) *MatrixRenderer {
	return &MatrixRenderer{canvas: c, geom: g, numbering: numbering}
}

// Columns returns the number of answer columns a group is drawn with. All
// rows share the columns of the first record.
func Columns(group []field.Record) int {
	if len(group) == 0 {
		return 0
	}
	return len(group[0].Choices)
}

// Layout returns the grid content for group. firstNumber is the question
// number of the first record; following rows count up from it.
//
// The first record's section header is drawn once above the grid; without
// one, the group is captioned with its matrix name. Field notes are drawn
// in the question cell of their row.
func (r *MatrixRenderer) Layout(group []field.Record, firstNumber int) Content {
	if len(group) == 0 {
		return Content{}
	}
	labels := field.Labels(group[0].Choices)
	colWidth := r.geom.TextWidth() / float64(len(labels)+1)
	kind := group[0].Type

	caption := field.CleanQuestion(group[0].Section)
	if caption == "" {
		caption = MatrixCaption(group[0].Matrix)
	}

	head := r.row(append([]string{""}, labels...), "", colWidth, field.Other)
	body := make([]Block, 0, len(group))
	for i, rec := range group {
		cells := make([]string, len(labels)+1)
		cells[0] = questionText(rec, firstNumber+i, r.numbering)
		body = append(body, r.row(cells, field.CleanQuestion(rec.Note), colWidth, kind))
	}
	return Content{
		Lead:  sectionBlocks(r.canvas, r.geom, caption),
		Head:  []Block{head},
		Body:  body,
		After: matrixGap,
	}
}

// MatrixCaption returns the caption of a matrix group without a section
// header: its name with underscores as spaces.
func MatrixCaption(matrix string) string {
	return strings.TrimSpace(strings.ReplaceAll(matrix, "_", " "))
}

// row lays out one grid row. Cells are wrapped to the column width and the
// row is as tall as its tallest cell, so every cell in the row lines up.
// A note goes under the text of the first cell. Answer columns of radio and
// checkbox rows get a centred mark.
func (r *MatrixRenderer) row(cells []string, note string, colWidth float64, kind field.Type) Block {
	width := colWidth - 2*cellPadding
	wrapped := make([][]string, len(cells))
	content := float64(questionLeading)
	for i, text := range cells {
		wrapped[i] = wrap.Lines(text, width, func(s string) float64 { return r.canvas.MeasureText(s, QuestionFont) })
		content = max(content, float64(questionLeading*len(wrapped[i])))
	}
	var noteLines []string
	if note != "" && len(cells) > 0 {
		noteLines = wrap.Lines(note, width, func(s string) float64 { return r.canvas.MeasureText(s, NoteFont) })
		content = max(content, float64(questionLeading*len(wrapped[0])+noteLeading*len(noteLines)))
	}
	height := content + rowPadding
	left := r.geom.Margin

	return Block{
		Height: height,
		Draw: func(c Canvas, top float64) {
			for i, lines := range wrapped {
				x := left + float64(i)*colWidth
				c.DrawRect(x, top-height, colWidth, height)
				for j, line := range lines {
					c.DrawText(x+cellPadding, top-cellBaseline-float64(questionLeading*j), line, QuestionFont)
				}
				if i == 0 {
					below := top - cellBaseline - float64(questionLeading*len(lines))
					for j, line := range noteLines {
						c.DrawText(x+cellPadding, below-float64(noteLeading*j), line, NoteFont)
					}
					continue
				}
				cx, cy := x+colWidth/2, top-height/2
				switch kind {
				case field.Radio:
					c.DrawCircle(cx, cy, markRadius)
				case field.Checkbox:
					c.DrawRect(cx-markSize/2, cy-markSize/2, markSize, markSize)
				}
			}
		},
	}
}
