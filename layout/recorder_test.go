package layout_test

import (
	"unicode/utf8"

	"github.com/andrewdmarques/Penn-VCC-CRF-Generator/layout"
)

// op is one recorded drawing call.
type op struct {
	Kind       string // text, rect, circle
	Page       int
	X, Y, W, H float64
	R          float64
	Text       string
	Font       layout.Font
}

// recorder is a Canvas that remembers every call. Text is measured at half
// the font size per rune.
type recorder struct {
	page    int
	ops     []op
	saved   bool
	saveErr error
}

func newRecorder() *recorder {
	return &recorder{page: 1}
}

func (r *recorder) DrawText(x, y float64, text string, font layout.Font) {
	r.ops = append(r.ops, op{Kind: "text", Page: r.page, X: x, Y: y, Text: text, Font: font})
}

func (r *recorder) DrawRect(x, y, w, h float64) {
	r.ops = append(r.ops, op{Kind: "rect", Page: r.page, X: x, Y: y, W: w, H: h})
}

func (r *recorder) DrawCircle(cx, cy, radius float64) {
	r.ops = append(r.ops, op{Kind: "circle", Page: r.page, X: cx, Y: cy, R: radius})
}

func (r *recorder) MeasureText(text string, font layout.Font) float64 {
	return float64(utf8.RuneCountInString(text)) * font.Size * 0.5
}

func (r *recorder) NewPage() {
	r.page++
}

func (r *recorder) Save() error {
	r.saved = true
	return r.saveErr
}

// kind returns the recorded ops of one kind.
func (r *recorder) kind(k string) []op {
	var out []op
	for _, o := range r.ops {
		if o.Kind == k {
			out = append(out, o)
		}
	}
	return out
}

// headers returns the text ops drawn on the header baseline.
func (r *recorder) headers(g layout.Geometry) []op {
	var out []op
	for _, o := range r.kind("text") {
		if o.Y == g.Height-g.HeaderOffset {
			out = append(out, o)
		}
	}
	return out
}
