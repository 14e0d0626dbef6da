package layout

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/andrewdmarques/Penn-VCC-CRF-Generator/wrap"
)

// ErrClosed is returned when content is placed after Close.
var ErrClosed = errors.New("layout: flow is closed")

// Block is an indivisible piece of content. Draw is called with the cursor
// position at the top of the block; a nil Draw only consumes space.
type Block struct {
	Height float64
	Draw   func(c Canvas, top float64)
}

// Content is what a renderer produces for one run of records.
type Content struct {
	Lead  []Block // drawn once, before the head
	Head  []Block // drawn again on every page the body continues on
	Body  []Block
	After float64 // spacing applied once the body is placed
}

// Height is the space needed to place the content without a break.
func (c Content) Height() float64 {
	return blocksHeight(c.Lead) + blocksHeight(c.Head) + blocksHeight(c.Body)
}

// State is the page state of a Flow.
type State int

const (
	OnPage       State = iota // content can be drawn on the current page
	PageBreaking              // the current page is full; a new one starts before the next draw
	Closed                    // the document has been saved
)

func (s State) String() string {
	switch s {
	case OnPage:
		return "OnPage"
	case PageBreaking:
		return "PageBreaking"
	case Closed:
		return "Closed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Align positions the page header.
type Align int

const (
	AlignRight Align = iota
	AlignLeft
)

// ParseAlign maps "left" or "right" to an Align. Anything else is right.
func ParseAlign(s string) Align {
	if strings.EqualFold(strings.TrimSpace(s), "left") {
		return AlignLeft
	}
	return AlignRight
}

// Observer receives cursor and page events. Either func may be nil.
type Observer struct {
	Advance func(page int, from, to float64)
	Break   func(page int) // called with the number of the page just started
}

// FormTitle normalises a form name for display: underscores become spaces
// and the result is upper-cased.
func FormTitle(form string) string {
	return cases.Upper(language.Und).String(strings.ReplaceAll(form, "_", " "))
}

// Flow tracks the vertical cursor and the page number while a form is laid
// out, and is the only component that starts new pages.
type Flow struct {
	canvas   Canvas
	geom     Geometry
	title    string
	align    Align
	observer Observer

	y     float64
	page  int
	state State
	fresh bool // nothing placed since the page started
}

// NewFlow opens page 1: it draws the page header and the form title and
// leaves the cursor below the title.
func NewFlow(c Canvas, g Geometry, form string, align Align, obs Observer) *Flow {
	f := &Flow{
		canvas:   c,
		geom:     g,
		title:    FormTitle(form),
		align:    align,
		observer: obs,
		y:        g.Top(),
		page:     1,
		state:    OnPage,
		fresh:    true,
	}
	f.drawHeader()
	f.drawTitle()
	return f
}

// Y returns the cursor position.
func (f *Flow) Y() float64 { return f.y }

// Page returns the 1-based number of the current page.
func (f *Flow) Page() int { return f.page }

// State returns the page state.
func (f *Flow) State() State { return f.state }

// Advance moves the cursor down by h. When the cursor falls below the
// bottom of the content area the page is marked full and the next draw
// starts a new page. Non-positive heights are ignored.
func (f *Flow) Advance(h float64) {
	if h <= 0 || f.state == Closed {
		return
	}
	from := f.y
	f.y -= h
	f.fresh = false
	if f.observer.Advance != nil {
		f.observer.Advance(f.page, from, f.y)
	}
	if f.y < f.geom.Bottom() {
		f.state = PageBreaking
	}
}

// Break marks the current page as finished. A page on which nothing has
// been placed yet is never broken.
func (f *Flow) Break() {
	if f.state == OnPage && !f.fresh {
		f.state = PageBreaking
	}
}

// settle starts the pending page, if any.
func (f *Flow) settle() {
	if f.state != PageBreaking {
		return
	}
	f.canvas.NewPage()
	f.page++
	f.y = f.geom.Top()
	f.fresh = true
	f.state = OnPage
	f.drawHeader()
	if f.observer.Break != nil {
		f.observer.Break(f.page)
	}
}

func (f *Flow) fits(h float64) bool {
	return f.y-h >= f.geom.Bottom()
}

// Place lays out content starting at the cursor. Content that fits on a
// fresh page is moved to one when it does not fit the remaining space.
// Longer content is split between body blocks, and its head is drawn again
// at the top of every page it continues on. The lead stays with the head and
// first body block.
func (f *Flow) Place(c Content) error {
	if f.state == Closed {
		return ErrClosed
	}
	f.settle()

	total := c.Height()
	lead := blocksHeight(c.Lead) + blocksHeight(c.Head)
	if len(c.Body) > 0 {
		lead += c.Body[0].Height
	}
	if (total <= f.geom.Usable() && !f.fits(total)) || !f.fits(lead) {
		f.Break()
		f.settle()
	}

	f.draw(c.Lead)
	f.draw(c.Head)
	headPage := f.page
	for _, b := range c.Body {
		if !f.fits(b.Height) {
			f.Break()
		}
		f.settle()
		if f.page != headPage {
			f.draw(c.Head)
			headPage = f.page
		}
		f.draw([]Block{b})
	}
	f.Advance(c.After)
	return nil
}

func (f *Flow) draw(blocks []Block) {
	for _, b := range blocks {
		f.settle()
		if b.Draw != nil {
			b.Draw(f.canvas, f.y)
		}
		f.Advance(b.Height)
	}
}

// Close saves the document. A page break that is still pending is
// discarded, so documents never end with an empty page.
func (f *Flow) Close() error {
	if f.state == Closed {
		return ErrClosed
	}
	f.state = Closed
	if err := f.canvas.Save(); err != nil {
		return fmt.Errorf("layout: saving document: %w", err)
	}
	return nil
}

// HeaderText returns the header drawn on the given page.
func (f *Flow) HeaderText(page int) string {
	return fmt.Sprintf("%s - Page %d", f.title, page)
}

func (f *Flow) drawHeader() {
	text := f.HeaderText(f.page)
	x := f.geom.Margin
	if f.align == AlignRight {
		x = f.geom.Width - f.geom.Margin - f.canvas.MeasureText(text, HeaderFont)
	}
	f.canvas.DrawText(x, f.geom.Height-f.geom.HeaderOffset, text, HeaderFont)
}

func (f *Flow) drawTitle() {
	measure := func(s string) float64 { return f.canvas.MeasureText(s, TitleFont) }
	lines := wrap.Lines(f.title, f.geom.TextWidth(), measure)
	if len(lines) == 0 {
		return
	}
	for _, line := range lines {
		f.canvas.DrawText(f.geom.Margin, f.y, line, TitleFont)
		f.Advance(20)
	}
	f.Advance(20)
}

func blocksHeight(blocks []Block) float64 {
	var h float64
	for _, b := range blocks {
		h += b.Height
	}
	return h
}
