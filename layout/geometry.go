package layout

import (
	"errors"
	"fmt"
)

// ErrGeometry is returned for page geometry that leaves no room for content.
var ErrGeometry = errors.New("layout: invalid page geometry")

// Geometry describes the fixed page layout of a document. It is computed
// once per document and never changes while the document is built.
type Geometry struct {
	Width, Height float64 // page size
	Margin        float64 // left, right and bottom margin
	HeaderOffset  float64 // distance from the top edge to the header baseline
	TopOffset     float64 // distance from the top edge to the first content line
	FooterReserve float64 // space kept free above the bottom margin
}

// Letter returns US Letter geometry with the margins used for printed forms.
func Letter() Geometry {
	return Geometry{
		Width:         612,
		Height:        792,
		Margin:        50,
		HeaderOffset:  30,
		TopOffset:     70,
		FooterReserve: 50,
	}
}

// TextWidth is the width available between the side margins.
func (g Geometry) TextWidth() float64 {
	return g.Width - 2*g.Margin
}

// Top is the cursor position at the start of every page.
func (g Geometry) Top() float64 {
	return g.Height - g.TopOffset
}

// Bottom is the lowest cursor position content may reach before the page
// is considered full.
func (g Geometry) Bottom() float64 {
	return g.Margin + g.FooterReserve
}

// Usable is the vertical space available for content on a fresh page.
func (g Geometry) Usable() float64 {
	return g.Top() - g.Bottom()
}

// Validate reports whether the geometry leaves room for content.
func (g Geometry) Validate() error {
	switch {
	case g.Width <= 0 || g.Height <= 0:
		return fmt.Errorf("%w: page size %gx%g", ErrGeometry, g.Width, g.Height)
	case g.TextWidth() <= 0:
		return fmt.Errorf("%w: margins leave no text width", ErrGeometry)
	case g.Usable() <= 0:
		return fmt.Errorf("%w: offsets leave no vertical space", ErrGeometry)
	}
	return nil
}
