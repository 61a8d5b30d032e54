package mandel

import (
	"fmt"
	"math"
)

// Viewport maps pixel indices of a width x height grid onto the fractal plane.
// Resolution, Top and Left are derived from the other fields by NewViewport
// and must not be set independently.
type Viewport struct {
	Width, Height int
	Position

	Resolution float64 // plane distance spanned by one pixel
	Top        float64 // plane y of the top edge
	Left       float64 // plane x of the left edge
}

// NewViewport computes the viewport of a width x height grid placed at p.
func NewViewport(width, height int, p Position) Viewport {
	res := math.Ldexp(1, -p.Zoom)
	return Viewport{
		Width:      width,
		Height:     height,
		Position:   p,
		Resolution: res,
		Left:       p.Center.X - float64(width)*res/2,
		Top:        p.Center.Y + float64(height)*res/2,
	}
}

// PixelCoord returns the plane coordinate of the center of pixel (row, col).
func (v Viewport) PixelCoord(row, col int) Coord {
	half := v.Resolution / 2
	return Coord{
		X: v.Left + (v.Resolution*float64(col) + half),
		Y: v.Top - (v.Resolution*float64(row) + half),
	}
}

func (v Viewport) String() string {
	return fmt.Sprintf("%dx%d at %s zoom %d", v.Width, v.Height, v.Center, v.Zoom)
}
