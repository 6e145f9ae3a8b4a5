package viz

import (
	"math"

	"github.com/san-kum/dialmenu/internal/geom"
)

// Viewport maps world points onto canvas dots with a uniform scale, keeping
// the dial centred. Braille dots are close enough to square that no aspect
// correction is applied.
type Viewport struct {
	Center geom.Point
	Scale  float64 // dots per world unit
	DotW   int
	DotH   int
}

// NewViewport fits a square of half-size extent around center into a
// dotW x dotH canvas.
func NewViewport(center geom.Point, extent float64, dotW, dotH int) Viewport {
	side := math.Min(float64(dotW), float64(dotH))
	scale := 1.0
	if extent > 0 {
		scale = (side - 2) / (2 * extent)
	}
	return Viewport{Center: center, Scale: scale, DotW: dotW, DotH: dotH}
}

func (v Viewport) ToDots(p geom.Point) (int, int) {
	x := float64(v.DotW)/2 + (p.X-v.Center.X)*v.Scale
	y := float64(v.DotH)/2 + (p.Y-v.Center.Y)*v.Scale
	return int(math.Round(x)), int(math.Round(y))
}

func (v Viewport) ToWorld(x, y float64) geom.Point {
	return geom.Pt(
		v.Center.X+(x-float64(v.DotW)/2)/v.Scale,
		v.Center.Y+(y-float64(v.DotH)/2)/v.Scale,
	)
}

// CellToWorld maps a terminal cell (column, row) of the canvas to the world
// point under the middle of that cell.
func (v Viewport) CellToWorld(col, row int) geom.Point {
	return v.ToWorld(float64(col*2)+1, float64(row*4)+2)
}

func (v Viewport) Length(d float64) int {
	return int(math.Round(d * v.Scale))
}
