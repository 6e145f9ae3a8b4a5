package geom

import "math"

// Point is a position in menu space. Y grows downward, matching the
// screen coordinates the shell reports pointer events in.
type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) Scale(f float64) Point { return Point{p.X * f, p.Y * f} }

// Len returns the Euclidean norm of p treated as a vector.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

func (p Point) IsValid() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Eq reports whether p and q are within tol of each other on both axes.
func (p Point) Eq(q Point, tol float64) bool {
	return math.Abs(p.X-q.X) <= tol && math.Abs(p.Y-q.Y) <= tol
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Lerp interpolates from a to b; t=0 yields a and t=1 yields b.
func Lerp(a, b Point, t float64) Point {
	return Point{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// Polar returns the point at distance r from c, at angle theta measured
// clockwise from straight up.
func Polar(c Point, r, theta float64) Point {
	s, co := math.Sincos(theta)
	return Point{c.X + r*s, c.Y - r*co}
}

// SlotAngle is the angle of slot i out of n evenly spaced slots.
func SlotAngle(i, n int) float64 {
	return float64(i) * 2 * math.Pi / float64(n)
}
