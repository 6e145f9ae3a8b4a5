// Package item holds the draggable dial items the solvers move.
package item

import (
	"fmt"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/dialmenu/internal/dynamo"
	"github.com/san-kum/dialmenu/internal/geom"
)

// Item is one circle of the dial. Position and Velocity are owned by the
// active solver; Scale is owned by inflate modulation and never feeds back
// into Position.
type Item struct {
	Index    int
	Position geom.Point
	Velocity geom.Point
	Scale    float64
	Color    colorful.Color
}

// ColorSource yields the presentation colour for item i.
type ColorSource func(i int) colorful.Color

// RandomColors draws uniform random RGB colours from rng.
func RandomColors(rng *rand.Rand) ColorSource {
	return func(int) colorful.Color {
		return colorful.Color{R: rng.Float64(), G: rng.Float64(), B: rng.Float64()}
	}
}

// Palette cycles through a fixed list of colours.
func Palette(colors ...colorful.Color) ColorSource {
	return func(i int) colorful.Color {
		if len(colors) == 0 {
			return colorful.Color{}
		}
		return colors[i%len(colors)]
	}
}

// Create builds n items at the origin with unit scale.
func Create(n int, colors ColorSource) ([]*Item, error) {
	if n <= 0 {
		return nil, fmt.Errorf("item: count must be positive, got %d: %w", n, dynamo.ErrConfiguration)
	}
	if colors == nil {
		colors = RandomColors(rand.New(rand.NewSource(1)))
	}

	items := make([]*Item, n)
	for i := range items {
		items[i] = &Item{Index: i, Scale: 1, Color: colors(i)}
	}
	return items, nil
}

// Positions copies out the current positions in index order.
func Positions(items []*Item) []geom.Point {
	out := make([]geom.Point, len(items))
	for i, it := range items {
		out[i] = it.Position
	}
	return out
}
