package layout

import (
	"fmt"

	"github.com/san-kum/dialmenu/internal/dynamo"
	"github.com/san-kum/dialmenu/internal/geom"
)

// Layout is an immutable slot arrangement. Changing the count, center or
// radius requires building a new Layout.
type Layout struct {
	Center geom.Point
	Radius float64
	Slots  []geom.Point
}

// ComputeSlots returns n evenly spaced slot points ordered by item index.
func ComputeSlots(n int, center geom.Point, radius float64) ([]geom.Point, error) {
	if n <= 0 {
		return nil, fmt.Errorf("layout: slot count must be positive, got %d: %w", n, dynamo.ErrConfiguration)
	}
	if !center.IsValid() {
		return nil, fmt.Errorf("layout: center %+v is not finite: %w", center, dynamo.ErrConfiguration)
	}

	slots := make([]geom.Point, n)
	for i := range slots {
		slots[i] = geom.Polar(center, radius, geom.SlotAngle(i, n))
	}
	return slots, nil
}

func New(n int, center geom.Point, radius float64) (*Layout, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("layout: radius must be positive, got %f: %w", radius, dynamo.ErrConfiguration)
	}
	slots, err := ComputeSlots(n, center, radius)
	if err != nil {
		return nil, err
	}
	return &Layout{Center: center, Radius: radius, Slots: slots}, nil
}

func (l *Layout) Len() int { return len(l.Slots) }

// Slot returns a copy of slot i. It panics if i is out of range.
func (l *Layout) Slot(i int) geom.Point { return l.Slots[i] }

// Chord is the rest distance between neighbouring slots.
func (l *Layout) Chord() float64 {
	if len(l.Slots) < 2 {
		return 0
	}
	return geom.Distance(l.Slots[0], l.Slots[1])
}

// Nearest resolves p against this layout's slots.
func (l *Layout) Nearest(p geom.Point) (int, geom.Point) {
	// Slots is never empty for a Layout built by New.
	idx, _ := NearestSlotIndex(p, l.Slots)
	return idx, l.Slots[idx]
}
