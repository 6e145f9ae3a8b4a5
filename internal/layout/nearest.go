package layout

import (
	"fmt"

	"github.com/san-kum/dialmenu/internal/dynamo"
	"github.com/san-kum/dialmenu/internal/geom"
)

// NearestSlotIndex returns the index of the slot closest to p. Ties go to
// the lowest index.
func NearestSlotIndex(p geom.Point, slots []geom.Point) (int, error) {
	if len(slots) == 0 {
		return -1, fmt.Errorf("layout: nearest slot of empty set: %w", dynamo.ErrInvalidInput)
	}

	best := 0
	bestDist := geom.Distance(slots[0], p)
	for i := 1; i < len(slots); i++ {
		// strict comparison keeps the first of equally distant slots
		if d := geom.Distance(slots[i], p); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, nil
}

// NearestSlot returns the slot point closest to p.
func NearestSlot(p geom.Point, slots []geom.Point) (geom.Point, error) {
	idx, err := NearestSlotIndex(p, slots)
	if err != nil {
		return geom.Point{}, err
	}
	return slots[idx], nil
}
