package constraint

import (
	"github.com/san-kum/dialmenu/internal/geom"
	"github.com/san-kum/dialmenu/internal/item"
)

type Kind int

const (
	KindCenter Kind = iota
	KindNeighbor
	KindDrag
)

func (k Kind) String() string {
	switch k {
	case KindCenter:
		return "center"
	case KindNeighbor:
		return "neighbor"
	case KindDrag:
		return "drag"
	}
	return "unknown"
}

// Constraint is a permanent attachment. Other is the partner item index
// for neighbour attachments and -1 when the far end is Anchor.
type Constraint struct {
	Kind   Kind
	Item   int
	Other  int
	Anchor geom.Point
	Length float64
}

// Endpoint returns the far end of c given the current item positions.
func (c Constraint) Endpoint(positions []geom.Point) geom.Point {
	if c.Other >= 0 {
		return positions[c.Other]
	}
	return c.Anchor
}

// Stretch is how far the attachment currently deviates from its length.
func (c Constraint) Stretch(positions []geom.Point) float64 {
	return geom.Distance(positions[c.Item], c.Endpoint(positions)) - c.Length
}

type DragPhase int

const (
	// Following tracks the pointer.
	Following DragPhase = iota
	// Snapping eases toward the resolved slot after release.
	Snapping
)

func (p DragPhase) String() string {
	if p == Snapping {
		return "snapping"
	}
	return "following"
}

// Drag is the temporary single-endpoint constraint. Its rest length is
// zero: it pulls the item onto Target.
type Drag struct {
	Item    int
	Target  geom.Point
	Phase   DragPhase
	Slot    int
	Settled bool
}

// Solver advances item positions by dt under the constraints in set.
type Solver interface {
	Name() string
	Solve(items []*item.Item, set *Set, dt float64) error
}
