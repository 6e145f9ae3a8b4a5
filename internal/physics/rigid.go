package physics

import (
	"github.com/san-kum/dialmenu/internal/constraint"
	"github.com/san-kum/dialmenu/internal/geom"
	"github.com/san-kum/dialmenu/internal/item"
)

// Rigid satisfies every constraint instantly: free items sit on their rest
// slot and the dragged item sits on its target.
type Rigid struct{}

func NewRigid() *Rigid { return &Rigid{} }

func (r *Rigid) Name() string { return "rigid" }

func (r *Rigid) Solve(items []*item.Item, set *constraint.Set, _ float64) error {
	if !set.Installed() {
		return nil
	}

	for i, it := range items {
		it.Velocity = geom.Point{}
		if set.Governs(i) {
			d := set.Drag()
			it.Position = d.Target
			if d.Phase == constraint.Snapping {
				d.Settled = true
			}
			continue
		}
		if i < set.Len() {
			it.Position = set.Rest(i)
		}
	}
	return nil
}
