package constraint

import (
	"fmt"

	"github.com/san-kum/dialmenu/internal/dynamo"
	"github.com/san-kum/dialmenu/internal/geom"
)

// Set is the constraint list one menu owns. It is not safe for concurrent
// use.
type Set struct {
	center    geom.Point
	rest      []geom.Point
	permanent []Constraint
	drag      *Drag
	installed bool
}

func NewSet() *Set {
	return &Set{}
}

// Install attaches every item to center and to its predecessor. rest is
// the configuration the attachments are satisfied in, normally the slot
// layout; lengths are measured from it.
func (s *Set) Install(center geom.Point, rest []geom.Point) error {
	if len(rest) == 0 {
		return fmt.Errorf("constraint: install with no items: %w", dynamo.ErrConfiguration)
	}

	s.center = center
	s.rest = append(s.rest[:0], rest...)
	s.permanent = s.permanent[:0]

	for i, p := range rest {
		s.permanent = append(s.permanent, Constraint{
			Kind:   KindCenter,
			Item:   i,
			Other:  -1,
			Anchor: center,
			Length: geom.Distance(p, center),
		})
	}
	for i := 1; i < len(rest); i++ {
		s.permanent = append(s.permanent, Constraint{
			Kind:   KindNeighbor,
			Item:   i,
			Other:  i - 1,
			Length: geom.Distance(rest[i], rest[i-1]),
		})
	}

	s.installed = true
	return nil
}

// Reset drops every constraint, returning the set to its pre-install state.
func (s *Set) Reset() {
	s.permanent = s.permanent[:0]
	s.rest = s.rest[:0]
	s.drag = nil
	s.installed = false
}

func (s *Set) Installed() bool         { return s.installed }
func (s *Set) Center() geom.Point      { return s.center }
func (s *Set) Permanent() []Constraint { return s.permanent }

// Rest returns the rest position of item i.
func (s *Set) Rest(i int) geom.Point { return s.rest[i] }

func (s *Set) Len() int { return len(s.rest) }

// Drag returns the active drag/snap constraint, or nil.
func (s *Set) Drag() *Drag { return s.drag }

// BeginDrag installs a drag constraint on item at target. Any previous
// drag constraint is discarded and returned.
func (s *Set) BeginDrag(item int, target geom.Point) (previous *Drag) {
	previous = s.drag
	s.drag = &Drag{Item: item, Target: target, Phase: Following, Slot: -1}
	return previous
}

// Retarget moves the drag target. It is a no-op without an active drag.
func (s *Set) Retarget(target geom.Point) {
	if s.drag == nil {
		return
	}
	s.drag.Target = target
	s.drag.Settled = false
}

// Release switches the active drag to snapping toward slot. The dragged
// item's rest position moves to target, so the permanent attachments hold
// it there once the snap is gone.
func (s *Set) Release(slot int, target geom.Point) {
	if s.drag == nil {
		return
	}
	s.drag.Target = target
	s.drag.Slot = slot
	s.drag.Phase = Snapping
	s.drag.Settled = false
	s.rebase(s.drag.Item, target)
}

// rebase moves item i's rest position to p and re-measures every
// attachment touching it.
func (s *Set) rebase(i int, p geom.Point) {
	if i < 0 || i >= len(s.rest) {
		return
	}
	s.rest[i] = p
	for k := range s.permanent {
		c := &s.permanent[k]
		if c.Item != i && c.Other != i {
			continue
		}
		c.Length = geom.Distance(s.rest[c.Item], s.restEndpoint(*c))
	}
}

func (s *Set) restEndpoint(c Constraint) geom.Point {
	if c.Other >= 0 {
		return s.rest[c.Other]
	}
	return c.Anchor
}

// RestDirection is the vector from c's far end to its item in the rest
// configuration. It orients an attachment whose ends coincide.
func (s *Set) RestDirection(c Constraint) geom.Point {
	if c.Item < 0 || c.Item >= len(s.rest) || c.Other >= len(s.rest) {
		return geom.Point{}
	}
	return s.rest[c.Item].Sub(s.restEndpoint(c))
}

// ClearDrag removes the drag constraint, returning it.
func (s *Set) ClearDrag() *Drag {
	d := s.drag
	s.drag = nil
	return d
}

// Governs reports whether item i is currently positioned by the drag
// constraint instead of the permanent ones.
func (s *Set) Governs(i int) bool {
	return s.drag != nil && s.drag.Item == i
}
