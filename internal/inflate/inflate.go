// Package inflate scales dial items by their distance to a reference
// point. Items nearer than half the threshold grow toward MaxScale, items
// farther away shrink toward MinScale. Scale is visual only and is
// recomputed from scratch every tick.
package inflate

import (
	"fmt"
	"math"

	"github.com/san-kum/dialmenu/internal/dynamo"
	"github.com/san-kum/dialmenu/internal/geom"
	"github.com/san-kum/dialmenu/internal/item"
)

// Rule ties one item to a reference point.
type Rule struct {
	Item      int
	Reference geom.Point
	MinScale  float64
	MaxScale  float64
	Threshold float64
	// Falloff is the divisor applied to (Threshold/2 - d). Zero means
	// Threshold/2.
	Falloff float64
}

// Params are the scalar parts of a Rule shared by every item.
type Params struct {
	MinScale  float64
	MaxScale  float64
	Threshold float64
	Falloff   float64
}

func (p Params) Validate() error {
	if p.MinScale <= 0 || p.MaxScale < p.MinScale {
		return fmt.Errorf("inflate: need 0 < min_scale <= max_scale, got %f, %f: %w", p.MinScale, p.MaxScale, dynamo.ErrConfiguration)
	}
	if p.Threshold <= 0 {
		return fmt.Errorf("inflate: threshold must be positive, got %f: %w", p.Threshold, dynamo.ErrConfiguration)
	}
	if p.Falloff < 0 {
		return fmt.Errorf("inflate: falloff must not be negative, got %f: %w", p.Falloff, dynamo.ErrConfiguration)
	}
	return nil
}

// Baseline is the scale at exactly half the threshold distance.
func (r Rule) Baseline() float64 {
	return r.MinScale + (r.MaxScale-r.MinScale)/2
}

func (r Rule) falloff() float64 {
	if r.Falloff > 0 {
		return r.Falloff
	}
	return r.Threshold / 2
}

// ScaleAt returns the clamped scale for an item at distance d. A rule
// without a positive threshold or falloff degenerates to a step at half
// the threshold.
func (r Rule) ScaleAt(d float64) float64 {
	half := r.Threshold / 2
	f := r.falloff()
	if f <= 0 {
		switch {
		case d < half:
			return r.MaxScale
		case d > half:
			return r.MinScale
		}
		return r.Baseline()
	}
	s := r.Baseline() + (r.MaxScale-r.MinScale)*(half-d)/f
	return math.Max(r.MinScale, math.Min(r.MaxScale, s))
}

// Scale returns the scale for an item at p.
func (r Rule) Scale(p geom.Point) float64 {
	return r.ScaleAt(geom.Distance(p, r.Reference))
}

// Modulator applies a rule per item every tick.
type Modulator struct {
	rules []Rule
}

// NewModulator builds one rule per item index in [0, n), all pointing at
// reference.
func NewModulator(n int, reference geom.Point, p Params) (*Modulator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	m := &Modulator{rules: make([]Rule, n)}
	for i := range m.rules {
		m.rules[i] = Rule{
			Item:      i,
			Reference: reference,
			MinScale:  p.MinScale,
			MaxScale:  p.MaxScale,
			Threshold: p.Threshold,
			Falloff:   p.Falloff,
		}
	}
	return m, nil
}

// SetReference points every rule at p.
func (m *Modulator) SetReference(p geom.Point) {
	for i := range m.rules {
		m.rules[i].Reference = p
	}
}

// Apply writes Scale on every item with a rule. Positions are untouched.
func (m *Modulator) Apply(items []*item.Item) {
	for _, r := range m.rules {
		if r.Item < 0 || r.Item >= len(items) {
			continue
		}
		it := items[r.Item]
		it.Scale = r.Scale(it.Position)
	}
}
