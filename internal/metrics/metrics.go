// Package metrics summarises a sequence of menu frames into scalars.
package metrics

import (
	"math"

	"github.com/san-kum/dialmenu/internal/dial"
	"github.com/san-kum/dialmenu/internal/geom"
)

type Metric interface {
	Name() string
	Observe(f dial.Frame)
	Value() float64
	Reset()
}

// Collect feeds every frame to every metric and returns their values by
// name.
func Collect(frames []dial.Frame, ms ...Metric) map[string]float64 {
	for _, f := range frames {
		for _, m := range ms {
			m.Observe(f)
		}
	}
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

// PeakEnergy is the largest solver energy seen.
type PeakEnergy struct {
	peak float64
}

func NewPeakEnergy() *PeakEnergy { return &PeakEnergy{} }

func (e *PeakEnergy) Name() string { return "peak_energy" }

func (e *PeakEnergy) Observe(f dial.Frame) {
	e.peak = math.Max(e.peak, f.Energy)
}

func (e *PeakEnergy) Value() float64 { return e.peak }
func (e *PeakEnergy) Reset()         { e.peak = 0 }

// Stability is the fraction of frames in which every item stayed within
// bound of center.
type Stability struct {
	center     geom.Point
	bound      float64
	violations int
	samples    int
}

func NewStability(center geom.Point, bound float64) *Stability {
	return &Stability{center: center, bound: bound}
}

func (s *Stability) Name() string { return "stability" }

func (s *Stability) Observe(f dial.Frame) {
	s.samples++
	for _, it := range f.Items {
		if !it.Position.IsValid() || geom.Distance(it.Position, s.center) > s.bound {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

// SettleTicks counts frames from the first observation until item comes
// within eps of target and stays there. It reports -1 while unsettled.
type SettleTicks struct {
	item    int
	target  geom.Point
	eps     float64
	first   int
	settled int
	started bool
}

func NewSettleTicks(item int, target geom.Point, eps float64) *SettleTicks {
	return &SettleTicks{item: item, target: target, eps: eps, settled: -1}
}

func (s *SettleTicks) Name() string { return "settle_ticks" }

func (s *SettleTicks) Observe(f dial.Frame) {
	if s.item < 0 || s.item >= len(f.Items) {
		return
	}
	if !s.started {
		s.first = f.Tick
		s.started = true
	}
	if geom.Distance(f.Items[s.item].Position, s.target) <= s.eps {
		if s.settled < 0 {
			s.settled = f.Tick - s.first
		}
		return
	}
	s.settled = -1
}

func (s *SettleTicks) Value() float64 { return float64(s.settled) }

func (s *SettleTicks) Reset() {
	s.started = false
	s.settled = -1
}

// Overshoot is the farthest item strayed from target once it had first
// come within eps of it.
type Overshoot struct {
	item    int
	target  geom.Point
	eps     float64
	reached bool
	max     float64
}

func NewOvershoot(item int, target geom.Point, eps float64) *Overshoot {
	return &Overshoot{item: item, target: target, eps: eps}
}

func (o *Overshoot) Name() string { return "overshoot" }

func (o *Overshoot) Observe(f dial.Frame) {
	if o.item < 0 || o.item >= len(f.Items) {
		return
	}
	d := geom.Distance(f.Items[o.item].Position, o.target)
	if !o.reached {
		o.reached = d <= o.eps
		return
	}
	o.max = math.Max(o.max, d)
}

func (o *Overshoot) Value() float64 { return o.max }

func (o *Overshoot) Reset() {
	o.reached = false
	o.max = 0
}
