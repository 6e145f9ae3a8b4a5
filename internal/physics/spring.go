package physics

import (
	"fmt"

	"github.com/charmbracelet/harmonica"
	"github.com/san-kum/dialmenu/internal/constraint"
	"github.com/san-kum/dialmenu/internal/dynamo"
	"github.com/san-kum/dialmenu/internal/geom"
	"github.com/san-kum/dialmenu/internal/item"
)

// Spring integrates the permanent attachments as a spring network. The
// item under a drag constraint is kinematic: pinned to the pointer while
// following, eased onto its slot by a harmonica spring while snapping.
type Spring struct {
	cfg   SpringConfig
	integ dynamo.Integrator
	net   *Network
	set   *constraint.Set

	snap   harmonica.Spring
	snapDt float64

	x    dynamo.State
	t    float64
	tick int
}

func NewSpring(cfg SpringConfig, integ dynamo.Integrator) *Spring {
	if cfg.Substeps < 1 {
		cfg.Substeps = 1
	}
	return &Spring{cfg: cfg, integ: integ}
}

func (s *Spring) Name() string { return "spring" }

// Network exposes the spring system for energy readouts. It is nil until
// the first solve after constraints are installed.
func (s *Spring) Network() *Network { return s.net }

// Energy reports the network energy of the last solved state.
func (s *Spring) Energy() float64 {
	if s.net == nil || s.x == nil {
		return 0
	}
	return s.net.Energy(s.x)
}

// GetParams implements dynamo.Configurable.
func (s *Spring) GetParams() map[string]float64 {
	if s.net != nil {
		return s.net.GetParams()
	}
	return map[string]float64{"k": s.cfg.Stiffness, "damping": s.cfg.Damping}
}

// SetParam retunes the network in place; unknown names are ignored.
func (s *Spring) SetParam(name string, value float64) {
	switch name {
	case "k":
		s.cfg.Stiffness = value
	case "damping":
		s.cfg.Damping = value
	default:
		return
	}
	if s.net != nil {
		s.net.SetParam(name, value)
	}
}

func (s *Spring) ensure(set *constraint.Set, n int) {
	if s.net == nil || s.set != set || s.net.n != n {
		s.set = set
		s.net = NewNetwork(set, n, s.cfg.Stiffness, s.cfg.Damping)
		s.x = dynamo.NewState(n)
	}
}

func (s *Spring) Solve(items []*item.Item, set *constraint.Set, dt float64) error {
	s.tick++
	if !set.Installed() || dt <= 0 {
		return nil
	}
	n := len(items)
	s.ensure(set, n)

	x := dynamo.NewState(n)
	for i, it := range items {
		x.Set(i, it.Position, it.Velocity)
	}

	// the kinematic item rests inside the network state; its own velocity
	// is kept aside so steppers that drift positions by velocity leave it
	kin := -1
	var kinPos, kinVel geom.Point
	d := set.Drag()
	if d != nil && d.Item >= 0 && d.Item < n {
		kin = d.Item
		kinPos, kinVel = s.drive(items[kin], d, dt)
		x.Set(kin, kinPos, geom.Point{})
	}
	s.net.SetKinematic(kin)

	t := s.t
	h := dt / float64(s.cfg.Substeps)
	for k := 0; k < s.cfg.Substeps; k++ {
		x = s.integ.Step(s.net, x, t, h)
		t += h
	}
	if !x.IsValid() {
		return fmt.Errorf("spring solver: %w", &dynamo.StepError{Tick: s.tick, Wrapped: dynamo.ErrUnstable})
	}
	s.x, s.t = x, t

	for i, it := range items {
		if i == kin {
			it.Position, it.Velocity = kinPos, kinVel
			continue
		}
		it.Position = x.Pos(i)
		it.Velocity = x.Vel(i)
	}

	if kin >= 0 && d.Phase == constraint.Snapping {
		d.Settled = kinPos == d.Target && kinVel == (geom.Point{}) &&
			s.net.Relaxed(x, s.cfg.SettleEpsilon, dt)
	}
	return nil
}

// drive returns where the kinematic item goes this tick: onto the pointer
// while following, along a harmonica spring toward the slot while
// snapping. Within SettleEpsilon of the slot it lands exactly.
func (s *Spring) drive(it *item.Item, d *constraint.Drag, dt float64) (geom.Point, geom.Point) {
	if d.Phase == constraint.Following {
		return d.Target, d.Target.Sub(it.Position).Scale(1 / dt)
	}

	if s.snapDt != dt {
		s.snap = harmonica.NewSpring(dt, s.cfg.SnapFrequency, s.cfg.SnapDamping)
		s.snapDt = dt
	}
	x, vx := s.snap.Update(it.Position.X, it.Velocity.X, d.Target.X)
	y, vy := s.snap.Update(it.Position.Y, it.Velocity.Y, d.Target.Y)
	pos, vel := geom.Pt(x, y), geom.Pt(vx, vy)

	eps := s.cfg.SettleEpsilon
	if geom.Distance(pos, d.Target) < eps && vel.Len()*dt < eps {
		return d.Target, geom.Point{}
	}
	return pos, vel
}
