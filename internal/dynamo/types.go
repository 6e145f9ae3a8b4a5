package dynamo

import (
	"math"

	"github.com/san-kum/dialmenu/internal/geom"
)

// State is laid out as [x0, y0, x1, y1, ..., vx0, vy0, vx1, vy1, ...]:
// the first half holds positions, the second half velocities.
type State []float64

// NewState allocates a state for n points at rest at the origin.
func NewState(n int) State { return make(State, n*4) }

// Points is the number of points the state describes.
func (s State) Points() int { return len(s) / 4 }

func (s State) Pos(i int) geom.Point { return geom.Pt(s[i*2], s[i*2+1]) }

func (s State) Vel(i int) geom.Point {
	h := len(s) / 2
	return geom.Pt(s[h+i*2], s[h+i*2+1])
}

// Set writes point i's position and velocity.
func (s State) Set(i int, pos, vel geom.Point) {
	h := len(s) / 2
	s[i*2], s[i*2+1] = pos.X, pos.Y
	s[h+i*2], s[h+i*2+1] = vel.X, vel.Y
}

// AddAccel accumulates a into point i's velocity slot of a derivative.
func (s State) AddAccel(i int, a geom.Point) {
	h := len(s) / 2
	s[h+i*2] += a.X
	s[h+i*2+1] += a.Y
}

// KineticEnergy sums ½|v|² over every point except skip.
func (s State) KineticEnergy(skip int) float64 {
	e := 0.0
	for i := 0; i < s.Points(); i++ {
		if i == skip {
			continue
		}
		v := s.Vel(i)
		e += 0.5 * (v.X*v.X + v.Y*v.Y)
	}
	return e
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// MaxAbs is the largest magnitude of any component.
func (s State) MaxAbs() float64 {
	m := 0.0
	for _, v := range s {
		m = math.Max(m, math.Abs(v))
	}
	return m
}

// System is a first-order ODE over a point State.
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Hamiltonian interface {
	Energy(x State) float64
}

// Integrator advances a System by one step. Implementations return a
// fresh State and never modify x.
type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) State
}

// Configurable exposes named parameters that can be tuned while running.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64)
}
