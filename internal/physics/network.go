package physics

import (
	"math"

	"github.com/san-kum/dialmenu/internal/constraint"
	"github.com/san-kum/dialmenu/internal/dynamo"
	"github.com/san-kum/dialmenu/internal/geom"
)

var (
	_ dynamo.System       = (*Network)(nil)
	_ dynamo.Hamiltonian  = (*Network)(nil)
	_ dynamo.Configurable = (*Network)(nil)
)

// Network is the permanent attachments seen as a damped spring system.
// State: [x0, y0, ..., x(n-1), y(n-1), vx0, vy0, ..., vx(n-1), vy(n-1)]
// with unit masses. The kinematic item, if any, is moved by its drag
// constraint and has zero derivative here.
type Network struct {
	set       *constraint.Set
	n         int
	k         float64 // spring constant
	damping   float64
	kinematic int

	pos []geom.Point
}

func NewNetwork(set *constraint.Set, n int, stiffness, damping float64) *Network {
	return &Network{
		set:       set,
		n:         n,
		k:         stiffness,
		damping:   damping,
		kinematic: -1,
		pos:       make([]geom.Point, n),
	}
}

func (nw *Network) StateDim() int { return nw.n * 4 }

// SetKinematic marks item i as externally driven; -1 clears it.
func (nw *Network) SetKinematic(i int) { nw.kinematic = i }

func (nw *Network) positions(x dynamo.State) []geom.Point {
	for i := 0; i < nw.n; i++ {
		nw.pos[i] = x.Pos(i)
	}
	return nw.pos
}

func (nw *Network) Derive(x dynamo.State, _ float64) dynamo.State {
	deriv := dynamo.NewState(nw.n)
	pos := nw.positions(x)

	for _, c := range nw.set.Permanent() {
		p := pos[c.Item]
		q := c.Endpoint(pos)
		dir := p.Sub(q)
		dist := dir.Len()
		if dist == 0 {
			// coincident ends push apart the way they lie at rest
			dir = nw.set.RestDirection(c)
			if dir.Len() == 0 {
				continue
			}
		}

		// Hooke along the attachment, magnitude k * stretch
		f := dir.Scale(-nw.k * (dist - c.Length) / dir.Len())
		deriv.AddAccel(c.Item, f)
		if c.Other >= 0 {
			deriv.AddAccel(c.Other, f.Scale(-1))
		}
	}

	for i := 0; i < nw.n; i++ {
		if i == nw.kinematic {
			deriv.Set(i, geom.Point{}, geom.Point{})
			continue
		}
		v := x.Vel(i)
		deriv.Set(i, v, deriv.Vel(i).Sub(v.Scale(nw.damping)))
	}

	return deriv
}

// Energy implements dynamo.Hamiltonian: kinetic energy of the free items
// plus the potential stored in every stretched attachment.
func (nw *Network) Energy(x dynamo.State) float64 {
	energy := x.KineticEnergy(nw.kinematic)

	pos := nw.positions(x)
	for _, c := range nw.set.Permanent() {
		s := c.Stretch(pos)
		energy += 0.5 * nw.k * s * s
	}

	return energy
}

// Relaxed reports whether every attachment is within eps of its length
// and nothing moves more than eps in dt.
func (nw *Network) Relaxed(x dynamo.State, eps, dt float64) bool {
	pos := nw.positions(x)
	for _, c := range nw.set.Permanent() {
		if math.Abs(c.Stretch(pos)) >= eps {
			return false
		}
	}
	return x[len(x)/2:].MaxAbs()*dt < eps
}

// GetParams implements dynamo.Configurable.
func (nw *Network) GetParams() map[string]float64 {
	return map[string]float64{
		"k":       nw.k,
		"damping": nw.damping,
	}
}

func (nw *Network) SetParam(name string, value float64) {
	switch name {
	case "k":
		nw.k = value
	case "damping":
		nw.damping = value
	}
}
