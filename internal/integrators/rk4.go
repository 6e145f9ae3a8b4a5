package integrators

import "github.com/san-kum/dialmenu/internal/dynamo"

// RK4 is the classic fourth-order Runge-Kutta stepper. Stage buffers are
// reused between steps of the same size.
type RK4 struct {
	k     [4]dynamo.State
	probe dynamo.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) resize(n int) {
	if len(r.probe) == n {
		return
	}
	for i := range r.k {
		r.k[i] = make(dynamo.State, n)
	}
	r.probe = make(dynamo.State, n)
}

// offset writes x + h*k into dst.
func offset(dst, x, k dynamo.State, h float64) dynamo.State {
	for i := range x {
		dst[i] = x[i] + h*k[i]
	}
	return dst
}

func (r *RK4) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	r.resize(len(x))
	half := dt / 2

	copy(r.k[0], dyn.Derive(x, t))
	copy(r.k[1], dyn.Derive(offset(r.probe, x, r.k[0], half), t+half))
	copy(r.k[2], dyn.Derive(offset(r.probe, x, r.k[1], half), t+half))
	copy(r.k[3], dyn.Derive(offset(r.probe, x, r.k[2], dt), t+dt))

	out := make(dynamo.State, len(x))
	w := dt / 6
	for i := range x {
		out[i] = x[i] + w*(r.k[0][i]+2*r.k[1][i]+2*r.k[2][i]+r.k[3][i])
	}
	return out
}
