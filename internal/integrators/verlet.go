package integrators

import "github.com/san-kum/dialmenu/internal/dynamo"

// Verlet is velocity Verlet over a [positions..., velocities...] state.
// The acceleration may depend on velocity (damping); the second force
// evaluation uses the old velocity, which is accurate enough for the
// light damping the menu uses.
type Verlet struct {
	drift dynamo.State
}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Step(dyn dynamo.System, x dynamo.State, t, dt float64) dynamo.State {
	n := len(x)
	h := n / 2
	if len(v.drift) != n {
		v.drift = make(dynamo.State, n)
	}

	a0 := dyn.Derive(x, t)[h:]
	pos, vel := x[:h], x[h:]

	out := make(dynamo.State, n)
	for i := range pos {
		out[i] = pos[i] + vel[i]*dt + 0.5*a0[i]*dt*dt
	}

	// new positions, old velocities
	copy(v.drift[:h], out[:h])
	copy(v.drift[h:], vel)
	a1 := dyn.Derive(v.drift, t+dt)[h:]

	for i := range vel {
		out[h+i] = vel[i] + 0.5*(a0[i]+a1[i])*dt
	}
	return out
}
