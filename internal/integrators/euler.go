package integrators

import "github.com/san-kum/dialmenu/internal/dynamo"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn dynamo.System, x dynamo.State, t float64, dt float64) dynamo.State {
	dx := dyn.Derive(x, t)
	result := make(dynamo.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}

// SymplecticEuler updates velocities first and then moves positions with
// the new velocities. It is the cheapest stepper that keeps a damped
// spring network from gaining energy at frame-rate timesteps.
type SymplecticEuler struct{}

func NewSymplecticEuler() *SymplecticEuler {
	return &SymplecticEuler{}
}

func (s *SymplecticEuler) Step(dyn dynamo.System, x dynamo.State, t float64, dt float64) dynamo.State {
	n := len(x)
	half := n / 2
	dx := dyn.Derive(x, t)

	result := make(dynamo.State, n)
	for i := 0; i < half; i++ {
		v := x[half+i] + dt*dx[half+i]
		result[half+i] = v
		result[i] = x[i] + dt*v
	}
	return result
}
