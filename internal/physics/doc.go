// Package physics provides the constraint solvers that move dial items.
//
// Each solver implements [constraint.Solver]:
//
//   - [Rigid]: instantaneous resolver; free items sit exactly on their
//     rest slots, the dragged item exactly on its target
//   - [Spring]: the permanent attachments form a damped spring [Network]
//     integrated with one of the [integrators]; the dragged item is
//     kinematic and eases onto its slot with a harmonica spring
//
// [Network] also implements [dynamo.Hamiltonian] so the shell can show how
// much energy is still sloshing around the ring:
//
//	s := physics.NewSpring(physics.DefaultSpringConfig(), integrators.NewRK4())
//	_ = s.Solve(items, set, 1.0/60)
//	fmt.Println(s.Energy())
package physics
