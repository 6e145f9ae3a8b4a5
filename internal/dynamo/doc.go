// Package dynamo provides the numeric primitives shared by the dial menu
// solvers.
//
// The package defines the small vocabulary the spring solver is built on:
//
//   - [State]: flat vector of positions followed by velocities
//   - [System]: a dynamical system dX/dt = f(X, t)
//   - [Integrator]: numeric stepper advancing a [System] by dt
//   - [Hamiltonian]: optional energy readout used for settle diagnostics
//
// It also declares the error kinds every other package reports:
// [ErrConfiguration], [ErrInvalidInput] and [ErrUnstable].
//
// # Example
//
//	net := physics.NewNetwork(springCfg)
//	integ := integrators.NewRK4()
//	x = integ.Step(net, x, t, dt)
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent use. The menu is driven
// from a single tick loop.
package dynamo
