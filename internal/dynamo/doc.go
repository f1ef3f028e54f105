// Package dynamo provides the core primitives shared by the integrator,
// the frame sequencer and the renderers.
//
//   - [State]: vector representing a point in state space
//   - [Point]: a 3D state, the unit every renderer consumes
//   - [System]: autonomous or time dependent vector field (dX/dt = f(X, t))
//   - [Stepper]: numerical integrator for a single step
//   - [Trajectory]: integrated states on a shared time grid
//
// # Example
//
//	lorenz := physics.NewLorenz()
//	grid := sim.Linspace(0, 40, 4000)
//	traj, _ := sim.Integrate(ctx, lorenz, dynamo.Point{X: 1, Y: 1, Z: 1}, grid, sim.DefaultOptions())
//
// # Thread Safety
//
// Trajectories are immutable once built and may be shared freely between
// goroutines. Steppers keep scratch buffers and must not be shared.
package dynamo
