// Package sim integrates the Lorenz field over a shared time grid.
//
// [Integrate] turns one initial state into a [dynamo.Trajectory] with
// exactly one point per grid entry. [Ensemble] runs it for many initial
// states concurrently; trajectories share nothing but the read-only
// vector field and grid.
//
// # Divergence
//
// Non-finite states are a property of the run, not an error, unless the
// [Strict] policy is selected:
//
//	opts := sim.DefaultOptions()
//	opts.Divergence = sim.Strict
//	_, err := sim.Integrate(ctx, lorenz, x0, grid, opts)
//	var de *dynamo.DivergenceError
//	if errors.As(err, &de) { ... }
package sim
