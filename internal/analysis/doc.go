// Package analysis characterises integrated Lorenz trajectories.
//
//   - [Envelope]: axis-aligned bounds of the finite points of a run
//   - [LyapunovExponent]: largest Lyapunov exponent via trajectory separation
//   - [Section]: Poincaré section through a plane of constant z
//   - [ZMaxima]: successive maxima of z, the Lorenz return map
//   - [DominantFrequency]: strongest non-zero frequency of a sampled signal
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda, err := analysis.LyapunovExponent(sys, stepper, x0, dt, duration, 1e-8)
//	if err == nil && lambda > 0 {
//	    // System is chaotic
//	}
package analysis
