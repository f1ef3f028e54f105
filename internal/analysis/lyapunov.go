package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/lorenzsim/internal/dynamo"
)

// LyapunovExponent estimates the largest Lyapunov exponent using the
// trajectory separation method. A positive value indicates chaos.
//
// Algorithm:
// 1. Run two nearby trajectories
// 2. Measure their divergence over each step
// 3. Renormalise the separation back to the perturbation size
// 4. λ ≈ mean(ln(|δx(t)|/δx(0))) / dt
func LyapunovExponent(
	sys dynamo.System,
	stepper dynamo.Stepper,
	x0 dynamo.Point,
	dt, duration float64,
	perturbation float64,
) (float64, error) {
	if dt <= 0 || duration <= 0 {
		return 0, dynamo.NewConfigError("lyapunov", "dt and duration must be positive, got %g and %g", dt, duration)
	}
	if perturbation <= 0 {
		return 0, dynamo.NewConfigError("lyapunov", "perturbation must be positive, got %g", perturbation)
	}
	if !x0.IsFinite() {
		return 0, fmt.Errorf("lyapunov: initial state %s: %w", x0, dynamo.ErrNumericalDivergence)
	}

	x := x0.State()
	xp := x0.State()
	xp[0] += perturbation

	steps := int(math.Ceil(duration / dt))
	sumLog := 0.0
	count := 0

	for i := 0; i < steps; i++ {
		t := float64(i) * dt
		x = stepper.Step(sys, x, t, dt)
		xp = stepper.Step(sys, xp, t, dt)
		if !x.IsValid() || !xp.IsValid() {
			return 0, fmt.Errorf("lyapunov: step %d (t=%.4f): %w", i, t, dynamo.ErrNumericalDivergence)
		}

		sep := xp.Sub(x).Norm()
		if sep == 0 {
			continue
		}
		sumLog += math.Log(sep / perturbation)
		count++

		scale := perturbation / sep
		for j := range xp {
			xp[j] = x[j] + (xp[j]-x[j])*scale
		}
	}

	if count == 0 {
		return 0, nil
	}
	return sumLog / (float64(count) * dt), nil
}
