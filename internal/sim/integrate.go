package sim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/lorenzsim/internal/dynamo"
	"github.com/san-kum/lorenzsim/internal/integrators"
)

// DivergencePolicy selects what happens when a state becomes NaN or Inf.
type DivergencePolicy int

const (
	// Passthrough stores non-finite states in the trajectory and keeps
	// the remaining points at the first non-finite value.
	Passthrough DivergencePolicy = iota
	// Strict aborts with a *dynamo.DivergenceError.
	Strict
)

func (p DivergencePolicy) String() string {
	if p == Strict {
		return "strict"
	}
	return "passthrough"
}

type Options struct {
	Integrator string
	// Substeps is the number of fixed steps taken between consecutive
	// grid samples.
	Substeps   int
	Tolerance  float64
	MinStep    float64
	Divergence DivergencePolicy
}

func DefaultOptions() Options {
	return Options{
		Integrator: "rk4",
		Substeps:   2,
		Tolerance:  1e-9,
		MinStep:    1e-12,
		Divergence: Passthrough,
	}
}

func (o Options) validate() error {
	if _, err := integrators.Factory(o.Integrator); err != nil {
		return dynamo.NewConfigError("integrator", "%v", err)
	}
	if o.Substeps < 1 {
		return dynamo.NewConfigError("substeps", "must be at least 1, got %d", o.Substeps)
	}
	if o.Tolerance <= 0 {
		return dynamo.NewConfigError("tolerance", "must be positive, got %g", o.Tolerance)
	}
	if o.MinStep <= 0 {
		return dynamo.NewConfigError("min_step", "must be positive, got %g", o.MinStep)
	}
	return nil
}

// Integrate solves sys from x0 over grid. The result has exactly
// len(grid) points and Points[0] == x0.
func Integrate(ctx context.Context, sys dynamo.System, x0 dynamo.Point, grid TimeGrid, opts Options) (*dynamo.Trajectory, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if sys.StateDim() != 3 {
		return nil, fmt.Errorf("%w: system has %d dimensions, trajectories are 3D", dynamo.ErrDimensionMismatch, sys.StateDim())
	}
	stepper, err := integrators.New(opts.Integrator)
	if err != nil {
		return nil, err
	}

	traj := &dynamo.Trajectory{
		Initial: x0,
		Points:  make([]dynamo.Point, len(grid)),
		Times:   grid,
	}
	traj.Points[0] = x0

	adv := advancer{sys: sys, stepper: stepper, opts: opts}
	x := x0.State()
	diverged := !x0.IsFinite()
	if diverged && opts.Divergence == Strict {
		return nil, &dynamo.DivergenceError{Index: 0, Time: grid[0], Point: x0}
	}

	for k := 1; k < len(grid); k++ {
		if diverged {
			traj.Points[k] = traj.Points[k-1]
			continue
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		x, err = adv.advance(x, grid[k-1], grid[k])
		if err != nil {
			return nil, fmt.Errorf("interval %d [%g, %g]: %w", k, grid[k-1], grid[k], err)
		}

		p := dynamo.Point{X: x[0], Y: x[1], Z: x[2]}
		traj.Points[k] = p
		if !p.IsFinite() {
			if opts.Divergence == Strict {
				return nil, &dynamo.DivergenceError{Index: k, Time: grid[k], Point: p}
			}
			diverged = true
		}
	}

	return traj, nil
}

type advancer struct {
	sys     dynamo.System
	stepper dynamo.Stepper
	opts    Options
	// h carries the adaptive step size across grid intervals.
	h float64
}

func (a *advancer) advance(x dynamo.State, t0, t1 float64) (dynamo.State, error) {
	if adaptive, ok := a.stepper.(dynamo.AdaptiveStepper); ok {
		return a.advanceAdaptive(adaptive, x, t0, t1)
	}

	h := (t1 - t0) / float64(a.opts.Substeps)
	for s := 0; s < a.opts.Substeps; s++ {
		x = a.stepper.Step(a.sys, x, t0+float64(s)*h, h)
	}
	return x, nil
}

func (a *advancer) advanceAdaptive(stepper dynamo.AdaptiveStepper, x dynamo.State, t0, t1 float64) (dynamo.State, error) {
	if a.h <= 0 {
		a.h = t1 - t0
	}

	t := t0
	for t < t1 {
		step := math.Min(a.h, t1-t)
		xNew, hNew, err := stepper.StepAdaptive(a.sys, x, t, step, a.opts.Tolerance)
		switch {
		case errors.Is(err, integrators.ErrStepRejected):
			a.h = hNew
			if a.h < a.opts.MinStep {
				return x, fmt.Errorf("%w: %g at t=%g", dynamo.ErrStepTooSmall, a.h, t)
			}
			continue
		case errors.Is(err, dynamo.ErrNumericalDivergence):
			if xNew.IsValid() {
				xNew = xNew.Scale(math.NaN())
			}
			return xNew, nil
		case err != nil:
			return x, err
		}

		x = xNew
		if step == t1-t {
			t = t1
		} else {
			t += step
		}
		// A step clipped to the grid point must not shrink the carried size.
		if step == a.h || hNew > a.h {
			a.h = hNew
		}
	}
	return x, nil
}
