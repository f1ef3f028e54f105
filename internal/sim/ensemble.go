package sim

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/lorenzsim/internal/dynamo"
)

// Ensemble integrates many initial states over the same grid. Each worker
// builds its own stepper; only the vector field and the grid are shared.
type Ensemble struct {
	sys     dynamo.System
	opts    Options
	workers int
	log     zerolog.Logger
}

// NewEnsemble returns an ensemble runner. workers <= 0 means GOMAXPROCS.
func NewEnsemble(sys dynamo.System, opts Options, workers int, log zerolog.Logger) *Ensemble {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Ensemble{sys: sys, opts: opts, workers: workers, log: log}
}

// Run returns one trajectory per start, in input order. The first error
// cancels the remaining work.
func (e *Ensemble) Run(ctx context.Context, starts []dynamo.Point, grid TimeGrid) ([]*dynamo.Trajectory, error) {
	if len(starts) == 0 {
		return nil, dynamo.NewConfigError("num_points", "no initial states")
	}
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	if err := e.opts.validate(); err != nil {
		return nil, err
	}

	began := time.Now()
	results := make([]*dynamo.Trajectory, len(starts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, x0 := range starts {
		g.Go(func() error {
			traj, err := Integrate(gctx, e.sys, x0, grid, e.opts)
			if err != nil {
				var de *dynamo.DivergenceError
				if errors.As(err, &de) {
					de.Trajectory = i
				}
				return err
			}
			if idx := traj.FirstNonFinite(); idx >= 0 {
				e.log.Warn().Int("trajectory", i).Int("index", idx).Float64("t", grid[idx]).
					Msg("trajectory diverged, keeping non-finite values")
			}
			results[i] = traj
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.log.Debug().
		Int("trajectories", len(results)).
		Int("samples", len(grid)).
		Str("integrator", e.opts.Integrator).
		Int("workers", e.workers).
		Dur("elapsed", time.Since(began)).
		Msg("ensemble integrated")

	return results, nil
}
