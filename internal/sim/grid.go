package sim

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/lorenzsim/internal/dynamo"
)

// TimeGrid is an ordered sequence of sample times shared by every
// trajectory of a run.
type TimeGrid []float64

// Linspace returns n evenly spaced samples over [start, end], both
// endpoints included.
func Linspace(start, end float64, n int) TimeGrid {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return TimeGrid{start}
	}
	g := make([]float64, n)
	floats.Span(g, start, end)
	return TimeGrid(g)
}

func (g TimeGrid) Len() int { return len(g) }

func (g TimeGrid) Span() (float64, float64) {
	if len(g) == 0 {
		return 0, 0
	}
	return g[0], g[len(g)-1]
}

// Validate requires at least two finite, strictly increasing samples.
func (g TimeGrid) Validate() error {
	if len(g) < 2 {
		return dynamo.NewConfigError("time_grid", "need at least 2 samples, got %d", len(g))
	}
	for i, t := range g {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return dynamo.NewConfigError("time_grid", "sample %d is not finite", i)
		}
		if i > 0 && t <= g[i-1] {
			return dynamo.NewConfigError("time_grid", "not strictly increasing at %d (%g <= %g)", i, t, g[i-1])
		}
	}
	return nil
}
