package physics

import (
	"math"

	"github.com/san-kum/lorenzsim/internal/dynamo"
)

// Classic Lorenz parameters.
const (
	Sigma = 10.0
	Rho   = 28.0
	Beta  = 8.0 / 3.0
)

// Lorenz is the butterfly attractor vector field. It holds no mutable
// state and is safe for concurrent use.
type Lorenz struct{ sigma, rho, beta float64 }

func NewLorenz() *Lorenz        { return &Lorenz{Sigma, Rho, Beta} }
func (l *Lorenz) StateDim() int { return 3 }

// Derive calculates the Lorenz attractor derivatives.
func (l *Lorenz) Derive(s dynamo.State, _ float64) dynamo.State {
	return dynamo.State{l.sigma * (s[1] - s[0]), s[0]*(l.rho-s[2]) - s[1], s[0]*s[1] - l.beta*s[2]}
}

func (l *Lorenz) DefaultState() dynamo.Point { return dynamo.Point{X: 1, Y: 1, Z: 1} }

func (l *Lorenz) Params() map[string]float64 {
	return map[string]float64{"sigma": l.sigma, "rho": l.rho, "beta": l.beta}
}

// Equilibria returns the three fixed points: the origin and the centres
// of the two wings.
func (l *Lorenz) Equilibria() []dynamo.Point {
	c := math.Sqrt(l.beta * (l.rho - 1))
	return []dynamo.Point{
		{},
		{X: c, Y: c, Z: l.rho - 1},
		{X: -c, Y: -c, Z: l.rho - 1},
	}
}
