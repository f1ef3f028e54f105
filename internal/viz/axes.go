package viz

import (
	"fmt"
	"math"

	"github.com/san-kum/lorenzsim/internal/dynamo"
)

type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

func (r Range) Span() float64               { return r.Max - r.Min }
func (r Range) Contains(v float64) bool     { return v >= r.Min && v <= r.Max }
func (r Range) Normalize(v float64) float64 { return 2*(v-r.Min)/r.Span() - 1 }

// Axes holds plot bounds and cosmetic labels.
type Axes struct {
	X      Range  `yaml:"x"`
	Y      Range  `yaml:"y"`
	Z      Range  `yaml:"z"`
	XLabel string `yaml:"x_label"`
	YLabel string `yaml:"y_label"`
	ZLabel string `yaml:"z_label"`
	Title  string `yaml:"title"`
}

func DefaultAxes() Axes {
	return Axes{
		X:      Range{-25, 25},
		Y:      Range{-35, 35},
		Z:      Range{5, 55},
		XLabel: "X Axis",
		YLabel: "Y Axis",
		ZLabel: "Z Axis",
		Title:  "Lorenz Attractor Animation",
	}
}

func (a Axes) Validate() error {
	for _, r := range []struct {
		name string
		rng  Range
	}{{"axes.x", a.X}, {"axes.y", a.Y}, {"axes.z", a.Z}} {
		if math.IsNaN(r.rng.Span()) || math.IsInf(r.rng.Span(), 0) || r.rng.Span() <= 0 {
			return dynamo.NewConfigError(r.name, "empty range [%g, %g]", r.rng.Min, r.rng.Max)
		}
	}
	return nil
}

func (a Axes) Contains(p dynamo.Point) bool {
	return a.X.Contains(p.X) && a.Y.Contains(p.Y) && a.Z.Contains(p.Z)
}

// Corners returns the eight corners of the axis box.
func (a Axes) Corners() [8]dynamo.Point {
	var c [8]dynamo.Point
	for i := 0; i < 8; i++ {
		c[i] = dynamo.Point{X: a.X.Min, Y: a.Y.Min, Z: a.Z.Min}
		if i&1 != 0 {
			c[i].X = a.X.Max
		}
		if i&2 != 0 {
			c[i].Y = a.Y.Max
		}
		if i&4 != 0 {
			c[i].Z = a.Z.Max
		}
	}
	return c
}

// BoxEdges lists the twelve edges of the axis box as corner index pairs.
var BoxEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7},
	{0, 2}, {1, 3}, {4, 6}, {5, 7},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

func (a Axes) String() string {
	return fmt.Sprintf("x[%g,%g] y[%g,%g] z[%g,%g]", a.X.Min, a.X.Max, a.Y.Min, a.Y.Max, a.Z.Min, a.Z.Max)
}
