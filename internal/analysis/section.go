package analysis

import (
	"math"

	"github.com/san-kum/lorenzsim/internal/dynamo"
)

// Crossing is a point where a trajectory passes upward through a plane
// z = const, linearly interpolated between samples.
type Crossing struct {
	Time float64
	X, Y float64
}

// Section records the upward crossings of the plane z = level. Segments
// touching a non-finite point are skipped.
func Section(t *dynamo.Trajectory, level float64) []Crossing {
	var out []Crossing
	for i := 1; i < t.Len(); i++ {
		a, b := t.Points[i-1], t.Points[i]
		if !a.IsFinite() || !b.IsFinite() {
			continue
		}
		if a.Z < level && b.Z >= level {
			frac := (level - a.Z) / (b.Z - a.Z)
			c := Crossing{
				X: a.X + frac*(b.X-a.X),
				Y: a.Y + frac*(b.Y-a.Y),
			}
			if len(t.Times) > i {
				c.Time = t.Times[i-1] + frac*(t.Times[i]-t.Times[i-1])
			}
			out = append(out, c)
		}
	}
	return out
}

// ZMaxima returns the successive local maxima of z. Plotting each
// against the next gives Lorenz's return map.
func ZMaxima(t *dynamo.Trajectory) []float64 {
	var out []float64
	for i := 1; i+1 < t.Len(); i++ {
		prev, cur, next := t.Points[i-1].Z, t.Points[i].Z, t.Points[i+1].Z
		if math.IsNaN(prev) || math.IsNaN(cur) || math.IsNaN(next) || math.IsInf(cur, 0) {
			continue
		}
		if cur > prev && cur >= next {
			out = append(out, cur)
		}
	}
	return out
}

// Component selects one coordinate of each point.
func Component(pts []dynamo.Point, axis byte) []float64 {
	out := make([]float64, len(pts))
	for i, p := range pts {
		switch axis {
		case 'x':
			out[i] = p.X
		case 'y':
			out[i] = p.Y
		default:
			out[i] = p.Z
		}
	}
	return out
}
