package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/lorenzsim/internal/dynamo"
)

// Bounds is an axis-aligned box. Points counts the samples it was built
// from; the zero value is empty.
type Bounds struct {
	Min, Max dynamo.Point
	Points   int
}

func (b Bounds) Empty() bool { return b.Points == 0 }

func (b *Bounds) add(p dynamo.Point) {
	if b.Points == 0 {
		b.Min, b.Max = p, p
	} else {
		b.Min = dynamo.Point{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)}
		b.Max = dynamo.Point{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)}
	}
	b.Points++
}

// Within reports whether b lies inside other. Empty bounds are within
// anything.
func (b Bounds) Within(other Bounds) bool {
	if b.Empty() {
		return true
	}
	return b.Min.X >= other.Min.X && b.Max.X <= other.Max.X &&
		b.Min.Y >= other.Min.Y && b.Max.Y <= other.Max.Y &&
		b.Min.Z >= other.Min.Z && b.Max.Z <= other.Max.Z
}

func (b Bounds) String() string {
	return fmt.Sprintf("x[%.2f, %.2f] y[%.2f, %.2f] z[%.2f, %.2f]",
		b.Min.X, b.Max.X, b.Min.Y, b.Max.Y, b.Min.Z, b.Max.Z)
}

// Envelope returns the bounds of every finite point in trajs.
func Envelope(trajs []*dynamo.Trajectory) Bounds {
	var b Bounds
	for _, t := range trajs {
		if t == nil {
			continue
		}
		for _, p := range t.Points {
			if p.IsFinite() {
				b.add(p)
			}
		}
	}
	return b
}

// AttractorEnvelope is a generous box around the classic Lorenz
// attractor. Trajectories started within [0, 10)^3 stay inside it.
func AttractorEnvelope() Bounds {
	return Bounds{
		Min: dynamo.Point{X: -30, Y: -40, Z: -5},
		Max: dynamo.Point{X: 30, Y: 40, Z: 60},
	}
}
