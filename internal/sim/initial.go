package sim

import (
	"math/rand"

	"github.com/san-kum/lorenzsim/internal/dynamo"
)

// NewRand returns a seeded source so runs are reproducible.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// InitialStates draws n points with every coordinate uniform in [0, bound).
func InitialStates(rng *rand.Rand, n int, bound float64) []dynamo.Point {
	if n <= 0 {
		return nil
	}
	starts := make([]dynamo.Point, n)
	for i := range starts {
		starts[i] = dynamo.Point{
			X: rng.Float64() * bound,
			Y: rng.Float64() * bound,
			Z: rng.Float64() * bound,
		}
	}
	return starts
}
