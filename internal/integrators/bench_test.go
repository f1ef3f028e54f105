package integrators

import (
	"testing"

	"github.com/san-kum/lorenzsim/internal/dynamo"
	"github.com/san-kum/lorenzsim/internal/physics"
)

func benchStepper(b *testing.B, integ dynamo.Stepper, dt float64) {
	sys := physics.NewLorenz()
	x := dynamo.State{1.0, 1.0, 1.0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integ.Step(sys, x, 0, dt)
	}
}

func BenchmarkEuler(b *testing.B) { benchStepper(b, NewEuler(), 0.001) }
func BenchmarkRK4(b *testing.B)   { benchStepper(b, NewRK4(), 0.005) }
func BenchmarkRK45(b *testing.B)  { benchStepper(b, NewRK45(), 0.005) }
