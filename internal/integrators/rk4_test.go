package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/lorenzsim/internal/dynamo"
	"github.com/san-kum/lorenzsim/internal/physics"
)

type simpleDynamics struct{}

func (s *simpleDynamics) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func (s *simpleDynamics) StateDim() int { return 2 }

func TestRK4Accuracy(t *testing.T) {
	dyn := &simpleDynamics{}
	integ := NewRK4()

	x0 := dynamo.State{1.0, 0.0}
	dt := 0.01
	steps := 100

	x := x0
	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}

	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestRK4DoesNotMutateInput(t *testing.T) {
	integ := NewRK4()
	x := dynamo.State{1, 1, 1}
	_ = integ.Step(physics.NewLorenz(), x, 0, 0.01)
	if x[0] != 1 || x[1] != 1 || x[2] != 1 {
		t.Errorf("input state mutated: %v", x)
	}
}

func TestRK4LorenzOrigin(t *testing.T) {
	integ := NewRK4()
	x := dynamo.State{0, 0, 0}
	for i := 0; i < 1000; i++ {
		x = integ.Step(physics.NewLorenz(), x, float64(i)*0.01, 0.01)
	}
	if x.Norm() != 0 {
		t.Errorf("origin is a fixed point, drifted to %v", x)
	}
}

func TestEulerLessAccurateThanRK4(t *testing.T) {
	dyn := &simpleDynamics{}
	rk4, euler := NewRK4(), NewEuler()
	x4 := dynamo.State{1, 0}
	xe := dynamo.State{1, 0}
	dt := 0.05
	for i := 0; i < 200; i++ {
		x4 = rk4.Step(dyn, x4, float64(i)*dt, dt)
		xe = euler.Step(dyn, xe, float64(i)*dt, dt)
	}
	exact := dynamo.State{math.Cos(10), -math.Sin(10)}
	if x4.Sub(exact).Norm() >= xe.Sub(exact).Norm() {
		t.Errorf("expected RK4 error below Euler: rk4=%e euler=%e", x4.Sub(exact).Norm(), xe.Sub(exact).Norm())
	}
}

func TestRegistry(t *testing.T) {
	for _, name := range Names() {
		s, err := New(name)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		if s == nil {
			t.Fatalf("New(%q) returned nil stepper", name)
		}
	}

	if _, err := New("verlet"); err == nil {
		t.Error("expected error for unknown integrator")
	}

	f, err := Factory("rk4")
	if err != nil {
		t.Fatalf("Factory: %v", err)
	}
	if f() == f() {
		t.Error("factory should return distinct instances")
	}
}
