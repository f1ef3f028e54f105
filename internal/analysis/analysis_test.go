package analysis

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/lorenzsim/internal/dynamo"
	"github.com/san-kum/lorenzsim/internal/integrators"
	"github.com/san-kum/lorenzsim/internal/physics"
	"github.com/san-kum/lorenzsim/internal/sim"
)

func TestEnvelopeSkipsNonFinite(t *testing.T) {
	tr := &dynamo.Trajectory{Points: []dynamo.Point{
		{X: 1, Y: -2, Z: 3},
		{X: math.NaN(), Y: 100, Z: 100},
		{X: -4, Y: 5, Z: math.Inf(1)},
		{X: 2, Y: 0, Z: -1},
	}}

	b := Envelope([]*dynamo.Trajectory{tr, nil})
	if b.Points != 2 {
		t.Fatalf("expected 2 finite points, got %d", b.Points)
	}
	if b.Min != (dynamo.Point{X: 1, Y: -2, Z: -1}) || b.Max != (dynamo.Point{X: 2, Y: 0, Z: 3}) {
		t.Errorf("unexpected bounds %s", b)
	}
}

func TestBoundsWithin(t *testing.T) {
	box := AttractorEnvelope()
	tests := []struct {
		name string
		b    Bounds
		want bool
	}{
		{"empty", Bounds{}, true},
		{"inside", Bounds{Min: dynamo.Point{X: -20, Y: -20, Z: 1}, Max: dynamo.Point{X: 20, Y: 20, Z: 50}, Points: 5}, true},
		{"z too high", Bounds{Min: dynamo.Point{Z: 1}, Max: dynamo.Point{Z: 61}, Points: 2}, false},
		{"x too low", Bounds{Min: dynamo.Point{X: -31}, Max: dynamo.Point{}, Points: 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.b.Within(box); got != tt.want {
				t.Errorf("Within = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultRunStaysOnAttractor(t *testing.T) {
	sys := physics.NewLorenz()
	starts := sim.InitialStates(sim.NewRand(7), 10, 10)
	grid := sim.Linspace(0, 40, 4000)

	trajs := make([]*dynamo.Trajectory, len(starts))
	for i, x0 := range starts {
		tr, err := sim.Integrate(context.Background(), sys, x0, grid, sim.DefaultOptions())
		if err != nil {
			t.Fatalf("integrate %d: %v", i, err)
		}
		trajs[i] = tr
	}

	b := Envelope(trajs)
	if b.Points != 10*4000 {
		t.Fatalf("expected every point finite, got %d", b.Points)
	}
	if !b.Within(AttractorEnvelope()) {
		t.Errorf("envelope %s escapes %s", b, AttractorEnvelope())
	}
}

func TestLyapunovPositiveForLorenz(t *testing.T) {
	sys := physics.NewLorenz()
	rk4 := integrators.NewRK4()

	// Settle onto the attractor before measuring.
	x := dynamo.State{1, 1, 1}
	for i := 0; i < 2000; i++ {
		x = rk4.Step(sys, x, 0, 0.01)
	}
	x0, err := dynamo.PointOf(x)
	if err != nil {
		t.Fatal(err)
	}

	lambda, err := LyapunovExponent(sys, rk4, x0, 0.01, 100, 1e-8)
	if err != nil {
		t.Fatal(err)
	}
	// Literature value is about 0.906.
	if lambda < 0.5 || lambda > 1.4 {
		t.Errorf("expected lambda near 0.9, got %f", lambda)
	}
}

func TestLyapunovRejectsBadInput(t *testing.T) {
	sys := physics.NewLorenz()
	rk4 := integrators.NewRK4()

	if _, err := LyapunovExponent(sys, rk4, dynamo.Point{}, 0, 1, 1e-8); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("dt=0: expected ErrInvalidConfig, got %v", err)
	}
	if _, err := LyapunovExponent(sys, rk4, dynamo.Point{}, 0.01, 1, 0); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("perturbation=0: expected ErrInvalidConfig, got %v", err)
	}
	if _, err := LyapunovExponent(sys, rk4, dynamo.Point{X: math.NaN()}, 0.01, 1, 1e-8); !errors.Is(err, dynamo.ErrNumericalDivergence) {
		t.Errorf("NaN start: expected ErrNumericalDivergence, got %v", err)
	}
}

func TestSectionInterpolates(t *testing.T) {
	tr := &dynamo.Trajectory{
		Points: []dynamo.Point{{X: 0, Y: 0, Z: 20}, {X: 2, Y: 4, Z: 30}, {X: 0, Y: 0, Z: 20}, {X: math.NaN(), Z: 40}},
		Times:  []float64{0, 1, 2, 3},
	}
	cs := Section(tr, 25)
	if len(cs) != 1 {
		t.Fatalf("expected 1 upward crossing, got %d", len(cs))
	}
	if cs[0].X != 1 || cs[0].Y != 2 || cs[0].Time != 0.5 {
		t.Errorf("unexpected crossing %+v", cs[0])
	}
}

func TestZMaxima(t *testing.T) {
	zs := []float64{1, 3, 2, 5, 5, 4, 6}
	tr := &dynamo.Trajectory{Points: make([]dynamo.Point, len(zs))}
	for i, z := range zs {
		tr.Points[i].Z = z
	}
	got := ZMaxima(tr)
	want := []float64{3, 5}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("maxima[%d] = %f, want %f", i, got[i], want[i])
		}
	}
}

func TestDominantFrequency(t *testing.T) {
	const dt = 0.01
	data := make([]float64, 1000)
	for i := range data {
		data[i] = 3 + math.Sin(2*math.Pi*5*float64(i)*dt)
	}
	if f := DominantFrequency(data, dt); math.Abs(f-5) > 0.11 {
		t.Errorf("expected 5 Hz, got %f", f)
	}

	if f := DominantFrequency([]float64{2, 2, 2, 2}, dt); f != 0 {
		t.Errorf("constant signal: expected 0, got %f", f)
	}
	if f := DominantFrequency([]float64{1, math.NaN(), 1}, dt); f != 0 {
		t.Errorf("NaN signal: expected 0, got %f", f)
	}
}
