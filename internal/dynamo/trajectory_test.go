package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestTrajectoryPrefix(t *testing.T) {
	traj := &Trajectory{Points: []Point{{1, 1, 1}, {2, 2, 2}, {3, 3, 3}}}

	tests := []struct {
		n    int
		want int
	}{
		{-1, 0},
		{0, 0},
		{2, 2},
		{3, 3},
		{10, 3},
	}

	for _, tt := range tests {
		got := traj.Prefix(tt.n)
		if len(got) != tt.want {
			t.Errorf("Prefix(%d): expected %d points, got %d", tt.n, tt.want, len(got))
		}
	}

	p := traj.Prefix(2)
	if &p[0] != &traj.Points[0] {
		t.Error("prefix should alias trajectory storage")
	}
}

func TestTrajectoryFirstNonFinite(t *testing.T) {
	traj := &Trajectory{Points: []Point{{1, 1, 1}, {math.NaN(), 0, 0}, {math.Inf(1), 0, 0}}}
	if idx := traj.FirstNonFinite(); idx != 1 {
		t.Errorf("expected first non-finite at 1, got %d", idx)
	}
	if traj.Finite() {
		t.Error("trajectory with NaN reported finite")
	}
}

func TestPointOf(t *testing.T) {
	p, err := PointOf(State{1, 2, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != (Point{1, 2, 3}) {
		t.Errorf("unexpected point %v", p)
	}

	if _, err := PointOf(State{1, 2}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestErrorsUnwrap(t *testing.T) {
	var err error = &DivergenceError{Trajectory: 2, Index: 7}
	if !errors.Is(err, ErrNumericalDivergence) {
		t.Error("DivergenceError should unwrap to ErrNumericalDivergence")
	}

	err = NewConfigError("frame_count", "must be positive, got %d", 0)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Error("ConfigError should unwrap to ErrInvalidConfig")
	}
	var ce *ConfigError
	if !errors.As(err, &ce) || ce.Field != "frame_count" {
		t.Errorf("expected ConfigError for frame_count, got %v", err)
	}
}
