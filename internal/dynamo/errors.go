package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidConfig indicates a run configuration rejected before integration.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrNumericalDivergence indicates the integrated state became NaN or Inf.
	ErrNumericalDivergence = errors.New("dynamo: numerical divergence (NaN or Inf detected)")

	// ErrStepTooSmall indicates adaptive timestep became too small.
	ErrStepTooSmall = errors.New("dynamo: adaptive timestep below minimum")

	// ErrDimensionMismatch indicates mismatched state/system dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")
)

// ConfigError names the offending configuration field.
type ConfigError struct {
	Field  string
	Reason string
}

func NewConfigError(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidConfig.Error(), e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// DivergenceError wraps ErrNumericalDivergence with the location of the
// first non-finite state.
type DivergenceError struct {
	Trajectory int
	Index      int
	Time       float64
	Point      Point
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("%s: trajectory %d at index %d (t=%.4f): %s",
		ErrNumericalDivergence.Error(), e.Trajectory, e.Index, e.Time, e.Point)
}

func (e *DivergenceError) Unwrap() error { return ErrNumericalDivergence }
