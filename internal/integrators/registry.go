package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/lorenzsim/internal/dynamo"
)

var factories = map[string]func() dynamo.Stepper{
	"euler": func() dynamo.Stepper { return NewEuler() },
	"rk4":   func() dynamo.Stepper { return NewRK4() },
	"rk45":  func() dynamo.Stepper { return NewRK45() },
}

// New returns a fresh stepper by name. Every call allocates a new
// instance so goroutines never share scratch buffers.
func New(name string) (dynamo.Stepper, error) {
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s (available: %v)", name, Names())
	}
	return f(), nil
}

// Factory returns the constructor for name, for callers that need one
// stepper per worker.
func Factory(name string) (func() dynamo.Stepper, error) {
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s (available: %v)", name, Names())
	}
	return f, nil
}

func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
