package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/dialmenu/internal/dynamo"
)

var registry = map[string]func() dynamo.Integrator{
	"euler":      func() dynamo.Integrator { return NewEuler() },
	"symplectic": func() dynamo.Integrator { return NewSymplecticEuler() },
	"rk4":        func() dynamo.Integrator { return NewRK4() },
	"verlet":     func() dynamo.Integrator { return NewVerlet() },
}

// Get returns a fresh integrator by name.
func Get(name string) (dynamo.Integrator, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s: %w", name, dynamo.ErrConfiguration)
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
