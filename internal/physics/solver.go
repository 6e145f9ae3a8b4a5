package physics

import (
	"fmt"
	"sort"

	"github.com/san-kum/dialmenu/internal/constraint"
	"github.com/san-kum/dialmenu/internal/dynamo"
	"github.com/san-kum/dialmenu/internal/integrators"
)

const (
	DefaultStiffness     = 120.0
	DefaultDamping       = 12.0
	DefaultSnapFrequency = 9.0
	DefaultSnapDamping   = 1.0
	DefaultSettleEpsilon = 0.25
	DefaultSubsteps      = 2
)

// SpringConfig tunes the spring solver.
type SpringConfig struct {
	Integrator    string
	Stiffness     float64
	Damping       float64
	SnapFrequency float64 // angular frequency of the snap easing
	SnapDamping   float64 // 1 is critically damped
	SettleEpsilon float64
	Substeps      int
}

func DefaultSpringConfig() SpringConfig {
	return SpringConfig{
		Integrator:    "symplectic",
		Stiffness:     DefaultStiffness,
		Damping:       DefaultDamping,
		SnapFrequency: DefaultSnapFrequency,
		SnapDamping:   DefaultSnapDamping,
		SettleEpsilon: DefaultSettleEpsilon,
		Substeps:      DefaultSubsteps,
	}
}

var solvers = map[string]func(SpringConfig) (constraint.Solver, error){
	"rigid": func(SpringConfig) (constraint.Solver, error) { return NewRigid(), nil },
	"spring": func(cfg SpringConfig) (constraint.Solver, error) {
		integ, err := integrators.Get(cfg.Integrator)
		if err != nil {
			return nil, err
		}
		return NewSpring(cfg, integ), nil
	},
}

// NewSolver builds a solver by name.
func NewSolver(name string, cfg SpringConfig) (constraint.Solver, error) {
	fn, ok := solvers[name]
	if !ok {
		return nil, fmt.Errorf("unknown solver: %s: %w", name, dynamo.ErrConfiguration)
	}
	return fn(cfg)
}

func SolverNames() []string {
	names := make([]string, 0, len(solvers))
	for name := range solvers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
