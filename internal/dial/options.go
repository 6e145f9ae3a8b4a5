package dial

import (
	"github.com/san-kum/dialmenu/internal/constraint"
	"github.com/san-kum/dialmenu/internal/geom"
	"github.com/san-kum/dialmenu/internal/inflate"
	"github.com/san-kum/dialmenu/internal/interaction"
	"github.com/san-kum/dialmenu/internal/physics"
	"go.uber.org/zap"
)

// Inflate reference modes.
const (
	ReferenceTop     = "top"
	ReferenceCenter  = "center"
	ReferencePointer = "pointer"
)

type InflateOptions struct {
	Enabled   bool
	Params    inflate.Params
	Reference string
}

type Options struct {
	Center   geom.Point
	Radius   float64
	ItemSize float64

	Solver   string
	Spring   physics.SpringConfig
	KeepSnap bool

	EntryDuration float64
	Easing        string

	Inflate InflateOptions
}

// DefaultOptions reproduces the reference playground: nine 50pt circles on
// a 100pt ring in a 320x480 view.
func DefaultOptions() Options {
	return Options{
		Center:        geom.Pt(160, 240),
		Radius:        100,
		ItemSize:      50,
		Solver:        "spring",
		Spring:        physics.DefaultSpringConfig(),
		EntryDuration: 0.6,
		Easing:        "ease-out-cubic",
		Inflate: InflateOptions{
			Enabled:   true,
			Params:    inflate.Params{MinScale: 0.75, MaxScale: 1.5, Threshold: 100},
			Reference: ReferenceTop,
		},
	}
}

type Option func(*Menu)

func WithLogger(l *zap.Logger) Option {
	return func(m *Menu) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithSolver overrides the solver named in Options.
func WithSolver(s constraint.Solver) Option {
	return func(m *Menu) { m.solver = s }
}

// WithTransitionObserver receives every interaction state change.
func WithTransitionObserver(fn func(interaction.Transition)) Option {
	return func(m *Menu) { m.observer = fn }
}
