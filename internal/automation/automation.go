package automation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/san-kum/dialmenu/internal/config"
	"github.com/san-kum/dialmenu/internal/dial"
	"github.com/san-kum/dialmenu/internal/dynamo"
	"github.com/san-kum/dialmenu/internal/geom"
	"github.com/san-kum/dialmenu/internal/interaction"
	"github.com/san-kum/dialmenu/internal/metrics"
	"github.com/san-kum/dialmenu/internal/trace"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted pointer session replayed against a headless menu.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Preset      string         `yaml:"preset"`
	Config      string         `yaml:"config"`
	Steps       []ScenarioStep `yaml:"steps"`

	dir string
}

// ScenarioStep dispatches an optional pointer event, then runs Ticks ticks.
type ScenarioStep struct {
	Pointer *PointerStep `yaml:"pointer"`
	Ticks   int          `yaml:"ticks"`
}

// PointerStep is one pointer event. A down without an item is hit-tested;
// move and up always go to the active drag.
type PointerStep struct {
	Type string  `yaml:"type"`
	Item *int    `yaml:"item"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

// Result is what a scenario run leaves behind.
type Result struct {
	Config      *config.Config
	Recorder    *trace.Recorder
	Transitions []interaction.Transition
	Final       dial.Frame
	Metrics     map[string]float64
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("automation: parse %s: %w", path, err)
	}
	scenario.dir = filepath.Dir(path)
	return &scenario, nil
}

// ResolveConfig picks the scenario's config: a file (relative to the
// scenario) wins over a preset; neither gives the defaults.
func (s *Scenario) ResolveConfig() (*config.Config, error) {
	if s.Config != "" {
		path := s.Config
		if !filepath.IsAbs(path) && s.dir != "" {
			path = filepath.Join(s.dir, path)
		}
		return config.Load(path)
	}
	if s.Preset != "" {
		cfg := config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("automation: unknown preset %q: %w", s.Preset, dynamo.ErrConfiguration)
		}
		return cfg, nil
	}
	return config.DefaultConfig(), nil
}

func (p *PointerStep) event(m *dial.Menu) (interaction.Event, error) {
	loc := geom.Pt(p.X, p.Y)
	switch p.Type {
	case "down":
		if p.Item != nil {
			return interaction.Down(*p.Item, loc), nil
		}
		idx, _ := m.HitTest(loc)
		return interaction.Down(idx, loc), nil
	case "move":
		return interaction.Move(loc), nil
	case "up":
		return interaction.Up(loc), nil
	}
	return interaction.Event{}, fmt.Errorf("automation: unknown pointer type %q: %w", p.Type, dynamo.ErrInvalidInput)
}

// RunScenario replays every step and records a frame after each tick.
// cfg overrides the scenario's own config when non-nil.
func RunScenario(ctx context.Context, scenario *Scenario, cfg *config.Config, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		var err error
		if cfg, err = scenario.ResolveConfig(); err != nil {
			return nil, err
		}
	}

	res := &Result{Config: cfg, Recorder: trace.NewRecorder()}
	m, err := cfg.NewMenu(logger, dial.WithTransitionObserver(func(t interaction.Transition) {
		res.Transitions = append(res.Transitions, t)
	}))
	if err != nil {
		return nil, err
	}
	res.Recorder.Record(m.Frame())

	dt := cfg.TickSeconds()
	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		logger.Debug("scenario step", zap.String("scenario", scenario.Name), zap.Int("step", i+1), zap.Int("ticks", step.Ticks))

		if step.Pointer != nil {
			ev, err := step.Pointer.event(m)
			if err != nil {
				return res, fmt.Errorf("step %d: %w", i+1, err)
			}
			if err := m.HandlePointer(ev); err != nil {
				return res, fmt.Errorf("step %d: %w", i+1, err)
			}
		}
		for k := 0; k < step.Ticks; k++ {
			if err := m.Tick(dt); err != nil {
				return res, fmt.Errorf("step %d tick %d: %w", i+1, k, err)
			}
			res.Recorder.Record(m.Frame())
		}
	}

	res.Final = m.Frame()
	center := geom.Pt(cfg.Center.X, cfg.Center.Y)
	res.Metrics = metrics.Collect(res.Recorder.Frames(),
		metrics.NewPeakEnergy(),
		metrics.NewStability(center, 4*cfg.Radius),
	)
	logger.Info("scenario finished",
		zap.String("scenario", scenario.Name),
		zap.Int("steps", len(scenario.Steps)),
		zap.Int("frames", res.Recorder.Len()))
	return res, nil
}
