package config

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/dialmenu/internal/dial"
	"github.com/san-kum/dialmenu/internal/dynamo"
	"github.com/san-kum/dialmenu/internal/entry"
	"github.com/san-kum/dialmenu/internal/geom"
	"github.com/san-kum/dialmenu/internal/inflate"
	"github.com/san-kum/dialmenu/internal/integrators"
	"github.com/san-kum/dialmenu/internal/item"
	"github.com/san-kum/dialmenu/internal/physics"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	DefaultItems     = 9
	DefaultRadius    = 100.0
	DefaultItemSize  = 50.0
	DefaultCenterX   = 160.0
	DefaultCenterY   = 240.0
	DefaultFPS       = 60
	DefaultMinScale  = 0.75
	DefaultMaxScale  = 1.5
	DefaultThreshold = 100.0
	DefaultEntry     = 0.6
)

type Config struct {
	Items      int           `yaml:"items"`
	Radius     float64       `yaml:"radius"`
	Center     PointConfig   `yaml:"center"`
	ItemSize   float64       `yaml:"item_size"`
	Solver     string        `yaml:"solver"`
	Integrator string        `yaml:"integrator"`
	Spring     SpringConfig  `yaml:"spring"`
	Entry      EntryConfig   `yaml:"entry"`
	Inflate    InflateConfig `yaml:"inflate"`
	FPS        int           `yaml:"fps"`
	Seed       int64         `yaml:"seed"`
	Colors     []string      `yaml:"colors,omitempty"`
	Logger     LoggerConfig  `yaml:"logger"`
}

type PointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type SpringConfig struct {
	Stiffness     float64 `yaml:"stiffness"`
	Damping       float64 `yaml:"damping"`
	SnapFrequency float64 `yaml:"snap_frequency"`
	SnapDamping   float64 `yaml:"snap_damping"`
	SettleEpsilon float64 `yaml:"settle_epsilon"`
	Substeps      int     `yaml:"substeps"`
	KeepSnap      bool    `yaml:"keep_snap"`
}

type EntryConfig struct {
	Duration float64 `yaml:"duration"`
	Easing   string  `yaml:"easing"`
}

type InflateConfig struct {
	Enabled   bool    `yaml:"enabled"`
	MinScale  float64 `yaml:"min_scale"`
	MaxScale  float64 `yaml:"max_scale"`
	Threshold float64 `yaml:"threshold"`
	Falloff   float64 `yaml:"falloff"`
	Reference string  `yaml:"reference"`
}

// LoggerConfig mirrors the knobs of the zap/lumberjack setup in
// observability.
type LoggerConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	AddSource   bool   `yaml:"add_source"`
	ServiceName string `yaml:"service_name"`
	LogFile     string `yaml:"log_file"`
	MaxSize     int    `yaml:"max_size"`
	MaxBackups  int    `yaml:"max_backups"`
	MaxAge      int    `yaml:"max_age"`
	Compress    bool   `yaml:"compress"`
}

func DefaultConfig() *Config {
	sp := physics.DefaultSpringConfig()
	return &Config{
		Items:      DefaultItems,
		Radius:     DefaultRadius,
		Center:     PointConfig{X: DefaultCenterX, Y: DefaultCenterY},
		ItemSize:   DefaultItemSize,
		Solver:     "spring",
		Integrator: sp.Integrator,
		Spring: SpringConfig{
			Stiffness:     sp.Stiffness,
			Damping:       sp.Damping,
			SnapFrequency: sp.SnapFrequency,
			SnapDamping:   sp.SnapDamping,
			SettleEpsilon: sp.SettleEpsilon,
			Substeps:      sp.Substeps,
		},
		Entry: EntryConfig{Duration: DefaultEntry, Easing: "ease-out-cubic"},
		Inflate: InflateConfig{
			Enabled:   true,
			MinScale:  DefaultMinScale,
			MaxScale:  DefaultMaxScale,
			Threshold: DefaultThreshold,
			Reference: dial.ReferenceTop,
		},
		FPS:  DefaultFPS,
		Seed: 1,
		Logger: LoggerConfig{
			Level:       "info",
			Format:      "console",
			ServiceName: "dialmenu",
			MaxSize:     10,
			MaxBackups:  3,
			MaxAge:      7,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first setting the menu could not run with.
func (c *Config) Validate() error {
	switch {
	case c.Items <= 0:
		return fmt.Errorf("config: items must be positive, got %d: %w", c.Items, dynamo.ErrConfiguration)
	case c.Radius <= 0:
		return fmt.Errorf("config: radius must be positive, got %f: %w", c.Radius, dynamo.ErrConfiguration)
	case c.ItemSize < 0:
		return fmt.Errorf("config: item_size must not be negative: %w", dynamo.ErrConfiguration)
	case c.FPS <= 0:
		return fmt.Errorf("config: fps must be positive, got %d: %w", c.FPS, dynamo.ErrConfiguration)
	case c.Entry.Duration < 0:
		return fmt.Errorf("config: entry duration must not be negative: %w", dynamo.ErrConfiguration)
	}
	if c.Solver == "spring" {
		if c.Spring.Stiffness <= 0 || c.Spring.Damping < 0 {
			return fmt.Errorf("config: spring stiffness must be positive and damping non-negative: %w", dynamo.ErrConfiguration)
		}
		if c.Spring.SnapFrequency <= 0 || c.Spring.SettleEpsilon <= 0 {
			return fmt.Errorf("config: snap frequency and settle epsilon must be positive: %w", dynamo.ErrConfiguration)
		}
	}
	if _, err := physics.NewSolver(c.Solver, c.springConfig()); err != nil {
		return err
	}
	if _, err := c.colorSource(); err != nil {
		return err
	}
	if _, err := integrators.Get(c.Integrator); err != nil {
		return err
	}
	if _, err := entry.EasingByName(c.Entry.Easing); err != nil {
		return err
	}
	if c.Inflate.Enabled {
		if err := c.inflateParams().Validate(); err != nil {
			return err
		}
		switch c.Inflate.Reference {
		case "", dial.ReferenceTop, dial.ReferenceCenter, dial.ReferencePointer:
		default:
			return fmt.Errorf("config: unknown inflate reference %q: %w", c.Inflate.Reference, dynamo.ErrConfiguration)
		}
	}
	return nil
}

func (c *Config) springConfig() physics.SpringConfig {
	return physics.SpringConfig{
		Integrator:    c.Integrator,
		Stiffness:     c.Spring.Stiffness,
		Damping:       c.Spring.Damping,
		SnapFrequency: c.Spring.SnapFrequency,
		SnapDamping:   c.Spring.SnapDamping,
		SettleEpsilon: c.Spring.SettleEpsilon,
		Substeps:      c.Spring.Substeps,
	}
}

func (c *Config) inflateParams() inflate.Params {
	return inflate.Params{
		MinScale:  c.Inflate.MinScale,
		MaxScale:  c.Inflate.MaxScale,
		Threshold: c.Inflate.Threshold,
		Falloff:   c.Inflate.Falloff,
	}
}

// MenuOptions converts the file settings into dial options.
func (c *Config) MenuOptions() dial.Options {
	return dial.Options{
		Center:        geom.Pt(c.Center.X, c.Center.Y),
		Radius:        c.Radius,
		ItemSize:      c.ItemSize,
		Solver:        c.Solver,
		Spring:        c.springConfig(),
		KeepSnap:      c.Spring.KeepSnap,
		EntryDuration: c.Entry.Duration,
		Easing:        c.Entry.Easing,
		Inflate: dial.InflateOptions{
			Enabled:   c.Inflate.Enabled,
			Params:    c.inflateParams(),
			Reference: c.Inflate.Reference,
		},
	}
}

// TickSeconds is the simulation step for one frame.
func (c *Config) TickSeconds() float64 {
	if c.FPS <= 0 {
		return 1.0 / DefaultFPS
	}
	return 1 / float64(c.FPS)
}

// colorSource cycles through c.Colors, or draws random colours from c.Seed
// when none are listed.
func (c *Config) colorSource() (item.ColorSource, error) {
	if len(c.Colors) == 0 {
		return item.RandomColors(rand.New(rand.NewSource(c.Seed))), nil
	}
	palette := make([]colorful.Color, len(c.Colors))
	for i, hex := range c.Colors {
		col, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("config: color %q: %v: %w", hex, err, dynamo.ErrConfiguration)
		}
		palette[i] = col
	}
	return item.Palette(palette...), nil
}

// NewMenu validates c and returns a menu already laid out with c.Items
// items coloured from c.Colors or c.Seed.
func (c *Config) NewMenu(logger *zap.Logger, options ...dial.Option) (*dial.Menu, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	m, err := dial.New(c.MenuOptions(), append([]dial.Option{dial.WithLogger(logger)}, options...)...)
	if err != nil {
		return nil, err
	}
	colors, err := c.colorSource()
	if err != nil {
		return nil, err
	}
	items, err := item.Create(c.Items, colors)
	if err != nil {
		return nil, err
	}
	if err := m.SetItems(items); err != nil {
		return nil, err
	}
	return m, nil
}
