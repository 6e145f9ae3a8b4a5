package config

import "sort"

// Presets tweak DefaultConfig. "reference" is the 320x480 playground the
// dial was designed against.
var Presets = map[string]func(*Config){
	"reference": func(c *Config) {},
	"compact": func(c *Config) {
		c.Items, c.Radius, c.ItemSize = 6, 60, 36
		c.Center = PointConfig{X: 100, Y: 100}
		c.Inflate.Threshold = 60
		c.Colors = []string{"#ff6b6b", "#feca57", "#48dbfb", "#1dd1a1"}
	},
	"wide": func(c *Config) {
		c.Items, c.Radius, c.ItemSize = 12, 160, 44
		c.Center = PointConfig{X: 240, Y: 240}
		c.Inflate.Threshold = 140
		c.Entry.Easing = "ease-out-back"
	},
	"springy": func(c *Config) {
		c.Solver = "spring"
		c.Integrator = "verlet"
		c.Spring.Stiffness, c.Spring.Damping = 60, 3
		c.Spring.SnapFrequency, c.Spring.SnapDamping = 6, 0.4
		c.Spring.Substeps = 4
		c.Entry.Duration = 1.2
	},
	"rigid": func(c *Config) {
		c.Solver = "rigid"
		c.Spring.KeepSnap = true
	},
}

// GetPreset returns a fresh config for the named preset, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
