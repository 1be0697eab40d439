package config

import "sort"

var presets = map[string]func(*Config){
	"disk": func(c *Config) {},
	"dense": func(c *Config) {
		c.Bodies = 5000
		c.Radius = 150
		c.Theta = 0.7
	},
	"collision": func(c *Config) {
		c.Scenario = "collision"
		c.Bodies = 2000
		c.Radius = 60
		c.Steps = 2000
	},
	"binary": func(c *Config) {
		c.Scenario = "binary"
		c.Bodies = 2
		c.CenterMass = 1000
		c.Dt = 0.01
		c.Steps = 20000
		c.SnapshotEvery = 100
	},
}

// GetPreset returns the named preset applied over the defaults, or nil if the
// name is unknown.
func GetPreset(name string) *Config {
	apply, ok := presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
