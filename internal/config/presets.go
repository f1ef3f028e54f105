package config

import (
	"sort"

	"github.com/san-kum/lorenzsim/internal/dynamo"
)

type Preset struct {
	Description string
	apply       func(*Config)
}

var Presets = map[string]Preset{
	"classic": {
		Description: "10 random starts over [0, 40], 4000 samples, 400 frames",
		apply:       func(*Config) {},
	},
	"short": {
		Description: "10 random starts over [0, 10], 1000 samples, 250 frames",
		apply: func(c *Config) {
			c.TSpan = []float64{0, 10}
			c.NumTimeSamples = 1000
			c.FrameCount = 250
		},
	},
	"dense": {
		Description: "25 random starts over [0, 40], 8000 samples, full sweep at stride 20",
		apply: func(c *Config) {
			c.NumPoints = 25
			c.NumTimeSamples = 8000
			c.FrameCount = 400
			c.FrameStride = 20
		},
	},
	"single": {
		Description: "one trajectory from (1, 1, 1) over [0, 1], 100 samples",
		apply: func(c *Config) {
			c.NumPoints = 1
			c.AllowSingle = true
			c.Initial = []dynamo.Point{{X: 1, Y: 1, Z: 1}}
			c.TSpan = []float64{0, 1}
			c.NumTimeSamples = 100
			c.FrameCount = 100
		},
	},
}

// GetPreset returns a fresh default config with the named preset
// applied, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	p.apply(cfg)
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
