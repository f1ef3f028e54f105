package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/lorenzsim/internal/dynamo"
	"github.com/san-kum/lorenzsim/internal/frames"
	"github.com/san-kum/lorenzsim/internal/integrators"
	"github.com/san-kum/lorenzsim/internal/sim"
	"github.com/san-kum/lorenzsim/internal/viz"
)

const (
	DefaultNumPoints      = 10
	DefaultT0             = 0.0
	DefaultT1             = 40.0
	DefaultNumTimeSamples = 4000
	DefaultFrameCount     = frames.DefaultFrameCount
	DefaultIntervalMS     = 20
	DefaultFPS            = 15
	DefaultBitrate        = 1800
	DefaultInitBound      = 10.0
	DefaultDataDir        = ".lorenzsim"
)

type Config struct {
	NumPoints      int       `yaml:"num_points"`
	TSpan          []float64 `yaml:"t_span"`
	NumTimeSamples int       `yaml:"num_time_samples"`
	FrameCount     int       `yaml:"frame_count"`
	FrameStride    int       `yaml:"frame_stride"`
	IntervalMS     int       `yaml:"interval_ms"`
	Loop           bool      `yaml:"loop"`
	FPS            int       `yaml:"fps"`
	Bitrate        int       `yaml:"bitrate"`

	// Seed 0 means time based.
	Seed      int64   `yaml:"seed"`
	InitBound float64 `yaml:"init_bound"`
	// Initial overrides the random initial states when set.
	Initial     []dynamo.Point `yaml:"initial,omitempty"`
	AllowSingle bool           `yaml:"allow_single,omitempty"`

	Integrator string  `yaml:"integrator"`
	Substeps   int     `yaml:"substeps"`
	Tolerance  float64 `yaml:"tolerance"`
	Strict     bool    `yaml:"strict"`
	Workers    int     `yaml:"workers"`

	Axes     viz.Axes `yaml:"axes"`
	Theme    string   `yaml:"theme"`
	LogLevel string   `yaml:"log_level"`
	LogJSON  bool     `yaml:"log_json"`
	DataDir  string   `yaml:"data_dir"`
}

func DefaultConfig() *Config {
	opts := sim.DefaultOptions()
	return &Config{
		NumPoints:      DefaultNumPoints,
		TSpan:          []float64{DefaultT0, DefaultT1},
		NumTimeSamples: DefaultNumTimeSamples,
		FrameCount:     DefaultFrameCount,
		FrameStride:    1,
		IntervalMS:     DefaultIntervalMS,
		FPS:            DefaultFPS,
		Bitrate:        DefaultBitrate,
		InitBound:      DefaultInitBound,
		Integrator:     opts.Integrator,
		Substeps:       opts.Substeps,
		Tolerance:      opts.Tolerance,
		Axes:           viz.DefaultAxes(),
		Theme:          viz.ThemeTab10.Name,
		LogLevel:       "info",
		DataDir:        DefaultDataDir,
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a YAML file over base, typically a preset.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return base, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations that cannot produce an animation. It
// runs before any integration starts.
func (c *Config) Validate() error {
	minPoints := 2
	if c.AllowSingle {
		minPoints = 1
	}
	switch {
	case c.NumPoints < minPoints:
		return dynamo.NewConfigError("num_points", "need at least %d initial conditions, got %d", minPoints, c.NumPoints)
	case len(c.Initial) > 0 && len(c.Initial) != c.NumPoints:
		return dynamo.NewConfigError("initial", "%d initial states given for num_points %d", len(c.Initial), c.NumPoints)
	case c.NumTimeSamples < 2:
		return dynamo.NewConfigError("num_time_samples", "must be at least 2, got %d", c.NumTimeSamples)
	case len(c.TSpan) != 2:
		return dynamo.NewConfigError("t_span", "want [t0, t1], got %v", c.TSpan)
	case !(c.TSpan[1] > c.TSpan[0]):
		return dynamo.NewConfigError("t_span", "t1 must exceed t0, got [%g, %g]", c.TSpan[0], c.TSpan[1])
	case c.FrameCount <= 0:
		return dynamo.NewConfigError("frame_count", "must be positive, got %d", c.FrameCount)
	case c.FrameStride < 1:
		return dynamo.NewConfigError("frame_stride", "must be at least 1, got %d", c.FrameStride)
	case c.IntervalMS <= 0:
		return dynamo.NewConfigError("interval_ms", "must be positive, got %d", c.IntervalMS)
	case c.FPS <= 0:
		return dynamo.NewConfigError("fps", "must be positive, got %d", c.FPS)
	case c.Bitrate <= 0:
		return dynamo.NewConfigError("bitrate", "must be positive, got %d", c.Bitrate)
	case len(c.Initial) == 0 && !(c.InitBound > 0):
		return dynamo.NewConfigError("init_bound", "must be positive, got %g", c.InitBound)
	case c.Workers < 0:
		return dynamo.NewConfigError("workers", "must not be negative, got %d", c.Workers)
	}
	if _, err := integrators.Factory(c.Integrator); err != nil {
		return dynamo.NewConfigError("integrator", "%v", err)
	}
	if c.Substeps < 1 {
		return dynamo.NewConfigError("substeps", "must be at least 1, got %d", c.Substeps)
	}
	if !(c.Tolerance > 0) {
		return dynamo.NewConfigError("tolerance", "must be positive, got %g", c.Tolerance)
	}
	return c.Axes.Validate()
}

func (c *Config) Grid() sim.TimeGrid {
	return sim.Linspace(c.TSpan[0], c.TSpan[1], c.NumTimeSamples)
}

func (c *Config) SimOptions() sim.Options {
	opts := sim.DefaultOptions()
	opts.Integrator = c.Integrator
	opts.Substeps = c.Substeps
	opts.Tolerance = c.Tolerance
	if c.Strict {
		opts.Divergence = sim.Strict
	}
	return opts
}

// EffectiveSeed resolves seed 0 to the current time.
func (c *Config) EffectiveSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// InitialStates returns the configured starting points, or draws
// NumPoints uniformly from [0, InitBound)^3 with seed.
func (c *Config) InitialStates(seed int64) []dynamo.Point {
	if len(c.Initial) > 0 {
		out := make([]dynamo.Point, len(c.Initial))
		copy(out, c.Initial)
		return out
	}
	return sim.InitialStates(sim.NewRand(seed), c.NumPoints, c.InitBound)
}

func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalMS) * time.Millisecond
}

func (c *Config) FrameOptions() []frames.Option {
	return []frames.Option{
		frames.WithMapping(frames.Stride(c.FrameStride)),
		frames.WithLoop(c.Loop),
	}
}
