package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/lorenzsim/internal/dynamo"
	"github.com/san-kum/lorenzsim/internal/sim"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.NumPoints != 10 {
		t.Errorf("expected 10 points, got %d", cfg.NumPoints)
	}
	if cfg.TSpan[0] != 0 || cfg.TSpan[1] != 40 {
		t.Errorf("expected t_span [0, 40], got %v", cfg.TSpan)
	}
	if cfg.NumTimeSamples != 4000 || cfg.FrameCount != 400 {
		t.Errorf("expected 4000 samples and 400 frames, got %d and %d", cfg.NumTimeSamples, cfg.FrameCount)
	}
	if cfg.Interval().Milliseconds() != 20 {
		t.Errorf("expected 20ms interval, got %v", cfg.Interval())
	}
	if cfg.FPS != 15 || cfg.Bitrate != 1800 {
		t.Errorf("expected 15 fps at 1800 kbit/s, got %d at %d", cfg.FPS, cfg.Bitrate)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		mod   func(*Config)
		field string
	}{
		{"zero points", func(c *Config) { c.NumPoints = 0 }, "num_points"},
		{"one point", func(c *Config) { c.NumPoints = 1 }, "num_points"},
		{"one sample", func(c *Config) { c.NumTimeSamples = 1 }, "num_time_samples"},
		{"reversed span", func(c *Config) { c.TSpan = []float64{40, 0} }, "t_span"},
		{"empty span", func(c *Config) { c.TSpan = []float64{5, 5} }, "t_span"},
		{"short span", func(c *Config) { c.TSpan = []float64{5} }, "t_span"},
		{"zero frames", func(c *Config) { c.FrameCount = 0 }, "frame_count"},
		{"zero stride", func(c *Config) { c.FrameStride = 0 }, "frame_stride"},
		{"zero interval", func(c *Config) { c.IntervalMS = 0 }, "interval_ms"},
		{"negative fps", func(c *Config) { c.FPS = -1 }, "fps"},
		{"zero bitrate", func(c *Config) { c.Bitrate = 0 }, "bitrate"},
		{"unknown integrator", func(c *Config) { c.Integrator = "lsoda" }, "integrator"},
		{"zero substeps", func(c *Config) { c.Substeps = 0 }, "substeps"},
		{"empty axis", func(c *Config) { c.Axes.Z.Max = c.Axes.Z.Min }, "axes.z"},
		{"initial mismatch", func(c *Config) { c.Initial = []dynamo.Point{{X: 1}} }, "initial"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mod(cfg)
			err := cfg.Validate()
			if !errors.Is(err, dynamo.ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			var ce *dynamo.ConfigError
			if !errors.As(err, &ce) || ce.Field != tt.field {
				t.Errorf("expected field %q, got %v", tt.field, err)
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("preset %s: got nil", name)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s should validate: %v", name, err)
		}
	}

	single := GetPreset("single")
	if single.NumPoints != 1 || len(single.Initial) != 1 || single.Initial[0] != (dynamo.Point{X: 1, Y: 1, Z: 1}) {
		t.Errorf("unexpected single preset: %+v", single)
	}

	// Presets must not share state.
	GetPreset("short").TSpan[1] = 99
	if GetPreset("short").TSpan[1] != 10 {
		t.Error("preset mutation leaked")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	want := []string{"classic", "dense", "short", "single"}
	got := ListPresets()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
		}
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lorenz.yaml")
	data := `
num_points: 3
t_span: [0, 5]
strict: true
axes:
  x: {min: -10, max: 10}
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.NumPoints != 3 || cfg.TSpan[1] != 5 || !cfg.Strict {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.NumTimeSamples != DefaultNumTimeSamples {
		t.Errorf("expected default samples, got %d", cfg.NumTimeSamples)
	}
	if cfg.Axes.X.Min != -10 || cfg.Axes.Y.Max != 35 || cfg.Axes.Title == "" {
		t.Errorf("expected axes merged with defaults, got %+v", cfg.Axes)
	}
	if cfg.SimOptions().Divergence != sim.Strict {
		t.Error("expected strict divergence policy")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "single.yaml")
	if err := Save(path, GetPreset("single")); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("reloaded preset should validate: %v", err)
	}
	if got := cfg.InitialStates(1); len(got) != 1 || got[0] != (dynamo.Point{X: 1, Y: 1, Z: 1}) {
		t.Errorf("unexpected initial states %v", got)
	}
}

func TestInitialStatesSeeded(t *testing.T) {
	cfg := DefaultConfig()
	a, b := cfg.InitialStates(42), cfg.InitialStates(42)
	if len(a) != cfg.NumPoints {
		t.Fatalf("expected %d states, got %d", cfg.NumPoints, len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("state %d differs for the same seed", i)
		}
	}
	if cfg.Grid().Len() != cfg.NumTimeSamples {
		t.Errorf("expected grid of %d, got %d", cfg.NumTimeSamples, cfg.Grid().Len())
	}
}

func TestLoadOverPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "over.yaml")
	if err := os.WriteFile(path, []byte("frame_count: 50\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadOver(path, GetPreset("short"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.FrameCount != 50 || cfg.TSpan[1] != 10 {
		t.Errorf("expected preset span with file frame count, got %v and %d", cfg.TSpan, cfg.FrameCount)
	}

	if err := os.WriteFile(path, []byte("num_points: [1, 2]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected a parse error")
	}
}
