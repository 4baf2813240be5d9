package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/san-kum/collide/internal/attacher"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if cfg.Collision.Min >= cfg.Collision.Max {
		t.Error("collision interval should not be empty")
	}
	if cfg.Collision.Bands != attacher.DefaultBands() {
		t.Errorf("unexpected bands %+v", cfg.Collision.Bands)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("headon", "points")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if len(cfg.Bodies) != 2 {
		t.Errorf("expected 2 bodies, got %d", len(cfg.Bodies))
	}

	cfg.Duration = 1
	cfg.Bodies[0].Name = "changed"
	if again := GetPreset("headon", "points"); again.Duration == 1 || again.Bodies[0].Name == "changed" {
		t.Error("GetPreset must return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("headon", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "points"); cfg != nil {
		t.Error("expected nil for nonexistent group")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("bounce")
	if len(presets) != 2 || presets[0] != "corridor" || presets[1] != "wall" {
		t.Errorf("unexpected presets %v", presets)
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent group")
	}
}

func TestPresetsAreValid(t *testing.T) {
	for _, g := range Groups() {
		for _, name := range ListPresets(g) {
			if err := GetPreset(g, name).Validate(); err != nil {
				t.Errorf("%s/%s: %v", g, name, err)
			}
		}
	}
}

func TestValidate(t *testing.T) {
	body := func() BodyConfig {
		return BodyConfig{
			Name:   "a",
			Shape:  ShapeConfig{Type: "point"},
			Motion: MotionConfig{Type: "static"},
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero duration", func(c *Config) { c.Duration = 0 }},
		{"negative sample rate", func(c *Config) { c.SampleRate = -1 }},
		{"empty interval", func(c *Config) { c.Collision.Min = 1 }},
		{"zero tolerance", func(c *Config) { c.Detector.Tolerance = 0 }},
		{"unnamed body", func(c *Config) { c.Bodies[0].Name = "" }},
		{"duplicate body", func(c *Config) { c.Bodies = append(c.Bodies, body()) }},
		{"unknown shape", func(c *Config) { c.Bodies[0].Shape.Type = "blob" }},
		{"empty polygon", func(c *Config) { c.Bodies[0].Shape.Type = "polygon" }},
		{"unknown motion", func(c *Config) { c.Bodies[0].Motion.Type = "teleport" }},
		{"backwards easing", func(c *Config) {
			c.Bodies[0].Motion = MotionConfig{Type: "eased", Start: 2, End: 1}
		}},
		{"receiver without accepts", func(c *Config) {
			c.Bodies[0].Components = []ComponentConfig{{Type: "receiver"}}
		}},
		{"unknown behaviour", func(c *Config) {
			c.Bodies[0].Components = []ComponentConfig{{Type: "symmetric", Kind: "ball", OnLower: "explode"}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Bodies = []BodyConfig{body()}
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	cfg := DefaultConfig()
	cfg.Collision.Bands.MinIntermediate = 0.9
	if err := cfg.Validate(); !errors.Is(err, attacher.ErrInvalidBands) {
		t.Errorf("expected ErrInvalidBands, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	cfg := GetPreset("eased", "dock")
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Name != cfg.Name || len(loaded.Bodies) != len(cfg.Bodies) {
		t.Errorf("loaded %q with %d bodies", loaded.Name, len(loaded.Bodies))
	}
	if loaded.Bodies[1].Motion.Ease != "out_cubic" {
		t.Errorf("lost easing: %+v", loaded.Bodies[1].Motion)
	}
}

func TestKindPath(t *testing.T) {
	got := KindPath(" projectile / bullet/")
	if len(got) != 2 || got[0] != "projectile" || got[1] != "bullet" {
		t.Errorf("unexpected path %v", got)
	}
}
