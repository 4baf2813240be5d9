package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/san-kum/collide/internal/attacher"
	"github.com/san-kum/collide/internal/collision"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDuration     = 10.0
	DefaultSampleRate   = 20.0
	DefaultCollisionMin = 0.1
	DefaultCollisionMax = 1.0
)

var ErrInvalidConfig = errors.New("config: invalid scenario")

type Config struct {
	Name       string          `yaml:"name"`
	Duration   float32         `yaml:"duration"`
	SampleRate float32         `yaml:"sample_rate"`
	Collision  CollisionConfig `yaml:"collision"`
	Detector   DetectorConfig  `yaml:"detector"`
	Bodies     []BodyConfig    `yaml:"bodies"`
}

type CollisionConfig struct {
	Min   float32        `yaml:"min"`
	Max   float32        `yaml:"max"`
	Bands attacher.Bands `yaml:"bands"`
}

type DetectorConfig struct {
	Tolerance     float32 `yaml:"tolerance"`
	MaxIterations int     `yaml:"max_iterations"`
}

type BodyConfig struct {
	Name       string            `yaml:"name"`
	Shape      ShapeConfig       `yaml:"shape"`
	Motion     MotionConfig      `yaml:"motion"`
	Components []ComponentConfig `yaml:"components"`
}

// ShapeConfig describes a shape in body-local coordinates. Type is one of
// point, segment, rect, circle or polygon; Dilate rounds any of them.
type ShapeConfig struct {
	Type   string       `yaml:"type"`
	Radius float32      `yaml:"radius,omitempty"`
	Width  float32      `yaml:"width,omitempty"`
	Height float32      `yaml:"height,omitempty"`
	Points [][2]float32 `yaml:"points,omitempty"`
	Dilate float32      `yaml:"dilate,omitempty"`
}

// MotionConfig describes the mapper of a body. Type is one of static,
// linear, eased or spin.
type MotionConfig struct {
	Type     string     `yaml:"type"`
	Position [2]float32 `yaml:"position"`
	Velocity [2]float32 `yaml:"velocity,omitempty"`
	To       [2]float32 `yaml:"to,omitempty"`
	Start    float32    `yaml:"start,omitempty"`
	End      float32    `yaml:"end,omitempty"`
	Ease     string     `yaml:"ease,omitempty"`
	Pivot    [2]float32 `yaml:"pivot,omitempty"`
	Angle    float32    `yaml:"angle,omitempty"`
	Omega    float32    `yaml:"omega,omitempty"`
}

// ComponentConfig attaches a component to a body. Kinds are slash separated
// paths such as "projectile/bullet"; each prefix is a parent kind.
type ComponentConfig struct {
	Type    string `yaml:"type"`
	Kind    string `yaml:"kind,omitempty"`
	Accepts string `yaml:"accepts,omitempty"`
	// Behaviours per band: bounce, stop, log or empty.
	OnUpper        string `yaml:"on_upper,omitempty"`
	OnIntermediate string `yaml:"on_intermediate,omitempty"`
	OnLower        string `yaml:"on_lower,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:       "scenario",
		Duration:   DefaultDuration,
		SampleRate: DefaultSampleRate,
		Collision: CollisionConfig{
			Min:   DefaultCollisionMin,
			Max:   DefaultCollisionMax,
			Bands: attacher.DefaultBands(),
		},
		Detector: DetectorConfig{
			Tolerance:     collision.DefaultTolerance,
			MaxIterations: collision.DefaultMaxIterations,
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
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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

var (
	shapeTypes     = []string{"point", "segment", "rect", "circle", "polygon"}
	motionTypes    = []string{"static", "linear", "eased", "spin"}
	componentTypes = []string{"transmitter", "receiver", "symmetric"}
	behaviours     = []string{"", "bounce", "stop", "log"}
)

func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	if c.Duration <= 0 {
		return invalid("duration must be positive")
	}
	if c.SampleRate < 0 {
		return invalid("sample_rate must not be negative")
	}
	if c.Collision.Min < 0 || c.Collision.Min >= c.Collision.Max {
		return invalid("collision interval [%v, %v] is empty", c.Collision.Min, c.Collision.Max)
	}
	if err := c.Collision.Bands.Validate(); err != nil {
		return err
	}
	if c.Detector.Tolerance <= 0 || c.Detector.MaxIterations <= 0 {
		return invalid("detector tolerance and max_iterations must be positive")
	}

	seen := make(map[string]bool)
	for i, b := range c.Bodies {
		if b.Name == "" {
			return invalid("body %d has no name", i)
		}
		if seen[b.Name] {
			return invalid("duplicate body %q", b.Name)
		}
		seen[b.Name] = true

		if !slices.Contains(shapeTypes, b.Shape.Type) {
			return invalid("body %q: unknown shape %q", b.Name, b.Shape.Type)
		}
		if b.Shape.Type == "polygon" && len(b.Shape.Points) == 0 {
			return invalid("body %q: polygon without points", b.Name)
		}
		if !slices.Contains(motionTypes, b.Motion.Type) {
			return invalid("body %q: unknown motion %q", b.Name, b.Motion.Type)
		}
		if b.Motion.Type == "eased" && b.Motion.End <= b.Motion.Start {
			return invalid("body %q: eased motion must end after it starts", b.Name)
		}

		for _, comp := range b.Components {
			if !slices.Contains(componentTypes, comp.Type) {
				return invalid("body %q: unknown component %q", b.Name, comp.Type)
			}
			if comp.Type != "receiver" && comp.Kind == "" {
				return invalid("body %q: %s component needs a kind", b.Name, comp.Type)
			}
			if comp.Type == "receiver" && comp.Accepts == "" {
				return invalid("body %q: receiver needs accepts", b.Name)
			}
			for _, on := range []string{comp.OnUpper, comp.OnIntermediate, comp.OnLower} {
				if !slices.Contains(behaviours, on) {
					return invalid("body %q: unknown behaviour %q", b.Name, on)
				}
			}
		}
	}
	return nil
}

// KindPath splits a slash separated kind into its segments, root first.
func KindPath(kind string) []string {
	var out []string
	for _, s := range strings.Split(kind, "/") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
