package config

import (
	"slices"
	"sort"
)

func scenario(name string, duration float32, bodies ...BodyConfig) *Config {
	cfg := DefaultConfig()
	cfg.Name = name
	cfg.Duration = duration
	cfg.Bodies = bodies
	return cfg
}

func point() ShapeConfig { return ShapeConfig{Type: "point"} }

func circle(r float32) ShapeConfig { return ShapeConfig{Type: "circle", Radius: r} }

func rect(w, h float32) ShapeConfig { return ShapeConfig{Type: "rect", Width: w, Height: h} }

func at(x, y float32) MotionConfig {
	return MotionConfig{Type: "static", Position: [2]float32{x, y}}
}

func moving(x, y, vx, vy float32) MotionConfig {
	return MotionConfig{Type: "linear", Position: [2]float32{x, y}, Velocity: [2]float32{vx, vy}}
}

var Presets = map[string]map[string]*Config{
	"headon": {
		"points": scenario("headon/points", 5,
			BodyConfig{Name: "target", Shape: point(), Motion: at(0, 0), Components: []ComponentConfig{
				{Type: "receiver", Accepts: "projectile", OnLower: "log", OnIntermediate: "log"},
			}},
			BodyConfig{Name: "shot", Shape: point(), Motion: moving(2, 0, -1, 0), Components: []ComponentConfig{
				{Type: "transmitter", Kind: "projectile/bullet"},
			}},
		),
		"circles": scenario("headon/circles", 8,
			BodyConfig{Name: "left", Shape: circle(0.5), Motion: moving(-3, 0, 1, 0), Components: []ComponentConfig{
				{Type: "symmetric", Kind: "ball", OnLower: "bounce"},
			}},
			BodyConfig{Name: "right", Shape: circle(0.5), Motion: moving(3, 0, -1, 0), Components: []ComponentConfig{
				{Type: "symmetric", Kind: "ball", OnLower: "bounce"},
			}},
		),
	},
	"bounce": {
		"wall": scenario("bounce/wall", 10,
			BodyConfig{Name: "wall", Shape: rect(0.5, 6), Motion: at(5, 0), Components: []ComponentConfig{
				{Type: "transmitter", Kind: "solid/wall"},
			}},
			BodyConfig{Name: "ball", Shape: circle(0.25), Motion: moving(0, 0, 1.5, 0), Components: []ComponentConfig{
				{Type: "receiver", Accepts: "solid", OnLower: "bounce"},
			}},
		),
		"corridor": scenario("bounce/corridor", 20,
			BodyConfig{Name: "west", Shape: rect(0.5, 12), Motion: at(-4, 0), Components: []ComponentConfig{
				{Type: "transmitter", Kind: "solid/wall"},
			}},
			BodyConfig{Name: "east", Shape: rect(0.5, 12), Motion: at(4, 0), Components: []ComponentConfig{
				{Type: "transmitter", Kind: "solid/wall"},
			}},
			BodyConfig{Name: "ball", Shape: circle(0.25), Motion: moving(0, 0, 2, 0.1), Components: []ComponentConfig{
				{Type: "receiver", Accepts: "solid", OnLower: "bounce"},
			}},
		),
	},
	"spin": {
		"blade": scenario("spin/blade", 6,
			BodyConfig{Name: "blade", Shape: ShapeConfig{Type: "segment", Width: 3}, Motion: MotionConfig{Type: "spin", Omega: 1.5}, Components: []ComponentConfig{
				{Type: "transmitter", Kind: "hazard/blade"},
			}},
			BodyConfig{Name: "runner", Shape: circle(0.2), Motion: moving(0, 5, 0, -1), Components: []ComponentConfig{
				{Type: "receiver", Accepts: "hazard", OnLower: "stop"},
			}},
		),
	},
	"eased": {
		"dock": scenario("eased/dock", 6,
			BodyConfig{Name: "dock", Shape: rect(1, 2), Motion: at(0, 0), Components: []ComponentConfig{
				{Type: "symmetric", Kind: "hull/station"},
			}},
			BodyConfig{Name: "shuttle", Shape: ShapeConfig{Type: "rect", Width: 1, Height: 0.5, Dilate: 0.1}, Motion: MotionConfig{
				Type: "eased", Position: [2]float32{6, 0}, To: [2]float32{1.22, 0}, Start: 0.5, End: 4.5, Ease: "out_cubic",
			}, Components: []ComponentConfig{
				{Type: "symmetric", Kind: "hull/craft", Accepts: "hull", OnIntermediate: "log", OnLower: "log"},
			}},
		),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(group, preset string) *Config {
	groupPresets, ok := Presets[group]
	if !ok {
		return nil
	}
	cfg, ok := groupPresets[preset]
	if !ok {
		return nil
	}
	c := *cfg
	c.Bodies = slices.Clone(cfg.Bodies)
	return &c
}

func ListPresets(group string) []string {
	groupPresets, ok := Presets[group]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(groupPresets))
	for name := range groupPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Groups lists the preset groups in order.
func Groups() []string {
	groups := make([]string, 0, len(Presets))
	for g := range Presets {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}
