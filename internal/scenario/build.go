package scenario

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/dynamics"
	"github.com/san-kum/collide/internal/geom"
	"github.com/san-kum/collide/internal/kinematics"
	"github.com/tanema/gween/ease"
)

var easings = map[string]ease.TweenFunc{
	"":             ease.Linear,
	"linear":       ease.Linear,
	"in_quad":      ease.InQuad,
	"out_quad":     ease.OutQuad,
	"in_out_quad":  ease.InOutQuad,
	"in_cubic":     ease.InCubic,
	"out_cubic":    ease.OutCubic,
	"in_out_cubic": ease.InOutCubic,
	"in_sine":      ease.InSine,
	"out_sine":     ease.OutSine,
	"in_out_sine":  ease.InOutSine,
	"out_bounce":   ease.OutBounce,
}

func vec(p [2]float32) mgl32.Vec2 { return mgl32.Vec2{p[0], p[1]} }

func buildShape(c config.ShapeConfig) (geom.Shape, error) {
	var s geom.Shape
	switch c.Type {
	case "point":
		s = geom.NewPoint(mgl32.Vec2{})
	case "segment":
		if len(c.Points) >= 2 {
			s = geom.NewSegment(vec(c.Points[0]), vec(c.Points[1]))
		} else {
			s = geom.NewSegment(mgl32.Vec2{-c.Width / 2, 0}, mgl32.Vec2{c.Width / 2, 0})
		}
	case "rect":
		s = geom.NewRect(mgl32.Vec2{}, c.Width/2, c.Height/2)
	case "circle":
		s = geom.NewCircle(mgl32.Vec2{}, c.Radius)
	case "polygon":
		vs := make([]mgl32.Vec2, len(c.Points))
		for i, p := range c.Points {
			vs[i] = vec(p)
		}
		s = geom.NewPolygon(vs...)
	default:
		return nil, fmt.Errorf("%w: unknown shape %q", config.ErrInvalidConfig, c.Type)
	}
	return geom.Dilate(s, c.Dilate), nil
}

func buildMotion(c config.MotionConfig) (kinematics.Mapper, error) {
	pos := vec(c.Position)
	switch c.Type {
	case "static":
		return kinematics.NewStaticAffine(geom.Translation(pos)), nil
	case "linear":
		return kinematics.NewTranslation(kinematics.NewLinear(c.Start, pos, vec(c.Velocity))), nil
	case "eased":
		fn, ok := easings[c.Ease]
		if !ok {
			return nil, fmt.Errorf("%w: unknown ease %q", config.ErrInvalidConfig, c.Ease)
		}
		return kinematics.NewTranslation(kinematics.NewEased(c.Start, c.End, pos, vec(c.To), fn)), nil
	case "spin":
		spin := kinematics.NewRotation(vec(c.Pivot), kinematics.NewConstantSpin(c.Start, c.Angle, c.Omega))
		return kinematics.NewTransformed(spin, kinematics.NewStaticAffine(geom.Translation(pos))), nil
	default:
		return nil, fmt.Errorf("%w: unknown motion %q", config.ErrInvalidConfig, c.Type)
	}
}

// kinds interns the kind hierarchies named by slash separated paths.
type kinds struct {
	transmitters map[string]*dynamics.TransmitterKind
	symmetrics   map[string]*dynamics.SymmetricKind
}

func newKinds() *kinds {
	return &kinds{
		transmitters: make(map[string]*dynamics.TransmitterKind),
		symmetrics:   make(map[string]*dynamics.SymmetricKind),
	}
}

func (k *kinds) transmitter(path string) *dynamics.TransmitterKind {
	var parent *dynamics.TransmitterKind
	segs := config.KindPath(path)
	for i, seg := range segs {
		key := strings.Join(segs[:i+1], "/")
		kind, ok := k.transmitters[key]
		if !ok {
			kind = dynamics.NewTransmitterKind(seg, parent)
			k.transmitters[key] = kind
		}
		parent = kind
	}
	return parent
}

func (k *kinds) symmetric(path string) *dynamics.SymmetricKind {
	var parent *dynamics.SymmetricKind
	segs := config.KindPath(path)
	for i, seg := range segs {
		key := strings.Join(segs[:i+1], "/")
		kind, ok := k.symmetrics[key]
		if !ok {
			kind = dynamics.NewSymmetricKind(seg, parent)
			k.symmetrics[key] = kind
		}
		parent = kind
	}
	return parent
}
