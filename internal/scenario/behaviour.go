package scenario

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/dynamics"
	"github.com/san-kum/collide/internal/geom"
	"github.com/san-kum/collide/internal/kinematics"
)

// velocityProbe is the time step used to estimate a body's velocity.
const velocityProbe = 1e-3

func (s *Scenario) handler(cc config.ComponentConfig) dynamics.Handler {
	return &dynamics.HandlerFuncs{
		Upper: func(c dynamics.Contact) bool {
			return s.react(cc.OnUpper, c)
		},
		Intermediate: func(c dynamics.Contact) {
			s.react(cc.OnIntermediate, c)
		},
		Lower: func(c dynamics.Contact) bool {
			return s.react(cc.OnLower, c)
		},
	}
}

// react applies behaviour to the body of c and reports whether the boundary
// stays under test.
func (s *Scenario) react(behaviour string, c dynamics.Contact) bool {
	if behaviour == "" {
		return true
	}
	self, other := s.byDyn[c.Body], s.byDyn[c.Other]
	if self == nil || other == nil {
		return true
	}
	switch behaviour {
	case "bounce":
		if !Bounce(self, other, c.Time) {
			return true
		}
		s.logger.Printf("t=%.5f %s bounces off %s", c.Time, self.Name, other.Name)
	case "stop":
		s.logger.Printf("t=%.5f %s stops at %s", c.Time, self.Name, other.Name)
		Stop(self, c.Time)
	case "log":
		s.logger.Printf("t=%.5f %s meets %s", c.Time, self.Name, other.Name)
	}
	s.result.Actions = append(s.result.Actions, Action{
		Time:      c.Time,
		Body:      self.Name,
		Other:     other.Name,
		Behaviour: behaviour,
	})
	return behaviour != "stop"
}

// Velocity estimates the velocity of b's center at t.
func Velocity(b *Body, t float32) mgl32.Vec2 {
	return b.Center(t).Sub(b.Center(t - velocityProbe)).Mul(1 / velocityProbe)
}

// Bounce reflects the velocity of self about the contact normal when self is
// moving towards other. The normal is the axis along which the two bounds are
// furthest apart. From t on, self keeps its current pose and translates at the
// reflected velocity. It reports whether the velocity was reflected.
func Bounce(self, other *Body, t float32) bool {
	n := contactNormal(self.Kin.InstantShape(t).Bounds(), other.Kin.InstantShape(t).Bounds())
	v := Velocity(self, t)
	d := v.Dot(n)
	if d >= 0 {
		return false
	}
	v = v.Sub(n.Mul(2 * d))

	pose := kinematics.NewStaticAffine(self.Mirror.InstantTransform(t))
	drift := kinematics.NewTranslation(kinematics.NewLinear(t, mgl32.Vec2{}, v))
	self.Mirror.Set(kinematics.NewTransformed(pose, drift))
	return true
}

// contactNormal returns the unit axis pointing from b towards a.
func contactNormal(a, b geom.AABB) mgl32.Vec2 {
	ca := a.Min.Add(a.Max).Mul(0.5)
	cb := b.Min.Add(b.Max).Mul(0.5)
	gx := max(b.Min.X()-a.Max.X(), a.Min.X()-b.Max.X())
	gy := max(b.Min.Y()-a.Max.Y(), a.Min.Y()-b.Max.Y())
	if gx >= gy {
		if ca.X() < cb.X() {
			return mgl32.Vec2{-1, 0}
		}
		return mgl32.Vec2{1, 0}
	}
	if ca.Y() < cb.Y() {
		return mgl32.Vec2{0, -1}
	}
	return mgl32.Vec2{0, 1}
}

// Stop freezes self in its pose at t.
func Stop(self *Body, t float32) {
	self.Mirror.Set(kinematics.NewStaticAffine(self.Mirror.InstantTransform(t)))
}

// Positions returns the center of every body at t, in body order.
func (s *Scenario) Positions(t float32) []mgl32.Vec2 {
	out := make([]mgl32.Vec2, len(s.Bodies))
	for i, b := range s.Bodies {
		out[i] = b.Center(t)
	}
	return out
}

// Bounds returns the union of every body's bounds at t.
func (s *Scenario) Bounds(t float32) geom.AABB {
	var bb geom.AABB
	for i, b := range s.Bodies {
		if i == 0 {
			bb = b.Kin.InstantShape(t).Bounds()
			continue
		}
		bb = bb.Union(b.Kin.InstantShape(t).Bounds())
	}
	return bb
}
