package kinematics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/collide/internal/geom"
)

// AngularMotion is a time-parameterized angle in radians.
type AngularMotion interface {
	Angle(t float32) float32
	// MaxAngleChange bounds |Angle(t) - Angle(iv.Min)| for t in iv.
	MaxAngleChange(iv geom.Interval) float32
	StartTime() float32
}

// ConstantSpin turns at Omega rad/s, having Angle0 at T0.
type ConstantSpin struct {
	T0     float32
	Angle0 float32
	Omega  float32
}

func NewConstantSpin(t0, angle0, omega float32) *ConstantSpin {
	return &ConstantSpin{T0: t0, Angle0: angle0, Omega: omega}
}

func (c *ConstantSpin) Angle(t float32) float32 {
	return c.Angle0 + c.Omega*(t-c.T0)
}

func (c *ConstantSpin) MaxAngleChange(iv geom.Interval) float32 {
	return math32.Abs(c.Omega) * iv.Len()
}

func (c *ConstantSpin) StartTime() float32 { return c.T0 }

// Rotation rotates shapes about Pivot.
type Rotation struct {
	Pivot  mgl32.Vec2
	Motion AngularMotion
}

func NewRotation(pivot mgl32.Vec2, motion AngularMotion) *Rotation {
	return &Rotation{Pivot: pivot, Motion: motion}
}

func (m *Rotation) InstantTransform(t float32) geom.Affine {
	return geom.RotationAbout(m.Pivot, m.Motion.Angle(t))
}

func (m *Rotation) ShapeWithBoundingPerimeter(s geom.Shape, iv geom.Interval) geom.Shape {
	return sweptPerimeter(m, s, iv)
}

func (m *Rotation) BoundingRegion(s geom.Shape, iv geom.Interval) geom.Shape {
	return sweptRegion(m, s, iv)
}

func (m *Rotation) MaxDistanceTraveled(s geom.Shape, iv geom.Interval) float32 {
	return m.MaxDistanceTraveledWithBound(s, iv, 0)
}

// MaxDistanceTraveledWithBound adds the chord swept by the farthest point the
// input can reach to the input motion. Rotations do not stretch distances.
func (m *Rotation) MaxDistanceTraveledWithBound(s geom.Shape, iv geom.Interval, inputBound float32) float32 {
	turn := math32.Min(m.Motion.MaxAngleChange(iv), math32.Pi)
	if turn == 0 {
		return inputBound
	}
	return inputBound + 2*(s.Reach(m.Pivot)+inputBound)*math32.Sin(turn/2)
}

func (m *Rotation) StartTime() float32 { return m.Motion.StartTime() }

func (m *Rotation) Accept(v Visitor) { v.VisitRotation(m) }

func (*Rotation) sealed() {}
