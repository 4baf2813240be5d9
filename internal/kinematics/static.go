package kinematics

import "github.com/san-kum/collide/internal/geom"

// StaticAffine applies the same transform at every time.
type StaticAffine struct {
	Transform geom.Affine
}

func NewStaticAffine(a geom.Affine) *StaticAffine {
	return &StaticAffine{Transform: a}
}

// NewIdentity returns the static identity mapper.
func NewIdentity() *StaticAffine {
	return &StaticAffine{Transform: geom.Identity()}
}

func (m *StaticAffine) InstantTransform(float32) geom.Affine { return m.Transform }

func (m *StaticAffine) ShapeWithBoundingPerimeter(s geom.Shape, iv geom.Interval) geom.Shape {
	return sweptPerimeter(m, s, iv)
}

func (m *StaticAffine) BoundingRegion(s geom.Shape, iv geom.Interval) geom.Shape {
	return sweptRegion(m, s, iv)
}

// MaxDistanceTraveled is always zero.
func (m *StaticAffine) MaxDistanceTraveled(geom.Shape, geom.Interval) float32 { return 0 }

func (m *StaticAffine) MaxDistanceTraveledWithBound(_ geom.Shape, _ geom.Interval, inputBound float32) float32 {
	return inputBound * geom.MaxScale(m.Transform)
}

func (m *StaticAffine) StartTime() float32 { return Unbounded }

func (m *StaticAffine) Accept(v Visitor) { v.VisitStaticAffine(m) }

func (*StaticAffine) sealed() {}
