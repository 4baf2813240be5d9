package kinematics

import "github.com/san-kum/collide/internal/geom"

// Translation moves shapes along a trajectory.
type Translation struct {
	Trajectory Trajectory
}

func NewTranslation(tr Trajectory) *Translation {
	return &Translation{Trajectory: tr}
}

func (m *Translation) InstantTransform(t float32) geom.Affine {
	return geom.Translation(m.Trajectory.Position(t))
}

func (m *Translation) ShapeWithBoundingPerimeter(s geom.Shape, iv geom.Interval) geom.Shape {
	return sweptPerimeter(m, s, iv)
}

func (m *Translation) BoundingRegion(s geom.Shape, iv geom.Interval) geom.Shape {
	return sweptRegion(m, s, iv)
}

func (m *Translation) MaxDistanceTraveled(s geom.Shape, iv geom.Interval) float32 {
	return m.MaxDistanceTraveledWithBound(s, iv, 0)
}

func (m *Translation) MaxDistanceTraveledWithBound(_ geom.Shape, iv geom.Interval, inputBound float32) float32 {
	return inputBound + m.Trajectory.MaxDistance(iv)
}

func (m *Translation) StartTime() float32 { return m.Trajectory.StartTime() }

func (m *Translation) Accept(v Visitor) { v.VisitTranslation(m) }

func (*Translation) sealed() {}
