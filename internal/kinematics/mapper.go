package kinematics

import (
	"github.com/chewxy/math32"
	"github.com/san-kum/collide/internal/geom"
)

// Mapper maps time to a point transform.
type Mapper interface {
	// InstantTransform returns the transform applied at time t.
	InstantTransform(t float32) geom.Affine

	// ShapeWithBoundingPerimeter returns a shape containing every position of s
	// over iv. It tends to the exact instantaneous shape as iv shrinks.
	ShapeWithBoundingPerimeter(s geom.Shape, iv geom.Interval) geom.Shape

	// BoundingRegion returns a conservative superset of the swept shape.
	BoundingRegion(s geom.Shape, iv geom.Interval) geom.Shape

	// MaxDistanceTraveled bounds how far any point of s moves over iv.
	MaxDistanceTraveled(s geom.Shape, iv geom.Interval) float32

	// MaxDistanceTraveledWithBound bounds the motion of the mapped points when
	// the input points themselves move at most inputBound over iv.
	MaxDistanceTraveledWithBound(s geom.Shape, iv geom.Interval, inputBound float32) float32

	// StartTime is the time before which the mapper is undefined.
	StartTime() float32

	Accept(v Visitor)

	sealed()
}

// Visitor dispatches over the closed set of mapper variants.
type Visitor interface {
	VisitStaticAffine(m *StaticAffine)
	VisitTranslation(m *Translation)
	VisitRotation(m *Rotation)
	VisitTransformed(m *Transformed)
	VisitMirror(m *Mirror)
}

// Unbounded is the start time of mappers defined for all times.
var Unbounded = math32.Inf(-1)

func sweptPerimeter(m Mapper, s geom.Shape, iv geom.Interval) geom.Shape {
	start := s.Transform(m.InstantTransform(iv.Min))
	return geom.Dilate(start, m.MaxDistanceTraveled(s, iv))
}

func sweptRegion(m Mapper, s geom.Shape, iv geom.Interval) geom.Shape {
	start := s.Transform(m.InstantTransform(iv.Min))
	return geom.Dilate(start.Bounds().Polygon(), m.MaxDistanceTraveled(s, iv))
}

func isNil(m Mapper) bool {
	switch v := m.(type) {
	case nil:
		return true
	case *StaticAffine:
		return v == nil
	case *Translation:
		return v == nil
	case *Rotation:
		return v == nil
	case *Transformed:
		return v == nil
	case *Mirror:
		return v == nil
	}
	return false
}
