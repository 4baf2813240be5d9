package kinematics

import (
	"github.com/chewxy/math32"
	"github.com/san-kum/collide/internal/geom"
)

// Transformed applies Original and then Transformer, both evaluated at the same time.
type Transformed struct {
	Original    Mapper
	Transformer Mapper
}

func NewTransformed(original, transformer Mapper) *Transformed {
	return &Transformed{Original: original, Transformer: transformer}
}

func (m *Transformed) InstantTransform(t float32) geom.Affine {
	return m.Transformer.InstantTransform(t).Mul3(m.Original.InstantTransform(t))
}

func (m *Transformed) ShapeWithBoundingPerimeter(s geom.Shape, iv geom.Interval) geom.Shape {
	return sweptPerimeter(m, s, iv)
}

func (m *Transformed) BoundingRegion(s geom.Shape, iv geom.Interval) geom.Shape {
	return sweptRegion(m, s, iv)
}

func (m *Transformed) MaxDistanceTraveled(s geom.Shape, iv geom.Interval) float32 {
	return m.MaxDistanceTraveledWithBound(s, iv, 0)
}

// MaxDistanceTraveledWithBound feeds the original's bound into the
// transformer's bound, evaluated on the original's image of s at iv.Min.
func (m *Transformed) MaxDistanceTraveledWithBound(s geom.Shape, iv geom.Interval, inputBound float32) float32 {
	inner := m.Original.MaxDistanceTraveledWithBound(s, iv, inputBound)
	mid := s.Transform(m.Original.InstantTransform(iv.Min))
	return m.Transformer.MaxDistanceTraveledWithBound(mid, iv, inner)
}

// StartTime is the later of both start times.
func (m *Transformed) StartTime() float32 {
	return math32.Max(m.Original.StartTime(), m.Transformer.StartTime())
}

func (m *Transformed) Accept(v Visitor) { v.VisitTransformed(m) }

func (*Transformed) sealed() {}
