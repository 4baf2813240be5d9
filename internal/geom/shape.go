package geom

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Shape is a convex planar region. The set of implementations is closed:
// *Polygon and *Dilated.
type Shape interface {
	// Transform returns the image of the shape under a.
	Transform(a Affine) Shape
	// Bounds returns the axis-aligned bounding box.
	Bounds() AABB
	// Reach returns the largest distance from pivot to a point of the shape.
	Reach(pivot mgl32.Vec2) float32

	core() (*Polygon, float32)
}

// Polygon is a convex polygon with counter-clockwise vertices. One vertex
// describes a point and two describe a segment.
type Polygon struct {
	Vertices []mgl32.Vec2
}

// NewPolygon copies the vertices, reordering them counter-clockwise when needed.
// It panics on an empty vertex list.
func NewPolygon(vertices ...mgl32.Vec2) *Polygon {
	if len(vertices) == 0 {
		panic("geom: polygon needs at least one vertex")
	}
	vs := make([]mgl32.Vec2, len(vertices))
	copy(vs, vertices)
	if signedArea(vs) < 0 {
		reverse(vs)
	}
	return &Polygon{Vertices: vs}
}

func NewPoint(p mgl32.Vec2) *Polygon {
	return &Polygon{Vertices: []mgl32.Vec2{p}}
}

func NewSegment(a, b mgl32.Vec2) *Polygon {
	return &Polygon{Vertices: []mgl32.Vec2{a, b}}
}

// NewRect returns the axis-aligned rectangle centered on c.
func NewRect(c mgl32.Vec2, halfW, halfH float32) *Polygon {
	return &Polygon{Vertices: []mgl32.Vec2{
		{c.X() - halfW, c.Y() - halfH},
		{c.X() + halfW, c.Y() - halfH},
		{c.X() + halfW, c.Y() + halfH},
		{c.X() - halfW, c.Y() + halfH},
	}}
}

// NewCircle returns a disc as a dilated point.
func NewCircle(c mgl32.Vec2, r float32) *Dilated {
	return &Dilated{Base: NewPoint(c), Radius: r}
}

func (p *Polygon) Transform(a Affine) Shape {
	vs := make([]mgl32.Vec2, len(p.Vertices))
	for i, v := range p.Vertices {
		vs[i] = ApplyPoint(a, v)
	}
	if reflects(a) {
		reverse(vs)
	}
	return &Polygon{Vertices: vs}
}

func (p *Polygon) Bounds() AABB {
	bb := AABB{Min: p.Vertices[0], Max: p.Vertices[0]}
	for _, v := range p.Vertices[1:] {
		bb = bb.ExpandTo(v)
	}
	return bb
}

func (p *Polygon) Reach(pivot mgl32.Vec2) float32 {
	var r float32
	for _, v := range p.Vertices {
		r = math32.Max(r, v.Sub(pivot).Len())
	}
	return r
}

func (p *Polygon) core() (*Polygon, float32) { return p, 0 }

// Dilated is the Minkowski sum of a convex polygon and a disc of Radius.
type Dilated struct {
	Base   *Polygon
	Radius float32
}

// Transform keeps the result a superset of the exact image: the radius is
// scaled by the largest stretch of a.
func (d *Dilated) Transform(a Affine) Shape {
	return &Dilated{
		Base:   d.Base.Transform(a).(*Polygon),
		Radius: d.Radius * MaxScale(a),
	}
}

func (d *Dilated) Bounds() AABB {
	return d.Base.Bounds().Expand(d.Radius)
}

func (d *Dilated) Reach(pivot mgl32.Vec2) float32 {
	return d.Base.Reach(pivot) + d.Radius
}

func (d *Dilated) core() (*Polygon, float32) { return d.Base, d.Radius }

// Dilate grows s by r in every direction. Non-positive radii return s unchanged.
func Dilate(s Shape, r float32) Shape {
	if r <= 0 {
		return s
	}
	base, radius := s.core()
	return &Dilated{Base: base, Radius: radius + r}
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min mgl32.Vec2
	Max mgl32.Vec2
}

func (bb AABB) ExpandTo(p mgl32.Vec2) AABB {
	return AABB{
		Min: mgl32.Vec2{math32.Min(bb.Min.X(), p.X()), math32.Min(bb.Min.Y(), p.Y())},
		Max: mgl32.Vec2{math32.Max(bb.Max.X(), p.X()), math32.Max(bb.Max.Y(), p.Y())},
	}
}

func (bb AABB) Expand(r float32) AABB {
	return AABB{
		Min: mgl32.Vec2{bb.Min.X() - r, bb.Min.Y() - r},
		Max: mgl32.Vec2{bb.Max.X() + r, bb.Max.Y() + r},
	}
}

func (bb AABB) Union(o AABB) AABB {
	return bb.ExpandTo(o.Min).ExpandTo(o.Max)
}

func (bb AABB) Intersects(o AABB) bool {
	return bb.Min.X() <= o.Max.X() && o.Min.X() <= bb.Max.X() &&
		bb.Min.Y() <= o.Max.Y() && o.Min.Y() <= bb.Max.Y()
}

func (bb AABB) Polygon() *Polygon {
	return &Polygon{Vertices: []mgl32.Vec2{
		bb.Min,
		{bb.Max.X(), bb.Min.Y()},
		bb.Max,
		{bb.Min.X(), bb.Max.Y()},
	}}
}

func signedArea(vs []mgl32.Vec2) float32 {
	if len(vs) < 3 {
		return 0
	}
	var area float32
	for i, a := range vs {
		b := vs[(i+1)%len(vs)]
		area += a.X()*b.Y() - b.X()*a.Y()
	}
	return area / 2
}

func reverse(vs []mgl32.Vec2) {
	for i, j := 0, len(vs)-1; i < j; i, j = i+1, j-1 {
		vs[i], vs[j] = vs[j], vs[i]
	}
}
