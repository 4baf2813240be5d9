package geom

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Distance returns the signed perimetral distance between a and b: the gap
// between their perimeters when separated, and minus the smallest
// penetration depth when they overlap.
func Distance(a, b Shape) float32 {
	pa, ra := a.core()
	pb, rb := b.core()
	return polygonDistance(pa, pb) - ra - rb
}

func polygonDistance(p, q *Polygon) float32 {
	if depth, overlap := penetration(p, q); overlap {
		return -depth
	}

	best := math32.Inf(1)
	for _, v := range p.Vertices {
		for _, e := range edges(q) {
			best = math32.Min(best, pointSegmentDistance(v, e[0], e[1]))
		}
	}
	for _, v := range q.Vertices {
		for _, e := range edges(p) {
			best = math32.Min(best, pointSegmentDistance(v, e[0], e[1]))
		}
	}
	return best
}

// penetration runs the separating axis test and returns the smallest overlap
// along the tested axes.
func penetration(p, q *Polygon) (float32, bool) {
	axes := append(axesOf(p), axesOf(q)...)
	if len(axes) == 0 {
		// two points
		return 0, p.Vertices[0] == q.Vertices[0]
	}

	depth := math32.Inf(1)
	for _, axis := range axes {
		minP, maxP := project(p, axis)
		minQ, maxQ := project(q, axis)
		overlap := math32.Min(maxP, maxQ) - math32.Max(minP, minQ)
		if overlap < 0 {
			return 0, false
		}
		depth = math32.Min(depth, overlap)
	}
	return depth, true
}

func axesOf(p *Polygon) []mgl32.Vec2 {
	n := len(p.Vertices)
	switch n {
	case 1:
		return nil
	case 2:
		d := p.Vertices[1].Sub(p.Vertices[0])
		if d.Len() == 0 {
			return nil
		}
		d = d.Normalize()
		return []mgl32.Vec2{d, {-d.Y(), d.X()}}
	}

	axes := make([]mgl32.Vec2, 0, n)
	for i, a := range p.Vertices {
		d := p.Vertices[(i+1)%n].Sub(a)
		if d.Len() == 0 {
			continue
		}
		d = d.Normalize()
		axes = append(axes, mgl32.Vec2{d.Y(), -d.X()})
	}
	return axes
}

func project(p *Polygon, axis mgl32.Vec2) (float32, float32) {
	lo := p.Vertices[0].Dot(axis)
	hi := lo
	for _, v := range p.Vertices[1:] {
		d := v.Dot(axis)
		lo = math32.Min(lo, d)
		hi = math32.Max(hi, d)
	}
	return lo, hi
}

func edges(p *Polygon) [][2]mgl32.Vec2 {
	n := len(p.Vertices)
	switch n {
	case 1:
		return [][2]mgl32.Vec2{{p.Vertices[0], p.Vertices[0]}}
	case 2:
		return [][2]mgl32.Vec2{{p.Vertices[0], p.Vertices[1]}}
	}
	es := make([][2]mgl32.Vec2, n)
	for i := range p.Vertices {
		es[i] = [2]mgl32.Vec2{p.Vertices[i], p.Vertices[(i+1)%n]}
	}
	return es
}

func pointSegmentDistance(p, a, b mgl32.Vec2) float32 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Sub(a).Len()
	}
	t := p.Sub(a).Dot(ab) / l2
	t = math32.Max(0, math32.Min(1, t))
	return p.Sub(a.Add(ab.Mul(t))).Len()
}
