package geom

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-4

func approx(a, b float32) bool {
	return math32.Abs(a-b) <= eps
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Shape
		want float32
	}{
		{"separated circles", NewCircle(mgl32.Vec2{0, 0}, 1), NewCircle(mgl32.Vec2{5, 0}, 1), 3},
		{"touching circles", NewCircle(mgl32.Vec2{0, 0}, 1), NewCircle(mgl32.Vec2{2, 0}, 1), 0},
		{"overlapping circles", NewCircle(mgl32.Vec2{0, 0}, 1), NewCircle(mgl32.Vec2{1.5, 0}, 1), -0.5},
		{"rect and point", NewRect(mgl32.Vec2{0, 0}, 1, 1), NewPoint(mgl32.Vec2{3, 0}), 2},
		{"rect corner to point", NewRect(mgl32.Vec2{0, 0}, 1, 1), NewPoint(mgl32.Vec2{4, 5}), 5},
		{"rects overlap", NewRect(mgl32.Vec2{0, 0}, 1, 1), NewRect(mgl32.Vec2{1.5, 0}, 1, 1), -0.5},
		{"point beyond segment end", NewSegment(mgl32.Vec2{0, 0}, mgl32.Vec2{1, 0}), NewPoint(mgl32.Vec2{3, 0}), 2},
		{"same point", NewPoint(mgl32.Vec2{1, 1}), NewPoint(mgl32.Vec2{1, 1}), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); !approx(got, tt.want) {
				t.Errorf("Distance() = %v, want %v", got, tt.want)
			}
			if got := Distance(tt.b, tt.a); !approx(got, tt.want) {
				t.Errorf("Distance() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDilateAddsToDistance(t *testing.T) {
	a := NewRect(mgl32.Vec2{0, 0}, 1, 1)
	b := NewRect(mgl32.Vec2{5, 0}, 1, 1)
	base := Distance(a, b)

	if got := Distance(Dilate(a, 0.5), Dilate(b, 0.25)); !approx(got, base-0.75) {
		t.Errorf("expected %v, got %v", base-0.75, got)
	}
	if Dilate(a, 0) != Shape(a) {
		t.Error("zero dilation should return the shape itself")
	}
}

func TestPolygonWindingIsNormalized(t *testing.T) {
	p := NewPolygon(mgl32.Vec2{0, 0}, mgl32.Vec2{0, 1}, mgl32.Vec2{1, 1}, mgl32.Vec2{1, 0})
	if signedArea(p.Vertices) <= 0 {
		t.Error("vertices should be counter-clockwise")
	}

	mirrored := p.Transform(Scale(-1, 1)).(*Polygon)
	if signedArea(mirrored.Vertices) <= 0 {
		t.Error("reflected polygon should stay counter-clockwise")
	}
}

func TestMaxScale(t *testing.T) {
	tests := []struct {
		name string
		a    Affine
		want float32
	}{
		{"identity", Identity(), 1},
		{"rotation", Rotation(0.7), 1},
		{"translation", Translation(mgl32.Vec2{3, 4}), 1},
		{"scale", Scale(2, 0.5), 2},
	}
	for _, tt := range tests {
		if got := MaxScale(tt.a); !approx(got, tt.want) {
			t.Errorf("%s: MaxScale() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRotationAbout(t *testing.T) {
	a := RotationAbout(mgl32.Vec2{1, 0}, math32.Pi/2)
	p := ApplyPoint(a, mgl32.Vec2{2, 0})
	if !approx(p.X(), 1) || !approx(p.Y(), 1) {
		t.Errorf("expected (1,1), got %v", p)
	}
}

func TestInterval(t *testing.T) {
	iv := NewInterval(1, 3)
	if iv.Len() != 2 || iv.Mid() != 2 {
		t.Errorf("unexpected len/mid: %v %v", iv.Len(), iv.Mid())
	}
	if !iv.Contains(1) || !iv.Contains(3) || iv.Contains(3.5) {
		t.Error("interval should be closed")
	}
	if !iv.Intersect(NewInterval(4, 5)).IsEmpty() {
		t.Error("disjoint intersection should be empty")
	}
}
