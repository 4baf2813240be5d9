package collision

import (
	"errors"
	"slices"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/collide/internal/geom"
	"github.com/san-kum/collide/internal/kinematics"
)

func staticPoint(x, y float32) *kinematics.Body[kinematics.Mapper] {
	return kinematics.NewBody[kinematics.Mapper](geom.NewPoint(mgl32.Vec2{x, y}), kinematics.NewIdentity())
}

func movingPoint(x, y, vx, vy float32) *kinematics.Body[kinematics.Mapper] {
	tr := kinematics.NewTranslation(kinematics.NewLinear(0, mgl32.Vec2{x, y}, mgl32.Vec2{vx, vy}))
	return kinematics.NewBody[kinematics.Mapper](geom.NewPoint(mgl32.Vec2{}), tr)
}

func collect(s *PairSet) []*Pair {
	return slices.Collect(s.Emitter())
}

func TestSetCollisionResponseResetsFlags(t *testing.T) {
	s := NewPairSet(geom.NewInterval(0.1, 1))
	a, b := staticPoint(0, 0), staticPoint(1, 0)
	r1 := &ResponseFuncs{}
	r2 := &ResponseFuncs{}

	prev, err := s.SetCollisionResponse(a, b, r1)
	if err != nil || prev != nil {
		t.Fatalf("unexpected result: %v %v", prev, err)
	}
	p := s.Pair(a, b)
	p.TestUpperBoundaryLimit = false
	p.TestLowerBoundaryLimit = false

	prev, err = s.SetCollisionResponse(b, a, r2)
	if err != nil || prev != r1 {
		t.Fatalf("expected previous response r1, got %v (err %v)", prev, err)
	}
	if !p.TestUpperBoundaryLimit || !p.TestLowerBoundaryLimit {
		t.Error("installing a response must reset both boundary flags")
	}
	if s.CollisionResponse(a, b) != r2 {
		t.Error("response not updated")
	}

	prev, err = s.SetCollisionResponse(a, b, nil)
	if err != nil || prev != r2 {
		t.Fatalf("expected previous response r2, got %v (err %v)", prev, err)
	}
	if s.CollisionResponse(a, b) != nil || s.Pair(a, b) != nil {
		t.Error("cleared response must not stay reachable")
	}
	if p.Response() != nil {
		t.Error("removed pair must not keep its response")
	}
	if a.Container() != nil || b.Container() != nil {
		t.Error("bodies should be detached after the last pair is removed")
	}
}

func TestSetCollisionResponseContracts(t *testing.T) {
	s1 := NewPairSet(geom.NewInterval(0.1, 1))
	s2 := NewPairSet(geom.NewInterval(0.1, 1))
	a, b, c := staticPoint(0, 0), staticPoint(1, 0), staticPoint(2, 0)

	if _, err := s1.SetCollisionResponse(a, a, &ResponseFuncs{}); !errors.Is(err, ErrSameBody) {
		t.Errorf("expected ErrSameBody, got %v", err)
	}
	if _, err := s1.SetCollisionResponse(a, nil, &ResponseFuncs{}); !errors.Is(err, ErrNilBody) {
		t.Errorf("expected ErrNilBody, got %v", err)
	}
	if _, err := s1.SetCollisionResponse(a, b, &ResponseFuncs{}); err != nil {
		t.Fatal(err)
	}
	if _, err := s2.SetCollisionResponse(b, c, &ResponseFuncs{}); !errors.Is(err, ErrContainerMismatch) {
		t.Errorf("expected ErrContainerMismatch, got %v", err)
	}
	if c.Container() != nil {
		t.Error("failed insertion must not attach bodies")
	}
	if _, err := s1.SetCollisionResponse(a, c, &ResponseFuncs{}); err != nil {
		t.Fatal(err)
	}
	if a.Attachments() != 2 {
		t.Errorf("expected 2 attachments on shared body, got %d", a.Attachments())
	}
}

func TestEmitterSkipsIncompleteBodies(t *testing.T) {
	s := NewPairSet(geom.NewInterval(0.1, 1))
	a, b, c := staticPoint(0, 0), staticPoint(1, 0), staticPoint(2, 0)
	for _, other := range []kinematics.Kinematic{b, c} {
		if _, err := s.SetCollisionResponse(a, other, &ResponseFuncs{}); err != nil {
			t.Fatal(err)
		}
	}
	if got := len(collect(s)); got != 2 {
		t.Fatalf("expected 2 pairs, got %d", got)
	}

	shape := b.Shape()
	b.SetShape(nil)
	pairs := collect(s)
	if len(pairs) != 1 || pairs[0] != s.Pair(a, c) {
		t.Fatalf("expected only {a,c}, got %d pairs", len(pairs))
	}

	b.SetShape(shape)
	if got := len(collect(s)); got != 2 {
		t.Errorf("expected 2 pairs after restoring shape, got %d", got)
	}
}

func TestAdvancementFindsBandEntry(t *testing.T) {
	a := staticPoint(0, 0)
	b := movingPoint(2, 0, -1, 0)
	d := NewAdvancement()

	at, ok := d.TestCollision(geom.NewInterval(0, 10), geom.NewInterval(0.46, 0.64), false, a, b)
	if !ok {
		t.Fatal("expected a crossing")
	}
	if math32.Abs(at-1.36) > 1e-3 {
		t.Errorf("expected crossing at 1.36, got %v", at)
	}
	dist := geom.Distance(a.InstantShape(at), b.InstantShape(at))
	if dist < 0.46 || dist > 0.64 {
		t.Errorf("reported time is outside the band: distance %v", dist)
	}
}

func TestAdvancementNoCrossing(t *testing.T) {
	d := NewAdvancement()
	tests := []struct {
		name string
		b    kinematics.Kinematic
		iv   geom.Interval
	}{
		{"receding", movingPoint(2, 0, 1, 0), geom.NewInterval(0, 10)},
		{"window too short", movingPoint(2, 0, -1, 0), geom.NewInterval(0, 1)},
		{"passing by", movingPoint(-5, 3, 1, 0), geom.NewInterval(0, 10)},
		{"static", staticPoint(3, 0), geom.NewInterval(0, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if at, ok := d.TestCollision(tt.iv, geom.NewInterval(0.46, 0.64), false, staticPoint(0, 0), tt.b); ok {
				t.Errorf("unexpected crossing at %v", at)
			}
		})
	}
	if d.Stats.Calls != len(tests) {
		t.Errorf("expected %d calls, got %d", len(tests), d.Stats.Calls)
	}
}

func TestAdvancementAlreadyInsideBand(t *testing.T) {
	d := NewAdvancement()
	if _, ok := d.TestCollision(geom.NewInterval(0, 5), geom.NewInterval(0.4, 0.6), false, staticPoint(0, 0), movingPoint(0.5, 0, -1, 0)); ok {
		t.Error("a band already reached at the window start is not a new crossing")
	}
}

func TestResponseFuncsDefaults(t *testing.T) {
	r := &ResponseFuncs{}
	if !r.NotifyUpperBoundaryCollision(0) || !r.NotifyLowerBoundaryCollision(0) {
		t.Error("missing boundary functions should keep testing")
	}
	r.NotifyIntermediateRegionCollision(0)
}
