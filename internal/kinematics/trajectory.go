package kinematics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/collide/internal/geom"
	"github.com/tanema/gween/ease"
)

// Trajectory is a time-parameterized position.
type Trajectory interface {
	Position(t float32) mgl32.Vec2
	// MaxDistance bounds |Position(t) - Position(iv.Min)| for t in iv.
	MaxDistance(iv geom.Interval) float32
	StartTime() float32
}

// Linear moves at constant Velocity, passing P0 at T0.
type Linear struct {
	T0       float32
	P0       mgl32.Vec2
	Velocity mgl32.Vec2
}

func NewLinear(t0 float32, p0, velocity mgl32.Vec2) *Linear {
	return &Linear{T0: t0, P0: p0, Velocity: velocity}
}

func (l *Linear) Position(t float32) mgl32.Vec2 {
	return l.P0.Add(l.Velocity.Mul(t - l.T0))
}

func (l *Linear) MaxDistance(iv geom.Interval) float32 {
	return l.Velocity.Len() * iv.Len()
}

func (l *Linear) StartTime() float32 { return l.T0 }

// slopeSamples is the resolution used to estimate the steepest part of an easing curve.
const slopeSamples = 256

// slopeMargin pads the sampled slope to cover curvature between samples.
const slopeMargin = 1.25

// Eased moves from From to To over [T0, T1] following an easing curve, and
// rests at the end points outside that range.
type Eased struct {
	T0, T1   float32
	From, To mgl32.Vec2
	Ease     ease.TweenFunc

	slope float32
}

// NewEased panics when t1 <= t0.
func NewEased(t0, t1 float32, from, to mgl32.Vec2, fn ease.TweenFunc) *Eased {
	if t1 <= t0 {
		panic("kinematics: eased trajectory needs t1 > t0")
	}
	if fn == nil {
		fn = ease.Linear
	}
	e := &Eased{T0: t0, T1: t1, From: from, To: to, Ease: fn}
	e.slope = e.estimateSlope()
	return e
}

func (e *Eased) progress(t float32) float32 {
	t = math32.Max(e.T0, math32.Min(e.T1, t))
	return e.Ease(t-e.T0, 0, 1, e.T1-e.T0)
}

func (e *Eased) Position(t float32) mgl32.Vec2 {
	return e.From.Add(e.To.Sub(e.From).Mul(e.progress(t)))
}

// MaxDistance uses the steepest sampled slope of the curve, so the bound stays
// proportional to the length of the active part of iv.
func (e *Eased) MaxDistance(iv geom.Interval) float32 {
	active := iv.Intersect(geom.NewInterval(e.T0, e.T1))
	if active.IsEmpty() {
		return 0
	}
	rate := e.To.Sub(e.From).Len() * e.slope / (e.T1 - e.T0)
	return rate * active.Len()
}

// StartTime is unbounded: the trajectory rests at From before T0.
func (e *Eased) StartTime() float32 { return Unbounded }

// estimateSlope returns the largest derivative of the normalized curve.
func (e *Eased) estimateSlope() float32 {
	var slope float32
	prev := e.Ease(0, 0, 1, 1)
	for i := 1; i <= slopeSamples; i++ {
		x := float32(i) / slopeSamples
		cur := e.Ease(x, 0, 1, 1)
		slope = math32.Max(slope, math32.Abs(cur-prev)*slopeSamples)
		prev = cur
	}
	return slope * slopeMargin
}
