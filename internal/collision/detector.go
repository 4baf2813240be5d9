package collision

import (
	"github.com/chewxy/math32"
	"github.com/san-kum/collide/internal/geom"
	"github.com/san-kum/collide/internal/kinematics"
)

// Detector finds when the distance between two bodies first reaches a band.
type Detector interface {
	// TestCollision returns a time in (timeIv.Min, timeIv.Max] at which the
	// distance between a and b first lies within band. exiting tells whether
	// the distance is expected to grow into the band.
	TestCollision(timeIv, band geom.Interval, exiting bool, a, b kinematics.Kinematic) (float32, bool)
}

// DetectorFunc adapts a function to a Detector.
type DetectorFunc func(timeIv, band geom.Interval, exiting bool, a, b kinematics.Kinematic) (float32, bool)

func (f DetectorFunc) TestCollision(timeIv, band geom.Interval, exiting bool, a, b kinematics.Kinematic) (float32, bool) {
	return f(timeIv, band, exiting, a, b)
}

const (
	DefaultTolerance     = 1e-4
	DefaultMaxIterations = 256
	maxStepHalvings      = 32
)

// AdvancementStats counts the work done by an Advancement detector.
type AdvancementStats struct {
	Calls      int
	Iterations int
	MaxIters   int
	Exhausted  int
}

// Advancement is a conservative-advancement detector. Each iteration moves
// time forward by the largest step over which the summed motion bounds of
// both bodies cannot close the gap to the band, so a crossing is never
// skipped. Steps may overshoot the band edge by Tolerance so that the
// returned time lies inside the band.
type Advancement struct {
	Tolerance     float32
	MaxIterations int

	Stats AdvancementStats
}

func NewAdvancement() *Advancement {
	return &Advancement{Tolerance: DefaultTolerance, MaxIterations: DefaultMaxIterations}
}

func (d *Advancement) TestCollision(timeIv, band geom.Interval, _ bool, a, b kinematics.Kinematic) (float32, bool) {
	d.Stats.Calls++

	overshoot := math32.Min(d.Tolerance, band.Len()/2)
	t := timeIv.Min
	for iter := 1; iter <= d.MaxIterations; iter++ {
		d.Stats.Iterations++
		d.Stats.MaxIters = max(d.Stats.MaxIters, iter)

		dist := geom.Distance(a.InstantShape(t), b.InstantShape(t))
		if band.Contains(dist) {
			if t > timeIv.Min {
				return t, true
			}
			// already inside: nothing to enter
			return 0, false
		}
		if t >= timeIv.Max {
			return 0, false
		}

		gap := math32.Max(band.Min-dist, dist-band.Max)
		h := d.step(a, b, t, timeIv.Max, gap+overshoot)
		next := math32.Min(t+h, timeIv.Max)
		if next <= t {
			// step below float resolution
			return 0, false
		}
		t = next
	}

	d.Stats.Exhausted++
	return 0, false
}

// step returns the largest h <= end-t found whose motion bound stays within budget.
func (d *Advancement) step(a, b kinematics.Kinematic, t, end, budget float32) float32 {
	h := end - t
	move := motion(a, b, t, h)
	if move <= budget {
		return h
	}
	h *= budget / move
	for i := 0; i < maxStepHalvings && motion(a, b, t, h) > budget; i++ {
		h /= 2
	}
	return h
}

func motion(a, b kinematics.Kinematic, t, h float32) float32 {
	iv := geom.NewInterval(t, t+h)
	return a.MaxDistanceTraveled(iv) + b.MaxDistanceTraveled(iv)
}
