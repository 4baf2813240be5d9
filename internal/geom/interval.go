package geom

import "github.com/chewxy/math32"

// Interval is a closed range [Min, Max].
type Interval struct {
	Min float32
	Max float32
}

func NewInterval(min, max float32) Interval {
	return Interval{Min: min, Max: max}
}

// Instant is the zero-length interval [t, t].
func Instant(t float32) Interval {
	return Interval{Min: t, Max: t}
}

func (iv Interval) Len() float32 {
	return iv.Max - iv.Min
}

func (iv Interval) IsEmpty() bool {
	return iv.Min > iv.Max
}

func (iv Interval) Contains(x float32) bool {
	return x >= iv.Min && x <= iv.Max
}

func (iv Interval) Mid() float32 {
	return iv.Min + iv.Len()/2
}

// Intersect returns the overlap of both intervals; it is empty when they are disjoint.
func (iv Interval) Intersect(o Interval) Interval {
	return Interval{Min: math32.Max(iv.Min, o.Min), Max: math32.Min(iv.Max, o.Max)}
}

// Fraction returns the point at fraction f of the interval, f=0 being Min.
func (iv Interval) Fraction(f float32) float32 {
	return iv.Min + iv.Len()*f
}
