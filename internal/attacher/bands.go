package attacher

import (
	"errors"
	"fmt"

	"github.com/san-kum/collide/internal/geom"
)

// ErrInvalidBands indicates band fractions that are not strictly ordered within [0, 1].
var ErrInvalidBands = errors.New("attacher: invalid band fractions")

// Bands splits a collision-distance interval into boundary and intermediate
// sub-bands. Each field is a fraction of the interval width measured from its
// minimum.
type Bands struct {
	MaxLowerBoundary float32 `yaml:"max_lower_boundary"`
	MinIntermediate  float32 `yaml:"min_intermediate"`
	MaxIntermediate  float32 `yaml:"max_intermediate"`
	MinUpperBoundary float32 `yaml:"min_upper_boundary"`
}

// DefaultBands uses fifths of the interval: a lower boundary at 0.25/5, the
// intermediate region between 2/5 and 3/5 and an upper boundary at 4.75/5.
func DefaultBands() Bands {
	return Bands{
		MaxLowerBoundary: 0.25 / 5,
		MinIntermediate:  2.0 / 5,
		MaxIntermediate:  3.0 / 5,
		MinUpperBoundary: 4.75 / 5,
	}
}

func (b Bands) Validate() error {
	if !(0 < b.MaxLowerBoundary &&
		b.MaxLowerBoundary < b.MinIntermediate &&
		b.MinIntermediate < b.MaxIntermediate &&
		b.MaxIntermediate < b.MinUpperBoundary &&
		b.MinUpperBoundary < 1) {
		return fmt.Errorf("%w: %+v", ErrInvalidBands, b)
	}
	return nil
}

// Limits are the absolute distances bounding each band.
type Limits struct {
	Min              float32
	MaxLowerBoundary float32
	MinIntermediate  float32
	MaxIntermediate  float32
	MinUpperBoundary float32
	Max              float32
}

func (b Bands) Limits(iv geom.Interval) Limits {
	return Limits{
		Min:              iv.Min,
		MaxLowerBoundary: iv.Fraction(b.MaxLowerBoundary),
		MinIntermediate:  iv.Fraction(b.MinIntermediate),
		MaxIntermediate:  iv.Fraction(b.MaxIntermediate),
		MinUpperBoundary: iv.Fraction(b.MinUpperBoundary),
		Max:              iv.Max,
	}
}

func (l Limits) UpperBand() geom.Interval {
	return geom.NewInterval(l.MinUpperBoundary, l.Max)
}

func (l Limits) IntermediateBand() geom.Interval {
	return geom.NewInterval(l.MinIntermediate, l.MaxIntermediate)
}

func (l Limits) LowerBand() geom.Interval {
	return geom.NewInterval(l.Min, l.MaxLowerBoundary)
}
