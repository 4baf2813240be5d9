package collision

import "github.com/san-kum/collide/internal/kinematics"

// Pair is an unordered pair of distinct bodies under collision test.
type Pair struct {
	a, b     kinematics.Kinematic
	response Response

	// TestUpperBoundaryLimit and TestLowerBoundaryLimit record whether the
	// boundaries may still be crossed. Both reset to true whenever a response
	// is installed.
	TestUpperBoundaryLimit bool
	TestLowerBoundaryLimit bool
}

type pairKey struct {
	lo, hi uint64
}

func keyOf(a, b kinematics.Kinematic) pairKey {
	if a.ID() > b.ID() {
		a, b = b, a
	}
	return pairKey{lo: a.ID(), hi: b.ID()}
}

func newPair(a, b kinematics.Kinematic) *Pair {
	if a.ID() > b.ID() {
		a, b = b, a
	}
	return &Pair{a: a, b: b}
}

// Bodies returns both bodies, lowest ID first.
func (p *Pair) Bodies() (kinematics.Kinematic, kinematics.Kinematic) {
	return p.a, p.b
}

func (p *Pair) Response() Response { return p.response }

// SetResponse installs r and resets both boundary flags. A nil r clears the response.
func (p *Pair) SetResponse(r Response) Response {
	prev := p.response
	p.response = r
	if r != nil {
		p.TestUpperBoundaryLimit = true
		p.TestLowerBoundaryLimit = true
	}
	return prev
}

// Complete reports whether both bodies have a shape and a mapper.
func (p *Pair) Complete() bool {
	return p.a.IsComplete() && p.b.IsComplete()
}

// Other returns the body paired with k, or nil when k is not in the pair.
func (p *Pair) Other(k kinematics.Kinematic) kinematics.Kinematic {
	switch k {
	case p.a:
		return p.b
	case p.b:
		return p.a
	}
	return nil
}
