package collision

import (
	"fmt"
	"iter"
	"slices"

	"github.com/san-kum/collide/internal/geom"
	"github.com/san-kum/collide/internal/kinematics"
)

// Container owns the pairs tested against one collision-distance interval.
type Container interface {
	kinematics.ChangeListener

	// CollisionInterval is the [min, max] distance range split into bands by the attacher.
	CollisionInterval() geom.Interval

	// SetCollisionResponse installs r for the pair {a, b} and returns the
	// previous response. Both bodies must be unattached or attached to this
	// container. A nil r removes the pair.
	SetCollisionResponse(a, b kinematics.Kinematic, r Response) (Response, error)

	CollisionResponse(a, b kinematics.Kinematic) Response

	// Emitter yields every pair that currently needs evaluation.
	Emitter() iter.Seq[*Pair]
}

// PairSet is a Container that keeps pairs in insertion order and emits those
// whose bodies are both complete.
type PairSet struct {
	interval geom.Interval
	pairs    map[pairKey]*Pair
	order    []*Pair
	byBody   map[uint64][]*Pair
	inactive map[*Pair]bool
}

var _ Container = (*PairSet)(nil)

func NewPairSet(interval geom.Interval) *PairSet {
	return &PairSet{
		interval: interval,
		pairs:    make(map[pairKey]*Pair),
		byBody:   make(map[uint64][]*Pair),
		inactive: make(map[*Pair]bool),
	}
}

func (s *PairSet) CollisionInterval() geom.Interval { return s.interval }

func (s *PairSet) Len() int { return len(s.order) }

// Pair returns the pair for {a, b}, or nil.
func (s *PairSet) Pair(a, b kinematics.Kinematic) *Pair {
	if a == nil || b == nil {
		return nil
	}
	return s.pairs[keyOf(a, b)]
}

func (s *PairSet) CollisionResponse(a, b kinematics.Kinematic) Response {
	if p := s.Pair(a, b); p != nil {
		return p.Response()
	}
	return nil
}

func (s *PairSet) SetCollisionResponse(a, b kinematics.Kinematic, r Response) (Response, error) {
	if a == nil || b == nil {
		return nil, ErrNilBody
	}
	if a == b || a.ID() == b.ID() {
		return nil, ErrSameBody
	}
	for _, k := range []kinematics.Kinematic{a, b} {
		if c := k.Container(); c != nil && c != kinematics.ChangeListener(s) {
			return nil, fmt.Errorf("%w: body %d", ErrContainerMismatch, k.ID())
		}
	}

	key := keyOf(a, b)
	p := s.pairs[key]

	if r == nil {
		if p == nil {
			return nil, nil
		}
		prev := p.SetResponse(nil)
		s.remove(key, p)
		if err := a.DetachContainer(s); err != nil {
			return prev, err
		}
		return prev, b.DetachContainer(s)
	}

	if p == nil {
		if err := a.AttachContainer(s); err != nil {
			return nil, err
		}
		if err := b.AttachContainer(s); err != nil {
			_ = a.DetachContainer(s)
			return nil, err
		}
		p = newPair(a, b)
		s.add(key, p)
	}
	return p.SetResponse(r), nil
}

// NotifyChange re-evaluates whether the pairs of b can be emitted.
func (s *PairSet) NotifyChange(b kinematics.Kinematic) {
	for _, p := range s.byBody[b.ID()] {
		if p.Complete() {
			delete(s.inactive, p)
		} else {
			s.inactive[p] = true
		}
	}
}

func (s *PairSet) Emitter() iter.Seq[*Pair] {
	return func(yield func(*Pair) bool) {
		for _, p := range s.order {
			if s.inactive[p] {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}

// PairsOf returns the pairs that include b.
func (s *PairSet) PairsOf(b kinematics.Kinematic) []*Pair {
	return slices.Clone(s.byBody[b.ID()])
}

func (s *PairSet) add(key pairKey, p *Pair) {
	s.pairs[key] = p
	s.order = append(s.order, p)
	s.byBody[key.lo] = append(s.byBody[key.lo], p)
	s.byBody[key.hi] = append(s.byBody[key.hi], p)
	if !p.Complete() {
		s.inactive[p] = true
	}
}

func (s *PairSet) remove(key pairKey, p *Pair) {
	delete(s.pairs, key)
	delete(s.inactive, p)
	s.order = slices.DeleteFunc(s.order, func(q *Pair) bool { return q == p })
	for _, id := range []uint64{key.lo, key.hi} {
		rest := slices.DeleteFunc(s.byBody[id], func(q *Pair) bool { return q == p })
		if len(rest) == 0 {
			delete(s.byBody, id)
		} else {
			s.byBody[id] = rest
		}
	}
}
