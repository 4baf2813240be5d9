package dynamics

import (
	"fmt"
	"io"
	"log"
	"slices"

	"github.com/san-kum/collide/internal/collision"
	"github.com/san-kum/collide/internal/kinematics"
	"github.com/san-kum/collide/internal/refcount"
)

// Option configures a Container.
type Option func(*Container)

// WithLogger logs pair installs and removals to l.
func WithLogger(l *log.Logger) Option {
	return func(c *Container) {
		if l != nil {
			c.logger = l
		}
	}
}

// profile maps a component kind to the bodies carrying it, counted per component.
type profile[K comparable] map[K]*multiset[*Body]

func (p profile[K]) register(k K, b *Body) {
	s := p[k]
	if s == nil {
		s = newMultiset[*Body]()
		p[k] = s
	}
	s.add(b)
}

func (p profile[K]) unregister(k K, b *Body) {
	if s := p[k]; s != nil {
		s.remove(b)
		if s.len() == 0 {
			delete(p, k)
		}
	}
}

type bodyKey struct {
	lo, hi *Body
}

func keyOf(a, b *Body) bodyKey {
	if a.kin.ID() > b.kin.ID() {
		a, b = b, a
	}
	return bodyKey{a, b}
}

// Container tracks dynamics bodies on top of a collision container and keeps
// a PairResponse installed for every pair of bodies whose components match.
type Container struct {
	pairs  collision.Container
	bodies []*Body

	// transmitters are registered under their kind and every ancestor,
	// receivers under the exact kind they accept.
	transmitters profile[*TransmitterKind]
	receivers    profile[*TransmitterKind]

	// symmetric components are registered under their own kind and,
	// separately, under the kind they accept.
	symmetrics profile[*SymmetricKind]
	acceptors  profile[*SymmetricKind]

	responses map[bodyKey]*PairResponse
	logger    *log.Logger
}

// NewContainer returns an empty container that installs pair responses into pairs.
func NewContainer(pairs collision.Container, opts ...Option) *Container {
	c := &Container{
		pairs:        pairs,
		transmitters: make(profile[*TransmitterKind]),
		receivers:    make(profile[*TransmitterKind]),
		symmetrics:   make(profile[*SymmetricKind]),
		acceptors:    make(profile[*SymmetricKind]),
		responses:    make(map[bodyKey]*PairResponse),
		logger:       log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collision returns the kinematic container the pair responses are installed in.
func (c *Container) Collision() collision.Container { return c.pairs }

func (c *Container) Len() int { return len(c.bodies) }

func (c *Container) Bodies() []*Body { return slices.Clone(c.bodies) }

func (c *Container) Contains(b *Body) bool { return b != nil && b.container == c }

// Pairs returns the number of installed pair responses.
func (c *Container) Pairs() int { return len(c.responses) }

// Response returns the installed response for {a, b}, or nil.
func (c *Container) Response(a, b *Body) *PairResponse {
	if a == nil || b == nil || a.kin == nil || b.kin == nil {
		return nil
	}
	return c.responses[keyOf(a, b)]
}

// Add registers every component of b and installs the responses it makes
// necessary. The kinematic body must be free or already attached to this
// container's collision container.
func (c *Container) Add(b *Body) error {
	if b == nil || b.kin == nil {
		return ErrNilBody
	}
	if b.container != nil {
		return fmt.Errorf("%w: %s", ErrAlreadyAttached, b)
	}
	if k := b.kin.Container(); k != nil && k != kinematics.ChangeListener(c.pairs) {
		return fmt.Errorf("%w: %s", ErrContainerMismatch, b)
	}

	b.container = c
	c.bodies = append(c.bodies, b)
	for _, t := range b.transmitters {
		c.addTransmitter(b, t)
	}
	for _, r := range b.receivers {
		c.addReceiver(b, r)
	}
	for _, s := range b.symmetrics {
		c.addSymmetric(b, s)
	}
	return nil
}

// Remove unregisters b and drops the responses only it justified. It
// reports false when b is not in this container.
func (c *Container) Remove(b *Body) bool {
	if !c.Contains(b) {
		return false
	}
	for _, t := range b.transmitters {
		c.removeTransmitter(b, t)
	}
	for _, r := range b.receivers {
		c.removeReceiver(b, r)
	}
	for _, s := range b.symmetrics {
		c.removeSymmetric(b, s)
	}
	b.container = nil
	c.bodies = slices.DeleteFunc(c.bodies, func(o *Body) bool { return o == b })
	return true
}

func (c *Container) addTransmitter(b *Body, t *TransmitterComponent) {
	for k := range t.kind.Ancestors() {
		c.transmitters.register(k, b)
		if rs := c.receivers[k]; rs != nil {
			for o, n := range rs.all() {
				if o != b {
					c.retain(b, o, n)
				}
			}
		}
	}
}

func (c *Container) removeTransmitter(b *Body, t *TransmitterComponent) {
	for k := range t.kind.Ancestors() {
		c.transmitters.unregister(k, b)
		if rs := c.receivers[k]; rs != nil {
			for o, n := range rs.all() {
				if o != b {
					c.release(b, o, n)
				}
			}
		}
	}
}

func (c *Container) addReceiver(b *Body, r *ReceiverComponent) {
	c.receivers.register(r.accepts, b)
	if ts := c.transmitters[r.accepts]; ts != nil {
		for o, n := range ts.all() {
			if o != b {
				c.retain(o, b, n)
			}
		}
	}
}

func (c *Container) removeReceiver(b *Body, r *ReceiverComponent) {
	c.receivers.unregister(r.accepts, b)
	if ts := c.transmitters[r.accepts]; ts != nil {
		for o, n := range ts.all() {
			if o != b {
				c.release(o, b, n)
			}
		}
	}
}

func (c *Container) addSymmetric(b *Body, s *SymmetricComponent) {
	c.symmetrics.register(s.kind, b)
	c.acceptors.register(s.accepts, b)
	for _, o := range c.symmetricCandidates(b, s) {
		if n := symmetricMatches(s, o); n > 0 {
			c.retain(b, o, n)
		}
	}
}

func (c *Container) removeSymmetric(b *Body, s *SymmetricComponent) {
	c.symmetrics.unregister(s.kind, b)
	c.acceptors.unregister(s.accepts, b)
	for _, o := range c.symmetricCandidates(b, s) {
		if n := symmetricMatches(s, o); n > 0 {
			c.release(b, o, n)
		}
	}
}

// symmetricCandidates returns the other bodies holding a component whose
// kind s accepts, or which accepts the kind of s.
func (c *Container) symmetricCandidates(b *Body, s *SymmetricComponent) []*Body {
	seen := map[*Body]bool{b: true}
	var out []*Body
	collect := func(set *multiset[*Body]) {
		if set == nil {
			return
		}
		for o := range set.all() {
			if !seen[o] {
				seen[o] = true
				out = append(out, o)
			}
		}
	}
	for k := range s.accepts.Descendants() {
		collect(c.symmetrics[k])
	}
	for k := range s.kind.Ancestors() {
		collect(c.acceptors[k])
	}
	return out
}

// symmetricMatches counts the components of o matching s. Each unordered
// component pair counts once even when both sides accept each other.
func symmetricMatches(s *SymmetricComponent, o *Body) int {
	n := 0
	for _, p := range o.symmetrics {
		if s.Matches(p) {
			n++
		}
	}
	return n
}

func (c *Container) retain(a, b *Body, n int) {
	key := keyOf(a, b)
	r := c.responses[key]
	if r == nil {
		r = newPairResponse(key.lo, key.hi)
		c.responses[key] = r
	}
	r.dirty = true
	install := r.clients.Empty()
	for range n {
		r.clients.Inc()
	}
	if !install {
		return
	}
	if _, err := c.pairs.SetCollisionResponse(key.lo.kin, key.hi.kin, r); err != nil {
		// Add checked both kinematic bodies; they were reattached elsewhere since.
		panic(err)
	}
	c.logger.Printf("pair %s/%s installed", key.lo, key.hi)
}

func (c *Container) release(a, b *Body, n int) {
	key := keyOf(a, b)
	r := c.responses[key]
	if r == nil {
		panic(refcount.ErrUnderflow)
	}
	r.dirty = true
	for range n {
		r.clients.Dec()
	}
	if !r.clients.Empty() {
		return
	}
	delete(c.responses, key)
	if _, err := c.pairs.SetCollisionResponse(key.lo.kin, key.hi.kin, nil); err != nil {
		panic(err)
	}
	c.logger.Printf("pair %s/%s removed", key.lo, key.hi)
}
