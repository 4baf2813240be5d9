package dynamics

import (
	"github.com/san-kum/collide/internal/collision"
	"github.com/san-kum/collide/internal/refcount"
)

// PairResponse is the collision response installed for a pair of bodies
// with at least one matching component pair. Its client count is the number
// of matches; the list of handlers to notify is rebuilt lazily after the
// components of either body change.
type PairResponse struct {
	a, b    *Body
	clients refcount.Count
	dirty   bool
	matches []match
}

var _ collision.Response = (*PairResponse)(nil)

type match struct {
	handler Handler
	contact Contact
}

func newPairResponse(a, b *Body) *PairResponse {
	return &PairResponse{a: a, b: b, dirty: true}
}

func (r *PairResponse) Bodies() (*Body, *Body) { return r.a, r.b }

// Clients returns the number of component matches keeping r installed.
func (r *PairResponse) Clients() uint32 { return r.clients.Value() }

// Handlers returns the number of handlers a crossing fans out to.
func (r *PairResponse) Handlers() int { return len(r.entries()) }

// NotifyUpperBoundaryCollision notifies every handler and keeps the boundary
// under test if at least one of them asks for it.
func (r *PairResponse) NotifyUpperBoundaryCollision(t float32) bool {
	keep := false
	for _, m := range r.entries() {
		c := m.contact
		c.Time = t
		keep = m.handler.UpperBoundaryCollision(c) || keep
	}
	return keep
}

func (r *PairResponse) NotifyIntermediateRegionCollision(t float32) {
	for _, m := range r.entries() {
		c := m.contact
		c.Time = t
		m.handler.IntermediateRegionCollision(c)
	}
}

func (r *PairResponse) NotifyLowerBoundaryCollision(t float32) bool {
	keep := false
	for _, m := range r.entries() {
		c := m.contact
		c.Time = t
		keep = m.handler.LowerBoundaryCollision(c) || keep
	}
	return keep
}

func (r *PairResponse) entries() []match {
	if r.dirty {
		r.matches = r.rebuild()
		r.dirty = false
	}
	return r.matches
}

// rebuild returns a fresh slice: handlers may change components while a
// previous list is still being iterated.
func (r *PairResponse) rebuild() []match {
	var ms []match
	for _, dir := range [2][2]*Body{{r.a, r.b}, {r.b, r.a}} {
		tx, rx := dir[0], dir[1]
		for _, t := range tx.transmitters {
			for _, rc := range rx.receivers {
				if rc.Handler != nil && rc.Matches(t) {
					ms = append(ms, match{rc.Handler, Contact{Body: rx, Other: tx, Transmitter: t}})
				}
			}
		}
	}
	for _, sa := range r.a.symmetrics {
		for _, sb := range r.b.symmetrics {
			if sa.Handler != nil && sa.Accept(sb) {
				ms = append(ms, match{sa.Handler, Contact{Body: r.a, Other: r.b, Peer: sb}})
			}
			if sb.Handler != nil && sb.Accept(sa) {
				ms = append(ms, match{sb.Handler, Contact{Body: r.b, Other: r.a, Peer: sa}})
			}
		}
	}
	return ms
}
