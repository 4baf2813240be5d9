// Package attacher drives continuous collision detection from a temporal
// events manager.
//
// An [Attacher] keeps exactly one pending event in the manager. When it fires,
// the attacher looks at the window between the current time and the next
// externally scheduled event, asks the detector for the earliest band
// crossing of every active pair, and schedules either that crossing or an
// idle event at the end of the window. Each fired event re-arms the attacher,
// so the host's event loop drives the simulation without fixed time steps.
package attacher

import (
	"errors"
	"io"
	"log"

	"github.com/chewxy/math32"
	"github.com/san-kum/collide/internal/collision"
	"github.com/san-kum/collide/internal/events"
	"github.com/san-kum/collide/internal/geom"
)

// ErrNoEventsLeft is the panic value raised when the attacher fires with no
// other event pending: something removed the events that bound its window.
var ErrNoEventsLeft = errors.New("attacher: no events left")

// Kind identifies the band whose crossing produced an event.
type Kind int

const (
	Upper Kind = iota
	Intermediate
	Lower
)

func (k Kind) String() string {
	switch k {
	case Upper:
		return "upper"
	case Intermediate:
		return "intermediate"
	case Lower:
		return "lower"
	default:
		return "unknown"
	}
}

// Crossing is the earliest band crossing found for a pair.
type Crossing struct {
	Time float32
	Kind Kind
	Pair *collision.Pair
	// Distance is the pair distance at the start of the probed window.
	Distance float32
}

// Observer is told about every crossing after the pair's response handled it.
type Observer interface {
	OnCrossing(c Crossing)
}

// ObserverFunc adapts a function to an Observer.
type ObserverFunc func(c Crossing)

func (f ObserverFunc) OnCrossing(c Crossing) { f(c) }

// Stats counts attacher activity.
type Stats struct {
	Ticks      int
	Degenerate int
	Idle       int
	Crossings  int
	Probes     int
}

// Option configures an Attacher.
type Option func(*Attacher)

// WithBands replaces the default band fractions.
func WithBands(b Bands) Option {
	return func(a *Attacher) { a.bands = b }
}

// WithLogger logs every resolved crossing to l.
func WithLogger(l *log.Logger) Option {
	return func(a *Attacher) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithObserver adds o to the observers told about each crossing.
func WithObserver(o Observer) Option {
	return func(a *Attacher) { a.observers = append(a.observers, o) }
}

// Attacher schedules pair crossings of one container on an events manager.
type Attacher struct {
	events    events.Manager
	container collision.Container
	detector  collision.Detector
	bands     Bands
	logger    *log.Logger
	observers []Observer
	stats     Stats
}

// New returns an attacher for the pairs of c on m. Attach arms it.
func New(m events.Manager, c collision.Container, d collision.Detector, opts ...Option) *Attacher {
	a := &Attacher{
		events:    m,
		container: c,
		detector:  d,
		bands:     DefaultBands(),
		logger:    log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Attach arms the first event at the manager's current time.
func (a *Attacher) Attach() {
	if a.events == nil {
		return
	}
	a.rearm(a.events.CurrentTime())
}

// Detach stops re-arming. An event already queued still fires, as a no-op.
func (a *Attacher) Detach() {
	a.events = nil
}

func (a *Attacher) Attached() bool { return a.events != nil }

func (a *Attacher) Stats() Stats { return a.stats }

func (a *Attacher) Bands() Bands { return a.bands }

func (a *Attacher) rearm(t float32) {
	a.events.AddEvent(events.Event{Time: t, Fire: a.simulate})
}

func (a *Attacher) simulate() {
	m := a.events
	if m == nil {
		return
	}
	if !m.RemainingEvents() {
		panic(ErrNoEventsLeft)
	}
	a.stats.Ticks++

	now := m.CurrentTime()
	next := m.NearestEventTime()
	if next == now {
		// let the external event at this instant run first
		a.stats.Degenerate++
		a.rearm(next)
		return
	}

	window := geom.NewInterval(now, next)
	best, found := a.earliest(window)
	if !found {
		a.stats.Idle++
		a.rearm(window.Max)
		return
	}
	m.AddEvent(events.Event{Time: best.Time, Fire: func() { a.resolve(best) }})
}

// earliest returns the first crossing over all emitted pairs; ties keep the
// pair emitted first.
func (a *Attacher) earliest(window geom.Interval) (Crossing, bool) {
	limits := a.bands.Limits(a.container.CollisionInterval())

	var best Crossing
	found := false
	for p := range a.container.Emitter() {
		c, ok := a.probe(p, window, limits)
		if ok && (!found || c.Time < best.Time) {
			best, found = c, true
		}
	}
	return best, found
}

func (a *Attacher) probe(p *collision.Pair, window geom.Interval, l Limits) (Crossing, bool) {
	ka, kb := p.Bodies()
	start := math32.Max(window.Min, math32.Max(ka.StartTime(), kb.StartTime()))
	if start > window.Max {
		return Crossing{}, false
	}
	iv := geom.NewInterval(start, window.Max)
	dist := geom.Distance(ka.InstantShape(start), kb.InstantShape(start))

	var best Crossing
	found := false
	try := func(kind Kind, band geom.Interval, exiting bool) {
		a.stats.Probes++
		t, ok := a.detector.TestCollision(iv, band, exiting, ka, kb)
		if ok && (!found || t < best.Time) {
			best = Crossing{Time: t, Kind: kind, Pair: p, Distance: dist}
			found = true
		}
	}

	if p.TestUpperBoundaryLimit && dist >= l.MinIntermediate && dist < l.MinUpperBoundary {
		try(Upper, l.UpperBand(), true)
	}
	if dist < l.MinIntermediate || dist > l.MaxIntermediate {
		try(Intermediate, l.IntermediateBand(), dist < l.MinIntermediate)
	}
	if p.TestLowerBoundaryLimit && dist > l.MaxLowerBoundary && dist <= l.MaxIntermediate {
		try(Lower, l.LowerBand(), false)
	}
	return best, found
}

func (a *Attacher) resolve(c Crossing) {
	if a.events == nil {
		return
	}
	a.stats.Crossings++

	if r := c.Pair.Response(); r != nil {
		switch c.Kind {
		case Upper:
			c.Pair.TestUpperBoundaryLimit = r.NotifyUpperBoundaryCollision(c.Time)
		case Intermediate:
			r.NotifyIntermediateRegionCollision(c.Time)
		case Lower:
			c.Pair.TestLowerBoundaryLimit = r.NotifyLowerBoundaryCollision(c.Time)
		}
	}
	a.logger.Printf("t=%.5f %s crossing (distance %.4f)", c.Time, c.Kind, c.Distance)

	for _, o := range a.observers {
		o.OnCrossing(c)
	}
	a.simulate()
}
