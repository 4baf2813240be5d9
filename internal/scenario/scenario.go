// Package scenario builds a simulation from a configuration and runs it on
// the events queue. Bodies move along their mappers; the attacher reports band
// crossings, components react through their configured behaviours and
// periodic sampling events record pair distances for plotting.
package scenario

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/san-kum/collide/internal/attacher"
	"github.com/san-kum/collide/internal/collision"
	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/dynamics"
	"github.com/san-kum/collide/internal/events"
	"github.com/san-kum/collide/internal/geom"
	"github.com/san-kum/collide/internal/kinematics"
	"github.com/san-kum/collide/internal/metrics"
)

// Body is a configured body. Its mapper is always a Mirror so behaviours can
// swap the motion at a crossing.
type Body struct {
	Name   string
	Kin    *kinematics.Body[*kinematics.Mirror]
	Mirror *kinematics.Mirror
	Dyn    *dynamics.Body
}

// Center returns the center of the body's bounds at t.
func (b *Body) Center(t float32) mgl32.Vec2 {
	bb := b.Kin.InstantShape(t).Bounds()
	return bb.Min.Add(bb.Max).Mul(0.5)
}

type Record struct {
	Time     float32
	Kind     attacher.Kind
	A, B     string
	Distance float32
}

// Action is a behaviour triggered by a component handler.
type Action struct {
	Time      float32
	Body      string
	Other     string
	Behaviour string
}

type Sample struct {
	Time      float32
	Distances []float32
}

type Result struct {
	Name      string
	Duration  float32
	Crossings []Record
	Actions   []Action
	// Pairs labels the columns of every sample.
	Pairs    []string
	Samples  []Sample
	Metrics  map[string]float64
	Stats    attacher.Stats
	Detector collision.AdvancementStats
}

type Option func(*Scenario)

func WithLogger(l *log.Logger) Option {
	return func(s *Scenario) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithObserver adds an observer to the scenario's attacher.
func WithObserver(o attacher.Observer) Option {
	return func(s *Scenario) { s.observers = append(s.observers, o) }
}

type Scenario struct {
	cfg    *config.Config
	Bodies []*Body

	Queue    *events.Queue
	Pairs    *collision.PairSet
	Dynamics *dynamics.Container
	Detector *collision.Advancement
	Attacher *attacher.Attacher

	byKin     map[uint64]*Body
	byDyn     map[*dynamics.Body]*Body
	metrics   []metrics.Metric
	observers []attacher.Observer
	logger    *log.Logger
	clock     float32
	result    Result
}

// Build creates the bodies and containers of cfg and arms the attacher.
func Build(cfg *config.Config, opts ...Option) (*Scenario, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Scenario{
		cfg:     cfg,
		Queue:   events.NewQueue(0),
		Pairs:   collision.NewPairSet(geom.NewInterval(cfg.Collision.Min, cfg.Collision.Max)),
		byKin:   make(map[uint64]*Body),
		byDyn:   make(map[*dynamics.Body]*Body),
		metrics: metrics.Defaults(),
		logger:  log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.result = Result{Name: cfg.Name, Duration: cfg.Duration}

	s.Detector = &collision.Advancement{
		Tolerance:     cfg.Detector.Tolerance,
		MaxIterations: cfg.Detector.MaxIterations,
	}
	s.Dynamics = dynamics.NewContainer(s.Pairs, dynamics.WithLogger(s.logger))

	attOpts := []attacher.Option{
		attacher.WithBands(cfg.Collision.Bands),
		attacher.WithLogger(s.logger),
		attacher.WithObserver(attacher.ObserverFunc(s.record)),
		attacher.WithObserver(metrics.Observer(s.metrics...)),
	}
	for _, o := range s.observers {
		attOpts = append(attOpts, attacher.WithObserver(o))
	}
	s.Attacher = attacher.New(s.Queue, s.Pairs, s.Detector, attOpts...)

	k := newKinds()
	for _, bc := range cfg.Bodies {
		b, err := s.addBody(bc, k)
		if err != nil {
			return nil, fmt.Errorf("body %q: %w", bc.Name, err)
		}
		s.Bodies = append(s.Bodies, b)
	}
	for i := range s.Bodies {
		for j := i + 1; j < len(s.Bodies); j++ {
			s.result.Pairs = append(s.result.Pairs, s.Bodies[i].Name+"|"+s.Bodies[j].Name)
		}
	}

	// the end marker fires before any attacher event sharing its time
	s.Queue.At(cfg.Duration, s.Attacher.Detach)
	if cfg.SampleRate > 0 {
		s.scheduleSample(0)
	}
	s.Attacher.Attach()
	return s, nil
}

func (s *Scenario) addBody(bc config.BodyConfig, k *kinds) (*Body, error) {
	shape, err := buildShape(bc.Shape)
	if err != nil {
		return nil, err
	}
	motion, err := buildMotion(bc.Motion)
	if err != nil {
		return nil, err
	}

	mirror := kinematics.NewMirror(motion)
	kin := kinematics.NewBody(shape, mirror)
	kin.SetName(bc.Name)
	b := &Body{Name: bc.Name, Kin: kin, Mirror: mirror, Dyn: dynamics.NewBody(kin)}
	s.byKin[kin.ID()] = b
	s.byDyn[b.Dyn] = b

	for _, cc := range bc.Components {
		h := s.handler(cc)
		switch cc.Type {
		case "transmitter":
			b.Dyn.AddTransmitter(dynamics.NewTransmitter(cc.Kind, k.transmitter(cc.Kind)))
		case "receiver":
			b.Dyn.AddReceiver(dynamics.NewReceiver(cc.Accepts, k.transmitter(cc.Accepts), h))
		case "symmetric":
			var accepts *dynamics.SymmetricKind
			if cc.Accepts != "" {
				accepts = k.symmetric(cc.Accepts)
			}
			b.Dyn.AddSymmetric(dynamics.NewSymmetric(cc.Kind, k.symmetric(cc.Kind), accepts, h))
		}
	}
	if err := s.Dynamics.Add(b.Dyn); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Scenario) scheduleSample(t float32) {
	if t > s.cfg.Duration {
		return
	}
	s.Queue.At(t, func() {
		s.sample(t)
		s.scheduleSample(t + 1/s.cfg.SampleRate)
	})
}

func (s *Scenario) sample(t float32) {
	ds := make([]float32, 0, len(s.result.Pairs))
	shapes := make([]geom.Shape, len(s.Bodies))
	for i, b := range s.Bodies {
		shapes[i] = b.Kin.InstantShape(t)
	}
	for i := range shapes {
		for j := i + 1; j < len(shapes); j++ {
			ds = append(ds, geom.Distance(shapes[i], shapes[j]))
		}
	}
	s.result.Samples = append(s.result.Samples, Sample{Time: t, Distances: ds})
}

func (s *Scenario) record(c attacher.Crossing) {
	a, b := c.Pair.Bodies()
	s.result.Crossings = append(s.result.Crossings, Record{
		Time:     c.Time,
		Kind:     c.Kind,
		A:        s.nameOf(a.ID()),
		B:        s.nameOf(b.ID()),
		Distance: c.Distance,
	})
}

func (s *Scenario) nameOf(id uint64) string {
	if b, ok := s.byKin[id]; ok {
		return b.Name
	}
	return fmt.Sprintf("body#%d", id)
}

// Body returns the body called name, or nil.
func (s *Scenario) Body(name string) *Body {
	for _, b := range s.Bodies {
		if b.Name == name {
			return b
		}
	}
	return nil
}

func (s *Scenario) Config() *config.Config { return s.cfg }

// Now is the latest time the scenario was advanced to.
func (s *Scenario) Now() float32 { return s.clock }

func (s *Scenario) Done() bool { return s.clock >= s.cfg.Duration }

// Advance fires every event up to min(until, duration).
func (s *Scenario) Advance(ctx context.Context, until float32) error {
	until = math32.Min(until, s.cfg.Duration)
	if err := s.Queue.RunUntil(ctx, until); err != nil {
		return err
	}
	s.clock = math32.Max(s.clock, until)
	return nil
}

// Run advances to the end of the scenario and returns its result.
func (s *Scenario) Run(ctx context.Context) (*Result, error) {
	if err := s.Advance(ctx, s.cfg.Duration); err != nil {
		return s.Result(), err
	}
	return s.Result(), nil
}

// Result returns a snapshot of what the scenario recorded so far.
func (s *Scenario) Result() *Result {
	r := s.result
	r.Metrics = metrics.Collect(s.metrics)
	r.Stats = s.Attacher.Stats()
	r.Detector = s.Detector.Stats
	return &r
}
