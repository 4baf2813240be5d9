package attacher_test

import (
	"github.com/go-gl/mathgl/mgl32"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/collide/internal/attacher"
	"github.com/san-kum/collide/internal/collision"
	"github.com/san-kum/collide/internal/events"
	"github.com/san-kum/collide/internal/geom"
	"github.com/san-kum/collide/internal/kinematics"
)

type probe struct {
	start   float32
	band    geom.Interval
	exiting bool
	dist    float32
}

type spyDetector struct {
	inner  collision.Detector
	probes []probe
}

func (s *spyDetector) TestCollision(iv, band geom.Interval, exiting bool, a, b kinematics.Kinematic) (float32, bool) {
	dist := geom.Distance(a.InstantShape(iv.Min), b.InstantShape(iv.Min))
	s.probes = append(s.probes, probe{start: iv.Min, band: band, exiting: exiting, dist: dist})
	return s.inner.TestCollision(iv, band, exiting, a, b)
}

func point() geom.Shape { return geom.NewPoint(mgl32.Vec2{}) }

func linear(t0, x, vx float32) *kinematics.Translation {
	return kinematics.NewTranslation(kinematics.NewLinear(t0, mgl32.Vec2{x, 0}, mgl32.Vec2{vx, 0}))
}

var _ = Describe("Attacher", func() {
	var (
		queue    *events.Queue
		pairs    *collision.PairSet
		detector *spyDetector
		seen     []attacher.Crossing
		att      *attacher.Attacher
	)

	interval := geom.NewInterval(0.1, 1.0)
	limits := attacher.DefaultBands().Limits(interval)

	BeforeEach(func() {
		queue = events.NewQueue(0)
		pairs = collision.NewPairSet(interval)
		detector = &spyDetector{inner: collision.NewAdvancement()}
		seen = nil
		att = attacher.New(queue, pairs, detector, attacher.WithObserver(attacher.ObserverFunc(func(c attacher.Crossing) {
			seen = append(seen, c)
		})))
	})

	run := func(end float32) {
		queue.At(end, nil)
		att.Attach()
		for queue.Step() {
			if queue.CurrentTime() >= end {
				att.Detach()
			}
		}
	}

	Context("two points closing head-on", func() {
		var (
			a, b  kinematics.Kinematic
			kinds []string
		)

		BeforeEach(func() {
			a = kinematics.NewBody[kinematics.Mapper](point(), kinematics.NewIdentity())
			// static identity composed with a constant-velocity translation
			b = kinematics.NewBody[kinematics.Mapper](point(),
				kinematics.NewTransformed(kinematics.NewIdentity(), linear(0, 2, -1)))
			kinds = nil
			_, err := pairs.SetCollisionResponse(a, b, &collision.ResponseFuncs{
				Upper:        func(float32) bool { kinds = append(kinds, "upper"); return true },
				Intermediate: func(float32) { kinds = append(kinds, "intermediate") },
				Lower:        func(float32) bool { kinds = append(kinds, "lower"); return true },
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("reports the intermediate region before any boundary", func() {
			run(10)

			Expect(seen).NotTo(BeEmpty())
			Expect(seen[0].Kind).To(Equal(attacher.Intermediate))
			Expect(seen[0].Time).To(BeNumerically("~", 2-limits.MaxIntermediate, 1e-3))
			Expect(kinds[0]).To(Equal("intermediate"))
		})

		It("follows the pair through the full pass", func() {
			run(10)

			Expect(kinds).To(Equal([]string{"intermediate", "lower", "intermediate", "upper"}))
			Expect(seen[1].Time).To(BeNumerically("~", 2-limits.MaxLowerBoundary, 1e-3))
			Expect(seen[2].Time).To(BeNumerically("~", 2+limits.MinIntermediate, 1e-3))
			Expect(seen[3].Time).To(BeNumerically("~", 2+limits.MinUpperBoundary, 1e-3))
			Expect(att.Stats().Crossings).To(Equal(4))
		})

		It("tells the detector which way each band is crossed", func() {
			run(10)

			probed := map[geom.Interval]int{}
			for _, p := range detector.probes {
				probed[p.band]++
				switch p.band {
				case limits.UpperBand():
					Expect(p.exiting).To(BeTrue())
				case limits.LowerBand():
					Expect(p.exiting).To(BeFalse())
				case limits.IntermediateBand():
					Expect(p.exiting).To(Equal(p.dist < limits.MinIntermediate))
				}
			}
			Expect(probed).To(HaveKey(limits.UpperBand()))
			Expect(probed).To(HaveKey(limits.LowerBand()))
			Expect(probed).To(HaveKey(limits.IntermediateBand()))
		})

		It("does not probe pairs before their bodies start", func() {
			late := kinematics.NewBody[kinematics.Mapper](point(), linear(20, 5, -1))
			_, err := pairs.SetCollisionResponse(a, late, &collision.ResponseFuncs{})
			Expect(err).NotTo(HaveOccurred())

			run(10)

			for _, c := range seen {
				Expect(c.Pair).To(Equal(pairs.Pair(a, b)))
			}
		})
	})

	Context("an upper boundary declared impassable", func() {
		var (
			a      kinematics.Kinematic
			mirror *kinematics.Mirror
			b      *kinematics.Body[*kinematics.Mirror]
			upAt   float32
		)

		const resetAt = 0.6

		BeforeEach(func() {
			a = kinematics.NewBody[kinematics.Mapper](point(), kinematics.NewIdentity())
			mirror = kinematics.NewMirror(linear(0, 0.5, 1))
			b = kinematics.NewBody(point(), mirror)
			upAt = -1

			_, err := pairs.SetCollisionResponse(a, b, &collision.ResponseFuncs{
				Upper: func(t float32) bool {
					upAt = t
					x := b.InstantShape(t).Bounds().Min.X()
					mirror.Set(linear(t, x, -1))
					return false
				},
			})
			Expect(err).NotTo(HaveOccurred())
			queue.At(resetAt, func() {
				_, err := pairs.SetCollisionResponse(a, b, &collision.ResponseFuncs{})
				Expect(err).NotTo(HaveOccurred())
			})
		})

		It("stops probing the upper band until a response is installed again", func() {
			run(2)

			Expect(upAt).To(BeNumerically("~", limits.MinUpperBoundary-0.5, 1e-3))
			upperBefore, upperAfter := 0, 0
			for _, p := range detector.probes {
				if p.band != limits.UpperBand() {
					continue
				}
				switch {
				case p.start >= upAt && p.start < resetAt:
					upperBefore++
				case p.start >= resetAt:
					upperAfter++
				}
			}
			Expect(upperBefore).To(BeZero())
			Expect(upperAfter).To(BeNumerically(">", 0))
		})
	})

	Context("event loop discipline", func() {
		It("panics when no other event bounds the window", func() {
			att.Attach()
			Expect(func() { queue.Step() }).To(PanicWith(MatchError(attacher.ErrNoEventsLeft)))
		})

		It("yields to an external event at the current instant", func() {
			att.Attach()
			queue.At(0, nil)
			queue.At(1, nil)

			Expect(queue.Step()).To(BeTrue())
			Expect(att.Stats().Degenerate).To(Equal(1))
			Expect(queue.Len()).To(Equal(3))
		})

		It("turns a queued event into a no-op after Detach", func() {
			queue.At(5, nil)
			att.Attach()
			att.Detach()

			for queue.Step() {
			}
			Expect(queue.Fired()).To(Equal(2))
			Expect(att.Stats().Ticks).To(BeZero())
			Expect(att.Attached()).To(BeFalse())
		})

		It("keeps a single pending event while idle", func() {
			queue.At(1, nil)
			queue.At(2, nil)
			att.Attach()

			Expect(queue.Step()).To(BeTrue())
			Expect(queue.Len()).To(Equal(3))
			Expect(att.Stats().Idle).To(Equal(1))
		})
	})

	Context("several pairs", func() {
		It("picks the globally earliest crossing", func() {
			origin := kinematics.NewBody[kinematics.Mapper](point(), kinematics.NewIdentity())
			far := kinematics.NewBody[kinematics.Mapper](point(), linear(0, 5, -1))
			near := kinematics.NewBody[kinematics.Mapper](point(), linear(0, -3, 1))

			var order []string
			_, err := pairs.SetCollisionResponse(origin, far, &collision.ResponseFuncs{
				Intermediate: func(float32) { order = append(order, "far") },
			})
			Expect(err).NotTo(HaveOccurred())
			_, err = pairs.SetCollisionResponse(origin, near, &collision.ResponseFuncs{
				Intermediate: func(float32) { order = append(order, "near") },
			})
			Expect(err).NotTo(HaveOccurred())

			run(4.5)

			Expect(order).NotTo(BeEmpty())
			Expect(order[0]).To(Equal("near"))
			Expect(order).To(ContainElement("far"))
		})

		DescribeTable("resolves simultaneous crossings in insertion order",
			func(firstX float32) {
				origin := kinematics.NewBody[kinematics.Mapper](point(), kinematics.NewIdentity())
				first := kinematics.NewBody[kinematics.Mapper](point(), linear(0, firstX, -firstX/3))
				second := kinematics.NewBody[kinematics.Mapper](point(), linear(0, -firstX, firstX/3))

				var order []string
				var times []float32
				for _, b := range []struct {
					name string
					body kinematics.Kinematic
				}{{"first", first}, {"second", second}} {
					_, err := pairs.SetCollisionResponse(origin, b.body, &collision.ResponseFuncs{
						Intermediate: func(t float32) {
							order = append(order, b.name)
							times = append(times, t)
						},
					})
					Expect(err).NotTo(HaveOccurred())
				}

				run(2.5)

				Expect(order).NotTo(BeEmpty())
				Expect(order[0]).To(Equal("first"))
				Expect(times[0]).To(BeNumerically("~", 3-limits.MaxIntermediate, 1e-3))
			},
			Entry("approaching from the right", float32(3)),
			Entry("approaching from the left", float32(-3)),
		)
	})
})
