package dynamics_test

import (
	"github.com/go-gl/mathgl/mgl32"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/collide/internal/attacher"
	"github.com/san-kum/collide/internal/collision"
	"github.com/san-kum/collide/internal/dynamics"
	"github.com/san-kum/collide/internal/events"
	"github.com/san-kum/collide/internal/geom"
	"github.com/san-kum/collide/internal/kinematics"
)

var (
	projectile = dynamics.NewTransmitterKind("projectile", nil)
	bullet     = dynamics.NewTransmitterKind("bullet", projectile)

	ship  = dynamics.NewSymmetricKind("ship", nil)
	rock  = dynamics.NewSymmetricKind("rock", nil)
	fluid = dynamics.NewSymmetricKind("fluid", nil)
	water = dynamics.NewSymmetricKind("water", fluid)
)

func pointAt(x float32) *dynamics.Body {
	k := kinematics.NewBody[kinematics.Mapper](geom.NewPoint(mgl32.Vec2{x, 0}), kinematics.NewIdentity())
	return dynamics.NewBody(k)
}

var _ = Describe("Container", func() {
	var (
		pairs     *collision.PairSet
		container *dynamics.Container
		a, b      *dynamics.Body
	)

	BeforeEach(func() {
		pairs = collision.NewPairSet(geom.NewInterval(0.1, 1))
		container = dynamics.NewContainer(pairs)
		a, b = pointAt(0), pointAt(5)
	})

	Describe("membership", func() {
		It("rejects nil and already added bodies", func() {
			Expect(container.Add(nil)).To(MatchError(dynamics.ErrNilBody))
			Expect(container.Add(dynamics.NewBody(nil))).To(MatchError(dynamics.ErrNilBody))

			Expect(container.Add(a)).To(Succeed())
			Expect(container.Add(a)).To(MatchError(dynamics.ErrAlreadyAttached))

			other := dynamics.NewContainer(collision.NewPairSet(geom.NewInterval(0.1, 1)))
			Expect(other.Add(a)).To(MatchError(dynamics.ErrAlreadyAttached))
			Expect(a.Container()).To(Equal(container))
		})

		It("rejects a kinematic body owned by another collision container", func() {
			foreign := collision.NewPairSet(geom.NewInterval(0.1, 1))
			_, err := foreign.SetCollisionResponse(a.Kinematic(), pointAt(1).Kinematic(), &collision.ResponseFuncs{})
			Expect(err).NotTo(HaveOccurred())

			Expect(container.Add(a)).To(MatchError(dynamics.ErrContainerMismatch))
			Expect(container.Contains(a)).To(BeFalse())
		})

		It("returns false when removing a body it does not hold", func() {
			Expect(container.Remove(a)).To(BeFalse())
			Expect(container.Remove(nil)).To(BeFalse())

			Expect(container.Add(a)).To(Succeed())
			Expect(container.Remove(a)).To(BeTrue())
			Expect(container.Remove(a)).To(BeFalse())
			Expect(container.Len()).To(BeZero())
			Expect(a.Container()).To(BeNil())
		})
	})

	Describe("transmitters and receivers", func() {
		It("drops the pair once every match is gone", func() {
			const n = 4
			b.AddReceiver(dynamics.NewReceiver("hull", bullet, &dynamics.HandlerFuncs{}))
			Expect(container.Add(a)).To(Succeed())
			Expect(container.Add(b)).To(Succeed())

			var shots []*dynamics.TransmitterComponent
			for range n {
				t := dynamics.NewTransmitter("shot", bullet)
				shots = append(shots, t)
				Expect(a.AddTransmitter(t)).To(BeTrue())
			}
			Expect(container.Pairs()).To(Equal(1))
			Expect(container.Response(a, b).Clients()).To(BeEquivalentTo(n))
			Expect(pairs.Len()).To(Equal(1))

			for _, t := range shots {
				Expect(a.RemoveTransmitter(t)).To(BeTrue())
			}
			Expect(container.Pairs()).To(BeZero())
			Expect(pairs.Len()).To(BeZero())
			Expect(a.Kinematic().Container()).To(BeNil())
			Expect(b.Kinematic().Container()).To(BeNil())
		})

		It("matches a receiver of an abstract kind with concrete transmitters", func() {
			a.AddTransmitter(dynamics.NewTransmitter("shot", bullet))
			b.AddReceiver(dynamics.NewReceiver("hull", projectile, &dynamics.HandlerFuncs{}))
			Expect(container.Add(a)).To(Succeed())
			Expect(container.Add(b)).To(Succeed())

			Expect(container.Response(a, b)).NotTo(BeNil())
			Expect(container.Response(a, b).Clients()).To(BeEquivalentTo(1))
		})

		It("does not match a receiver of a concrete kind with abstract transmitters", func() {
			a.AddTransmitter(dynamics.NewTransmitter("debris", projectile))
			b.AddReceiver(dynamics.NewReceiver("hull", bullet, &dynamics.HandlerFuncs{}))
			Expect(container.Add(a)).To(Succeed())
			Expect(container.Add(b)).To(Succeed())

			Expect(container.Pairs()).To(BeZero())
		})

		It("never pairs a body with itself", func() {
			a.AddTransmitter(dynamics.NewTransmitter("shot", bullet))
			a.AddReceiver(dynamics.NewReceiver("hull", bullet, &dynamics.HandlerFuncs{}))
			Expect(container.Add(a)).To(Succeed())

			Expect(container.Pairs()).To(BeZero())
		})

		It("releases every pair of a removed body", func() {
			c := pointAt(-5)
			for _, body := range []*dynamics.Body{b, c} {
				body.AddReceiver(dynamics.NewReceiver("hull", projectile, &dynamics.HandlerFuncs{}))
				Expect(container.Add(body)).To(Succeed())
			}
			a.AddTransmitter(dynamics.NewTransmitter("shot", bullet))
			Expect(container.Add(a)).To(Succeed())
			Expect(container.Pairs()).To(Equal(2))

			Expect(container.Remove(a)).To(BeTrue())
			Expect(container.Pairs()).To(BeZero())
			Expect(pairs.Len()).To(BeZero())
		})

		It("notifies receivers with the transmitter that reached them", func() {
			shot := dynamics.NewTransmitter("shot", bullet)
			var got []dynamics.Contact
			a.AddTransmitter(shot)
			b.AddReceiver(dynamics.NewReceiver("hull", projectile, &dynamics.HandlerFuncs{
				Intermediate: func(c dynamics.Contact) { got = append(got, c) },
			}))
			Expect(container.Add(a)).To(Succeed())
			Expect(container.Add(b)).To(Succeed())

			pairs.CollisionResponse(a.Kinematic(), b.Kinematic()).NotifyIntermediateRegionCollision(1.5)

			Expect(got).To(HaveLen(1))
			Expect(got[0].Time).To(BeNumerically("==", 1.5))
			Expect(got[0].Body).To(Equal(b))
			Expect(got[0].Other).To(Equal(a))
			Expect(got[0].Transmitter).To(Equal(shot))
		})

		It("keeps testing a boundary while any handler asks to", func() {
			calls := 0
			keep := func(dynamics.Contact) bool { calls++; return true }
			stop := func(dynamics.Contact) bool { calls++; return false }
			a.AddTransmitter(dynamics.NewTransmitter("shot", bullet))
			b.AddReceiver(dynamics.NewReceiver("shield", bullet, &dynamics.HandlerFuncs{Upper: stop}))
			b.AddReceiver(dynamics.NewReceiver("hull", bullet, &dynamics.HandlerFuncs{Upper: keep, Lower: keep}))
			Expect(container.Add(a)).To(Succeed())
			Expect(container.Add(b)).To(Succeed())

			r := container.Response(a, b)
			Expect(r.Handlers()).To(Equal(2))
			Expect(r.NotifyUpperBoundaryCollision(1)).To(BeTrue())
			Expect(calls).To(Equal(2))
			Expect(r.NotifyLowerBoundaryCollision(1)).To(BeTrue())
		})

		It("stops testing a boundary once every handler releases it", func() {
			calls := 0
			stop := func(dynamics.Contact) bool { calls++; return false }
			a.AddTransmitter(dynamics.NewTransmitter("shot", bullet))
			b.AddReceiver(dynamics.NewReceiver("shield", bullet, &dynamics.HandlerFuncs{Upper: stop}))
			b.AddReceiver(dynamics.NewReceiver("hull", projectile, &dynamics.HandlerFuncs{Upper: stop}))
			Expect(container.Add(a)).To(Succeed())
			Expect(container.Add(b)).To(Succeed())

			r := container.Response(a, b)
			Expect(r.NotifyUpperBoundaryCollision(1)).To(BeFalse())
			Expect(calls).To(Equal(2))
		})

		It("rebuilds its handler list after components change", func() {
			a.AddTransmitter(dynamics.NewTransmitter("shot", bullet))
			b.AddReceiver(dynamics.NewReceiver("hull", bullet, &dynamics.HandlerFuncs{}))
			Expect(container.Add(a)).To(Succeed())
			Expect(container.Add(b)).To(Succeed())
			r := container.Response(a, b)
			Expect(r.Handlers()).To(Equal(1))

			extra := dynamics.NewReceiver("sensor", projectile, &dynamics.HandlerFuncs{})
			b.AddReceiver(extra)
			Expect(r.Handlers()).To(Equal(2))
			Expect(r.Clients()).To(BeEquivalentTo(2))

			b.RemoveReceiver(extra)
			Expect(r.Handlers()).To(Equal(1))
		})
	})

	Describe("symmetric components", func() {
		It("counts one match for components of the same kind", func() {
			a.AddSymmetric(dynamics.NewSymmetric("hull", ship, nil, &dynamics.HandlerFuncs{}))
			b.AddSymmetric(dynamics.NewSymmetric("hull", ship, nil, &dynamics.HandlerFuncs{}))
			Expect(container.Add(a)).To(Succeed())
			Expect(container.Add(b)).To(Succeed())

			Expect(container.Response(a, b).Clients()).To(BeEquivalentTo(1))
			Expect(container.Response(a, b).Handlers()).To(Equal(2))

			Expect(container.Remove(b)).To(BeTrue())
			Expect(container.Pairs()).To(BeZero())
		})

		It("matches through the hierarchy from either side", func() {
			a.AddSymmetric(dynamics.NewSymmetric("splash", water, nil, &dynamics.HandlerFuncs{}))
			b.AddSymmetric(dynamics.NewSymmetric("lake", fluid, nil, &dynamics.HandlerFuncs{}))
			Expect(container.Add(b)).To(Succeed())
			Expect(container.Add(a)).To(Succeed())

			Expect(container.Response(a, b)).NotTo(BeNil())
			Expect(container.Response(a, b).Clients()).To(BeEquivalentTo(1))
		})

		It("notifies only the side that accepts the other", func() {
			var notified []string
			record := func(name string) *dynamics.HandlerFuncs {
				return &dynamics.HandlerFuncs{Intermediate: func(dynamics.Contact) { notified = append(notified, name) }}
			}
			a.AddSymmetric(dynamics.NewSymmetric("splash", water, nil, record("splash")))
			b.AddSymmetric(dynamics.NewSymmetric("stone", rock, water, record("stone")))
			Expect(container.Add(a)).To(Succeed())
			Expect(container.Add(b)).To(Succeed())

			container.Response(a, b).NotifyIntermediateRegionCollision(0)
			Expect(notified).To(Equal([]string{"stone"}))
		})

		It("ignores unrelated kinds", func() {
			a.AddSymmetric(dynamics.NewSymmetric("hull", ship, nil, &dynamics.HandlerFuncs{}))
			b.AddSymmetric(dynamics.NewSymmetric("stone", rock, nil, &dynamics.HandlerFuncs{}))
			Expect(container.Add(a)).To(Succeed())
			Expect(container.Add(b)).To(Succeed())

			Expect(container.Pairs()).To(BeZero())
		})
	})

	Describe("driven by the attacher", func() {
		It("delivers crossings to the receiver", func() {
			queue := events.NewQueue(0)
			att := attacher.New(queue, pairs, collision.NewAdvancement())

			moving := dynamics.NewBody(kinematics.NewBody[kinematics.Mapper](geom.NewPoint(mgl32.Vec2{}),
				kinematics.NewTranslation(kinematics.NewLinear(0, mgl32.Vec2{2, 0}, mgl32.Vec2{-1, 0}))))
			moving.AddTransmitter(dynamics.NewTransmitter("shot", bullet))

			var hits []float32
			target := pointAt(0)
			target.AddReceiver(dynamics.NewReceiver("hull", projectile, &dynamics.HandlerFuncs{
				Lower: func(c dynamics.Contact) bool {
					hits = append(hits, c.Time)
					return false
				},
			}))
			Expect(container.Add(target)).To(Succeed())
			Expect(container.Add(moving)).To(Succeed())

			queue.At(5, nil)
			att.Attach()
			for queue.Step() {
				if queue.CurrentTime() >= 5 {
					att.Detach()
				}
			}

			Expect(hits).To(HaveLen(1))
			Expect(hits[0]).To(BeNumerically("~", 1.855, 1e-3))
		})
	})
})
