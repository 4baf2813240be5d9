package ecs

import (
	"github.com/san-kum/collide/internal/attacher"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// CrossingEvent is a crossing flattened to body identifiers.
type CrossingEvent struct {
	Time     float32
	Kind     attacher.Kind
	A, B     uint64
	Distance float32
}

// CrossingEventType is the Donburi event type carrying crossings.
var CrossingEventType = events.NewEventType[CrossingEvent]()

type publisher struct {
	world donburi.World
}

// NewPublisher creates an attacher observer that queues every crossing on world.
func NewPublisher(world donburi.World) attacher.Observer {
	return &publisher{world: world}
}

func (p *publisher) OnCrossing(c attacher.Crossing) {
	a, b := c.Pair.Bodies()
	CrossingEventType.Publish(p.world, CrossingEvent{
		Time:     c.Time,
		Kind:     c.Kind,
		A:        a.ID(),
		B:        b.ID(),
		Distance: c.Distance,
	})
}

// Tally counts crossing events per kind as the world processes them.
type Tally struct {
	counts [3]int
}

// NewTally subscribes a counter to the crossing events of world.
func NewTally(world donburi.World) *Tally {
	t := &Tally{}
	CrossingEventType.Subscribe(world, func(_ donburi.World, e CrossingEvent) {
		if e.Kind >= attacher.Upper && e.Kind <= attacher.Lower {
			t.counts[e.Kind]++
		}
	})
	return t
}

func (t *Tally) Count(k attacher.Kind) int {
	if k < attacher.Upper || k > attacher.Lower {
		return 0
	}
	return t.counts[k]
}

func (t *Tally) Total() int {
	return t.counts[0] + t.counts[1] + t.counts[2]
}
