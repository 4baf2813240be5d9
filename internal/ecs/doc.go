// Package ecs bridges attacher crossings into a [Donburi] world.
//
// [NewPublisher] returns an attacher observer that publishes every crossing
// as a [CrossingEvent]. Systems subscribe to [CrossingEventType] and receive
// the queued events when the world processes them.
//
//	att := attacher.New(queue, pairs, detector, attacher.WithObserver(ecs.NewPublisher(world)))
//	ecs.CrossingEventType.Subscribe(world, onCrossing)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
