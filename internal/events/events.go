// Package events provides the temporal events manager driving the collision
// attacher: a min-time queue of one-shot callbacks that owns the current time.
package events

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
)

// ErrPastEvent indicates an event scheduled before the current time.
var ErrPastEvent = errors.New("events: event scheduled in the past")

// Event is a one-shot callback fired at Time.
type Event struct {
	Time float32
	Fire func()
}

// Manager is the scheduler contract consumed by the attacher. Events fire in
// non-decreasing time order and the manager owns the current time.
type Manager interface {
	AddEvent(e Event)
	CurrentTime() float32
	// NearestEventTime is only meaningful when RemainingEvents is true.
	NearestEventTime() float32
	RemainingEvents() bool
}

type entry struct {
	Event
	seq uint64
}

type eventHeap []entry

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].Time != h[j].Time {
		return h[i].Time < h[j].Time
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) { *h = append(*h, x.(entry)) }

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// Queue is a Manager backed by a binary heap. Events sharing a time fire in
// insertion order.
type Queue struct {
	now   float32
	seq   uint64
	items eventHeap
	fired int
}

var _ Manager = (*Queue)(nil)

func NewQueue(start float32) *Queue {
	return &Queue{now: start}
}

// AddEvent panics with ErrPastEvent when e.Time is before the current time.
func (q *Queue) AddEvent(e Event) {
	if e.Time < q.now {
		panic(fmt.Errorf("%w: %v < %v", ErrPastEvent, e.Time, q.now))
	}
	q.seq++
	heap.Push(&q.items, entry{Event: e, seq: q.seq})
}

// At schedules fn at time t.
func (q *Queue) At(t float32, fn func()) {
	q.AddEvent(Event{Time: t, Fire: fn})
}

func (q *Queue) CurrentTime() float32 { return q.now }

func (q *Queue) NearestEventTime() float32 {
	if len(q.items) == 0 {
		return q.now
	}
	return q.items[0].Time
}

func (q *Queue) RemainingEvents() bool { return len(q.items) > 0 }

func (q *Queue) Len() int { return len(q.items) }

// Fired returns the number of events fired so far.
func (q *Queue) Fired() int { return q.fired }

// Step pops the nearest event, advances the clock to it and fires it.
// It reports false when the queue is empty.
func (q *Queue) Step() bool {
	if len(q.items) == 0 {
		return false
	}
	e := heap.Pop(&q.items).(entry)
	q.now = e.Time
	q.fired++
	if e.Fire != nil {
		e.Fire()
	}
	return true
}

// RunUntil fires every event up to and including time end, checking ctx
// between events.
func (q *Queue) RunUntil(ctx context.Context, end float32) error {
	for len(q.items) > 0 && q.items[0].Time <= end {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		q.Step()
	}
	return nil
}
