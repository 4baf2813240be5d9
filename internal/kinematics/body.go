package kinematics

import (
	"fmt"
	"sync/atomic"

	"github.com/san-kum/collide/internal/geom"
	"github.com/san-kum/collide/internal/refcount"
)

// ChangeListener is notified when a body's shape or mapper changes.
type ChangeListener interface {
	NotifyChange(b Kinematic)
}

// Kinematic is the view of a body used by collision containers and detectors.
type Kinematic interface {
	ID() uint64
	InstantShape(t float32) geom.Shape
	ShapeWithBoundingPerimeter(iv geom.Interval) geom.Shape
	BoundingRegion(iv geom.Interval) geom.Shape
	MaxDistanceTraveled(iv geom.Interval) float32
	StartTime() float32
	IsComplete() bool

	Container() ChangeListener
	AttachContainer(c ChangeListener) error
	DetachContainer(c ChangeListener) error
}

var lastID atomic.Uint64

// Body owns one shape and one mapper of type M.
type Body[M Mapper] struct {
	id     uint64
	name   string
	shape  geom.Shape
	mapper M

	container ChangeListener
	refs      refcount.Count
}

// NewBody creates a body; either argument may be nil, leaving it incomplete.
func NewBody[M Mapper](shape geom.Shape, mapper M) *Body[M] {
	b := &Body[M]{id: lastID.Add(1), shape: shape}
	b.SetMapper(mapper)
	return b
}

func (b *Body[M]) ID() uint64 { return b.id }

// Name is an optional label used in logs and reports.
func (b *Body[M]) Name() string {
	if b.name == "" {
		return fmt.Sprintf("body#%d", b.id)
	}
	return b.name
}

func (b *Body[M]) SetName(name string) { b.name = name }

func (b *Body[M]) Shape() geom.Shape { return b.shape }

func (b *Body[M]) Mapper() M { return b.mapper }

// SetShape swaps the shape and notifies the attached container.
func (b *Body[M]) SetShape(s geom.Shape) {
	b.shape = s
	b.notifyChange()
}

// SetMapper swaps the mapper and notifies the attached container. A Mirror
// mapper reports delegate swaps through the same path.
func (b *Body[M]) SetMapper(m M) {
	if mr, ok := Mapper(b.mapper).(*Mirror); ok && !isNil(mr) {
		mr.OnSwap(nil)
	}
	b.mapper = m
	if mr, ok := Mapper(m).(*Mirror); ok && !isNil(mr) {
		mr.OnSwap(b.notifyChange)
	}
	b.notifyChange()
}

func (b *Body[M]) IsComplete() bool {
	return b.shape != nil && !isNil(b.mapper)
}

func (b *Body[M]) InstantShape(t float32) geom.Shape {
	return b.shape.Transform(b.mapper.InstantTransform(t))
}

func (b *Body[M]) ShapeWithBoundingPerimeter(iv geom.Interval) geom.Shape {
	return b.mapper.ShapeWithBoundingPerimeter(b.shape, iv)
}

func (b *Body[M]) BoundingRegion(iv geom.Interval) geom.Shape {
	return b.mapper.BoundingRegion(b.shape, iv)
}

func (b *Body[M]) MaxDistanceTraveled(iv geom.Interval) float32 {
	return b.mapper.MaxDistanceTraveled(b.shape, iv)
}

func (b *Body[M]) StartTime() float32 {
	return b.mapper.StartTime()
}

func (b *Body[M]) Container() ChangeListener { return b.container }

// AttachContainer adds one reference from c. A body holds references from at
// most one container at a time.
func (b *Body[M]) AttachContainer(c ChangeListener) error {
	if c == nil {
		return ErrNilContainer
	}
	if b.container != nil && b.container != c {
		return fmt.Errorf("%w: %s", ErrContainerMismatch, b.Name())
	}
	b.container = c
	b.refs.Inc()
	return nil
}

// DetachContainer drops one reference from c, releasing the attachment on the last one.
func (b *Body[M]) DetachContainer(c ChangeListener) error {
	if c == nil {
		return ErrNilContainer
	}
	if b.container != c || b.refs.Empty() {
		return fmt.Errorf("%w: %s", ErrNotAttached, b.Name())
	}
	if b.refs.Dec() {
		b.container = nil
	}
	return nil
}

// Attachments returns the number of references held by the current container.
func (b *Body[M]) Attachments() uint32 { return b.refs.Value() }

func (b *Body[M]) notifyChange() {
	if b.container != nil {
		b.container.NotifyChange(b)
	}
}
