package kinematics

import "github.com/san-kum/collide/internal/geom"

// Mirror forwards every call to a swappable delegate. Holders of the Mirror
// keep a stable reference; only its owner is told about swaps.
type Mirror struct {
	delegate Mapper
	onSwap   func()
}

// NewMirror panics on a nil delegate.
func NewMirror(delegate Mapper) *Mirror {
	if isNil(delegate) {
		panic("kinematics: mirror needs a delegate")
	}
	return &Mirror{delegate: delegate}
}

func (m *Mirror) Delegate() Mapper { return m.delegate }

// Set swaps the delegate and notifies the owner.
func (m *Mirror) Set(delegate Mapper) {
	if isNil(delegate) {
		panic("kinematics: mirror needs a delegate")
	}
	if Mapper(m) == delegate {
		panic("kinematics: mirror cannot delegate to itself")
	}
	m.delegate = delegate
	if m.onSwap != nil {
		m.onSwap()
	}
}

// OnSwap registers the owner's swap listener, replacing any previous one.
func (m *Mirror) OnSwap(fn func()) {
	m.onSwap = fn
}

func (m *Mirror) InstantTransform(t float32) geom.Affine {
	return m.delegate.InstantTransform(t)
}

func (m *Mirror) ShapeWithBoundingPerimeter(s geom.Shape, iv geom.Interval) geom.Shape {
	return m.delegate.ShapeWithBoundingPerimeter(s, iv)
}

func (m *Mirror) BoundingRegion(s geom.Shape, iv geom.Interval) geom.Shape {
	return m.delegate.BoundingRegion(s, iv)
}

func (m *Mirror) MaxDistanceTraveled(s geom.Shape, iv geom.Interval) float32 {
	return m.delegate.MaxDistanceTraveled(s, iv)
}

func (m *Mirror) MaxDistanceTraveledWithBound(s geom.Shape, iv geom.Interval, inputBound float32) float32 {
	return m.delegate.MaxDistanceTraveledWithBound(s, iv, inputBound)
}

func (m *Mirror) StartTime() float32 { return m.delegate.StartTime() }

func (m *Mirror) Accept(v Visitor) { v.VisitMirror(m) }

func (*Mirror) sealed() {}
