package dynamics

import (
	"fmt"
	"slices"

	"github.com/san-kum/collide/internal/kinematics"
)

// Body attaches components to a kinematic body. It belongs to at most one
// Container; components added or removed while it is in a container update
// the container's pairs immediately.
type Body struct {
	kin kinematics.Kinematic

	transmitters []*TransmitterComponent
	receivers    []*ReceiverComponent
	symmetrics   []*SymmetricComponent

	container *Container
}

func NewBody(k kinematics.Kinematic) *Body {
	return &Body{kin: k}
}

func (b *Body) Kinematic() kinematics.Kinematic { return b.kin }

func (b *Body) Container() *Container { return b.container }

func (b *Body) String() string {
	if b.kin == nil {
		return "body(nil)"
	}
	if n, ok := b.kin.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("body#%d", b.kin.ID())
}

func (b *Body) Transmitters() []*TransmitterComponent { return slices.Clone(b.transmitters) }

func (b *Body) Receivers() []*ReceiverComponent { return slices.Clone(b.receivers) }

func (b *Body) Symmetrics() []*SymmetricComponent { return slices.Clone(b.symmetrics) }

// AddTransmitter reports false when c is nil or already on b.
func (b *Body) AddTransmitter(c *TransmitterComponent) bool {
	if c == nil || slices.Contains(b.transmitters, c) {
		return false
	}
	b.transmitters = append(b.transmitters, c)
	if b.container != nil {
		b.container.addTransmitter(b, c)
	}
	return true
}

func (b *Body) RemoveTransmitter(c *TransmitterComponent) bool {
	i := slices.Index(b.transmitters, c)
	if i < 0 {
		return false
	}
	b.transmitters = slices.Delete(b.transmitters, i, i+1)
	if b.container != nil {
		b.container.removeTransmitter(b, c)
	}
	return true
}

func (b *Body) AddReceiver(c *ReceiverComponent) bool {
	if c == nil || slices.Contains(b.receivers, c) {
		return false
	}
	b.receivers = append(b.receivers, c)
	if b.container != nil {
		b.container.addReceiver(b, c)
	}
	return true
}

func (b *Body) RemoveReceiver(c *ReceiverComponent) bool {
	i := slices.Index(b.receivers, c)
	if i < 0 {
		return false
	}
	b.receivers = slices.Delete(b.receivers, i, i+1)
	if b.container != nil {
		b.container.removeReceiver(b, c)
	}
	return true
}

func (b *Body) AddSymmetric(c *SymmetricComponent) bool {
	if c == nil || slices.Contains(b.symmetrics, c) {
		return false
	}
	b.symmetrics = append(b.symmetrics, c)
	if b.container != nil {
		b.container.addSymmetric(b, c)
	}
	return true
}

func (b *Body) RemoveSymmetric(c *SymmetricComponent) bool {
	i := slices.Index(b.symmetrics, c)
	if i < 0 {
		return false
	}
	b.symmetrics = slices.Delete(b.symmetrics, i, i+1)
	if b.container != nil {
		b.container.removeSymmetric(b, c)
	}
	return true
}
