package dynamics

import "iter"

type (
	transmitterFamily struct{}
	symmetricFamily   struct{}
)

// Kind is a node in a statically declared component hierarchy. A kind
// matches itself and every kind declared below it.
type Kind[F any] struct {
	name     string
	parent   *Kind[F]
	children []*Kind[F]
}

// TransmitterKind classifies transmitter components. Receivers accept a
// transmitter kind and match every transmitter of that kind or below.
type TransmitterKind = Kind[transmitterFamily]

// SymmetricKind classifies symmetric components.
type SymmetricKind = Kind[symmetricFamily]

func NewTransmitterKind(name string, parent *TransmitterKind) *TransmitterKind {
	return newKind(name, parent)
}

func NewSymmetricKind(name string, parent *SymmetricKind) *SymmetricKind {
	return newKind(name, parent)
}

func newKind[F any](name string, parent *Kind[F]) *Kind[F] {
	k := &Kind[F]{name: name, parent: parent}
	if parent != nil {
		parent.children = append(parent.children, k)
	}
	return k
}

func (k *Kind[F]) Name() string { return k.name }

func (k *Kind[F]) Parent() *Kind[F] { return k.parent }

// IsA reports whether k is other or declared below it.
func (k *Kind[F]) IsA(other *Kind[F]) bool {
	for a := range k.Ancestors() {
		if a == other {
			return true
		}
	}
	return false
}

// Ancestors yields k and then each parent up to the root.
func (k *Kind[F]) Ancestors() iter.Seq[*Kind[F]] {
	return func(yield func(*Kind[F]) bool) {
		for a := k; a != nil; a = a.parent {
			if !yield(a) {
				return
			}
		}
	}
}

// Descendants yields k and every kind below it, depth first.
func (k *Kind[F]) Descendants() iter.Seq[*Kind[F]] {
	return func(yield func(*Kind[F]) bool) {
		k.walk(yield)
	}
}

func (k *Kind[F]) walk(yield func(*Kind[F]) bool) bool {
	if !yield(k) {
		return false
	}
	for _, c := range k.children {
		if !c.walk(yield) {
			return false
		}
	}
	return true
}

func (k *Kind[F]) String() string {
	if k == nil {
		return "<nil>"
	}
	if k.parent == nil {
		return k.name
	}
	return k.parent.String() + "/" + k.name
}
