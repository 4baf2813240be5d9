package metrics

import (
	"github.com/san-kum/collide/internal/attacher"
	"github.com/san-kum/collide/internal/collision"
)

// Crossings counts crossings, optionally of one kind only.
type Crossings struct {
	name  string
	kind  *attacher.Kind
	count int
}

// NewCrossings counts crossings of kind, or all crossings when kind is nil.
func NewCrossings(kind *attacher.Kind) *Crossings {
	name := "crossings"
	if kind != nil {
		name += "_" + kind.String()
	}
	return &Crossings{name: name, kind: kind}
}

func (m *Crossings) Name() string { return m.name }

func (m *Crossings) Observe(c attacher.Crossing) {
	if m.kind == nil || *m.kind == c.Kind {
		m.count++
	}
}

func (m *Crossings) Value() float64 { return float64(m.count) }

func (m *Crossings) Reset() { m.count = 0 }

// FirstContact is the time of the first lower boundary crossing, or -1.
type FirstContact struct {
	name string
	seen bool
	at   float32
}

func NewFirstContact() *FirstContact {
	return &FirstContact{name: "first_contact"}
}

func (m *FirstContact) Name() string { return m.name }

func (m *FirstContact) Observe(c attacher.Crossing) {
	if c.Kind != attacher.Lower {
		return
	}
	if !m.seen || c.Time < m.at {
		m.seen, m.at = true, c.Time
	}
}

func (m *FirstContact) Value() float64 {
	if !m.seen {
		return -1
	}
	return float64(m.at)
}

func (m *FirstContact) Reset() { m.seen, m.at = false, 0 }

// Pairs counts the distinct pairs that crossed at least one band.
type Pairs struct {
	name string
	seen map[*collision.Pair]bool
}

func NewPairs() *Pairs {
	return &Pairs{name: "pairs", seen: make(map[*collision.Pair]bool)}
}

func (m *Pairs) Name() string { return m.name }

func (m *Pairs) Observe(c attacher.Crossing) {
	if c.Pair != nil {
		m.seen[c.Pair] = true
	}
}

func (m *Pairs) Value() float64 { return float64(len(m.seen)) }

func (m *Pairs) Reset() { clear(m.seen) }
