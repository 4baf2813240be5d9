// Package metrics summarizes the crossings reported by an attacher.
package metrics

import "github.com/san-kum/collide/internal/attacher"

// Metric accumulates crossings into a single value.
type Metric interface {
	Name() string
	Observe(c attacher.Crossing)
	Value() float64
	Reset()
}

// Observer feeds every crossing to ms.
func Observer(ms ...Metric) attacher.Observer {
	return attacher.ObserverFunc(func(c attacher.Crossing) {
		for _, m := range ms {
			m.Observe(c)
		}
	})
}

// Defaults returns the metrics recorded for every scenario run.
func Defaults() []Metric {
	return []Metric{
		NewCrossings(nil),
		NewCrossings(kindPtr(attacher.Upper)),
		NewCrossings(kindPtr(attacher.Intermediate)),
		NewCrossings(kindPtr(attacher.Lower)),
		NewFirstContact(),
		NewPairs(),
	}
}

// Collect returns the current value of every metric keyed by name.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

func kindPtr(k attacher.Kind) *attacher.Kind { return &k }
