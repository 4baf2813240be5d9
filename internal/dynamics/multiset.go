package dynamics

import (
	"iter"
	"slices"
)

// multiset counts occurrences per element and iterates in first-insertion order.
type multiset[T comparable] struct {
	counts map[T]int
	order  []T
}

func newMultiset[T comparable]() *multiset[T] {
	return &multiset[T]{counts: make(map[T]int)}
}

// add reports whether x was absent before.
func (m *multiset[T]) add(x T) bool {
	m.counts[x]++
	if m.counts[x] == 1 {
		m.order = append(m.order, x)
		return true
	}
	return false
}

// remove reports whether the last occurrence of x was removed. Removing an
// absent element is a no-op.
func (m *multiset[T]) remove(x T) bool {
	n, ok := m.counts[x]
	if !ok {
		return false
	}
	if n > 1 {
		m.counts[x] = n - 1
		return false
	}
	delete(m.counts, x)
	m.order = slices.DeleteFunc(m.order, func(y T) bool { return y == x })
	return true
}

func (m *multiset[T]) count(x T) int { return m.counts[x] }

func (m *multiset[T]) len() int { return len(m.order) }

func (m *multiset[T]) all() iter.Seq2[T, int] {
	return func(yield func(T, int) bool) {
		for _, x := range m.order {
			if !yield(x, m.counts[x]) {
				return
			}
		}
	}
}
