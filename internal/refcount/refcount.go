// Package refcount provides a checked reference counter. Overflow and
// underflow indicate a bug in the caller and panic.
package refcount

import (
	"errors"
	"math"
)

var (
	ErrOverflow  = errors.New("refcount: counter overflow")
	ErrUnderflow = errors.New("refcount: counter underflow")
)

// Count is the number of live references. The zero value is empty.
type Count struct {
	n uint32
}

// Inc adds a reference and reports whether it was the first one.
func (c *Count) Inc() bool {
	if c.n == math.MaxUint32 {
		panic(ErrOverflow)
	}
	c.n++
	return c.n == 1
}

// Dec drops a reference and reports whether the counter is now empty.
func (c *Count) Dec() bool {
	if c.n == 0 {
		panic(ErrUnderflow)
	}
	c.n--
	return c.n == 0
}

func (c *Count) Empty() bool { return c.n == 0 }

func (c *Count) Value() uint32 { return c.n }
