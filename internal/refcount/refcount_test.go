package refcount

import (
	"errors"
	"math"
	"testing"
)

func TestCount(t *testing.T) {
	var c Count
	if !c.Empty() {
		t.Fatal("zero value should be empty")
	}
	if !c.Inc() {
		t.Error("first Inc should report first reference")
	}
	if c.Inc() {
		t.Error("second Inc should not report first reference")
	}
	if c.Dec() {
		t.Error("counter should not be empty after one Dec")
	}
	if !c.Dec() {
		t.Error("counter should be empty after matching Decs")
	}
}

func TestUnderflowPanics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrUnderflow) {
			t.Errorf("expected ErrUnderflow panic, got %v", r)
		}
	}()
	var c Count
	c.Dec()
}

func TestOverflowPanics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrOverflow) {
			t.Errorf("expected ErrOverflow panic, got %v", r)
		}
	}()
	c := Count{n: math.MaxUint32}
	c.Inc()
}
