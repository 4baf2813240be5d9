package dynamics

import (
	"slices"
	"testing"
)

func TestKindHierarchy(t *testing.T) {
	projectile := NewTransmitterKind("projectile", nil)
	bullet := NewTransmitterKind("bullet", projectile)
	rocket := NewTransmitterKind("rocket", projectile)
	tracer := NewTransmitterKind("tracer", bullet)

	tests := []struct {
		k, of *TransmitterKind
		want  bool
	}{
		{bullet, bullet, true},
		{bullet, projectile, true},
		{tracer, projectile, true},
		{projectile, bullet, false},
		{rocket, bullet, false},
		{tracer, rocket, false},
	}
	for _, tt := range tests {
		if got := tt.k.IsA(tt.of); got != tt.want {
			t.Errorf("%s.IsA(%s) = %v, want %v", tt.k, tt.of, got, tt.want)
		}
	}

	var names []string
	for k := range projectile.Descendants() {
		names = append(names, k.Name())
	}
	if !slices.Equal(names, []string{"projectile", "bullet", "tracer", "rocket"}) {
		t.Errorf("unexpected descendants %v", names)
	}

	names = names[:0]
	for k := range tracer.Ancestors() {
		names = append(names, k.Name())
	}
	if !slices.Equal(names, []string{"tracer", "bullet", "projectile"}) {
		t.Errorf("unexpected ancestors %v", names)
	}

	if tracer.String() != "projectile/bullet/tracer" {
		t.Errorf("unexpected path %q", tracer.String())
	}
}

func TestSymmetricMatching(t *testing.T) {
	fluid := NewSymmetricKind("fluid", nil)
	water := NewSymmetricKind("water", fluid)
	rock := NewSymmetricKind("rock", nil)

	wet := NewSymmetric("wet", water, nil, nil)
	pool := NewSymmetric("pool", fluid, nil, nil)
	stone := NewSymmetric("stone", rock, water, nil)
	pebble := NewSymmetric("pebble", rock, nil, nil)

	tests := []struct {
		name string
		a, b *SymmetricComponent
		want bool
	}{
		{"same kind", wet, wet, true},
		{"accepts descendant", pool, wet, true},
		{"one-sided", wet, stone, true},
		{"unrelated", wet, pebble, false},
		{"accepting side only", stone, pebble, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Matches(tt.b); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
			if got := tt.b.Matches(tt.a); got != tt.want {
				t.Errorf("Matches is not symmetric: %v", got)
			}
		})
	}
}

func TestComponentsNeedKinds(t *testing.T) {
	defer func() {
		if r := recover(); r != ErrNilKind {
			t.Errorf("expected ErrNilKind panic, got %v", r)
		}
	}()
	NewTransmitter("x", nil)
}
