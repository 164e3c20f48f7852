package slotecs

import (
	"maps"
	"reflect"
)

// Prefab is an immutable template for entities: which component types they
// start with and, optionally, the value each component takes the first time
// it is read. A prefab belongs to the universe that built it, since bit
// positions are type-indices of that universe.
type Prefab struct {
	owner    *registry
	bits     bitset
	defaults map[reflect.Type]any
}

// HasIndex reports whether the prefab declares the component at typeIndex.
func (p *Prefab) HasIndex(typeIndex int) bool { return p.bits.test(typeIndex) }

// Len returns the number of component types the prefab declares.
func (p *Prefab) Len() int { return p.bits.count() }

// DefaultOf returns the default value p declares for T, or the zero value of
// T when p has no default for it.
func DefaultOf[T any](p *Prefab) T {
	if p != nil {
		if v, ok := p.defaults[reflect.TypeFor[T]()]; ok {
			return v.(T)
		}
	}
	var zero T
	return zero
}

// Declares reports whether p declares component type T. Types never
// registered in p's universe are never declared.
func Declares[T any](p *Prefab) bool {
	if p == nil {
		return false
	}
	id, ok := p.owner.lookup(reflect.TypeFor[T]())
	return ok && p.bits.test(id)
}

// PrefabBuilder accumulates component types and defaults for a Prefab. Build
// snapshots the current state, so the builder can keep being modified and
// reused afterwards.
type PrefabBuilder struct {
	owner    *registry
	bits     bitset
	defaults map[reflect.Type]any
}

func newPrefabBuilder(owner *registry) *PrefabBuilder {
	return &PrefabBuilder{
		owner:    owner,
		bits:     newBitset(bitsPerWord),
		defaults: make(map[reflect.Type]any),
	}
}

// WithComponent declares T on the builder with v as its default value,
// registering T in the owning universe if it has not been seen yet.
func WithComponent[T any](b *PrefabBuilder, v T) *PrefabBuilder {
	t := reflect.TypeFor[T]()
	b.bits.set(b.owner.indexOf(t))
	b.defaults[t] = v
	return b
}

// WithFactory declares T with the value returned by fn as its default. fn is
// called once, immediately.
func WithFactory[T any](b *PrefabBuilder, fn func() T) *PrefabBuilder {
	return WithComponent(b, fn())
}

// WithZero declares T with its zero value as default.
func WithZero[T any](b *PrefabBuilder) *PrefabBuilder {
	var zero T
	return WithComponent(b, zero)
}

// Build returns a Prefab holding a copy of the builder's current state.
func (b *PrefabBuilder) Build() *Prefab {
	return &Prefab{
		owner:    b.owner,
		bits:     b.bits.clone(),
		defaults: maps.Clone(b.defaults),
	}
}
