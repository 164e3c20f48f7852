// Package slotecs is a small entity/component storage engine. Entities are
// caller-defined structs embedding Base; components are plain value types
// stored in per-type arrays addressed directly by the entity's slot.
package slotecs

import "github.com/rotisserie/eris"

// Entity is implemented by any pointer to a struct that embeds Base:
//
//	type Ship struct {
//		slotecs.Base
//		Name string
//	}
//
// *Ship then satisfies Entity and can be stored in a Universe[*Ship].
type Entity interface {
	entityBase() *Base
}

// Initializer is implemented by entities that want to run setup once they
// have been admitted to a universe. OnInitialize is called after the slot and
// universe are assigned and before AddEntity returns. It must not remove or
// re-add the entity.
type Initializer interface {
	OnInitialize()
}

// Base carries the identity and component presence of an entity. The zero
// value is an unattached entity without a prefab.
type Base struct {
	owner     *registry
	slot      int
	admission uint64 // non-zero while attached, unique per admission
	bits      bitset
	prefab    *Prefab
}

// FromPrefab returns a Base whose components are declared by p. Component
// values are not copied here; each one is materialized from p's defaults the
// first time it is read.
func FromPrefab(p *Prefab) Base {
	if p == nil {
		return Base{}
	}
	return Base{bits: p.bits.clone(), prefab: p}
}

func (b *Base) entityBase() *Base { return b }

// Slot returns the slot assigned by the owning universe, or -1 when the
// entity is not attached.
func (b *Base) Slot() int {
	if b.owner == nil {
		return -1
	}
	return b.slot
}

// Attached reports whether the entity currently belongs to a universe.
func (b *Base) Attached() bool { return b.owner != nil }

// Prefab returns the prefab the entity was constructed from, if any.
func (b *Base) Prefab() *Prefab { return b.prefab }

// HasIndex reports whether the presence bit for typeIndex is set.
func (b *Base) HasIndex(typeIndex int) bool { return b.bits.test(typeIndex) }

// ComponentCount returns the number of component types currently present.
func (b *Base) ComponentCount() int { return b.bits.count() }

func (b *Base) initialize(owner *registry, slot int, admission uint64) error {
	if err := b.checkPrefab(owner); err != nil {
		return err
	}
	b.owner = owner
	b.slot = slot
	b.admission = admission
	return nil
}

func (b *Base) checkPrefab(owner *registry) error {
	if b.prefab != nil && b.prefab.owner != owner {
		return eris.Wrap(ErrCrossUniverse, "prefab must belong to the same universe as the entity")
	}
	return nil
}

// uninitialize detaches b and resets its presence bits to what it was
// constructed with. Type-indices are local to a universe, so bits set while
// attached mean nothing once the entity leaves it.
func (b *Base) uninitialize() {
	b.owner = nil
	b.slot = -1
	b.admission = 0
	if b.prefab != nil {
		b.bits = b.prefab.bits.clone()
	} else {
		b.bits = nil
	}
}

// belongsTo checks that b is attached to owner.
func (b *Base) belongsTo(owner *registry) error {
	switch b.owner {
	case owner:
		return nil
	case nil:
		return eris.Wrap(ErrNotAttached, "entity is not attached")
	default:
		return eris.Wrap(ErrCrossUniverse, "entity is attached to another universe")
	}
}

// UniverseOf returns the universe e currently belongs to.
func UniverseOf[E Entity](e E) (*Universe[E], error) {
	b := e.entityBase()
	if b.owner == nil {
		return nil, eris.Wrap(ErrNotAttached, "entity is not attached")
	}
	u, ok := b.owner.universe.(*Universe[E])
	if !ok {
		// e is attached to a universe of a different entity type
		return nil, eris.Wrap(ErrCrossUniverse, "entity is attached to a universe of another entity type")
	}
	return u, nil
}

// Attach puts v on e through e's universe, overwriting any existing value of
// the same type. Prefer keeping the Storage from GetAccessor when attaching
// the same type repeatedly.
func Attach[T any, E Entity](e E, v T) (*T, error) {
	u, err := UniverseOf(e)
	if err != nil {
		return nil, eris.Wrap(err, "cannot attach a component to an entity outside a universe")
	}
	return AttachComponent(u, e, v)
}

// AttachZero puts the zero value of T on e.
func AttachZero[T any, E Entity](e E) (*T, error) {
	var zero T
	return Attach(e, zero)
}

// ToPrefab snapshots e's current components and values into a new prefab of
// its universe. This is proportional to the number of registered component
// types and is meant for authoring tools, not per-frame code.
func ToPrefab[E Entity](e E) (*Prefab, error) {
	u, err := UniverseOf(e)
	if err != nil {
		return nil, err
	}
	return u.MakePrefab(e)
}
