package slotecs

import (
	"reflect"

	"github.com/rotisserie/eris"
)

// componentStore is the type-erased view of a Storage the universe needs for
// snapshots and logging.
type componentStore interface {
	copyOut(b *Base) (any, bool)
	componentType() reflect.Type
	reserve(n int)
}

// Storage holds every value of one component type T in one universe. Values
// live in an array indexed directly by entity slot; it is not packed, and
// removing entities or components never moves other values.
//
// Presence is decided by the entity's bits alone. A set bit whose slot has
// not been written since the entity was admitted is materialized on first
// Get, from the entity's prefab default when it has one and from the zero
// value of T otherwise. Each written slot is stamped with the admission
// number of the entity that wrote it, so values left behind by a removed
// entity are never mistaken for the next occupant's.
//
// Pointers returned by Get, Put and PutZero point into the backing array. Any
// later Put for another entity may grow and reallocate that array, after
// which the old pointer refers to a stale copy and writes through it are
// lost. Do not keep such a pointer across another mutating call on the same
// storage; use Handle when a longer-lived reference is needed.
type Storage[E Entity, T any] struct {
	universe *Universe[E]
	index    int
	items    []T
	stamps   []uint64 // admission stamp per slot, 0 when not materialized
}

func newStorage[E Entity, T any](u *Universe[E], index int) *Storage[E, T] {
	return &Storage[E, T]{universe: u, index: index}
}

// Universe returns the universe this storage belongs to.
func (s *Storage[E, T]) Universe() *Universe[E] { return s.universe }

// TypeIndex returns the type-index of T in the storage's universe.
func (s *Storage[E, T]) TypeIndex() int { return s.index }

// Has reports whether e has a T.
func (s *Storage[E, T]) Has(e E) (bool, error) {
	b := e.entityBase()
	if err := b.belongsTo(s.universe.reg); err != nil {
		return false, err
	}
	return b.bits.test(s.index), nil
}

// Get returns a pointer to e's T, materializing its default value on first
// access. It fails with ErrComponentAbsent when e has no T. See the Storage
// documentation for how long the pointer stays valid.
func (s *Storage[E, T]) Get(e E) (*T, error) {
	b := e.entityBase()
	if err := b.belongsTo(s.universe.reg); err != nil {
		return nil, err
	}
	if !b.bits.test(s.index) {
		return nil, eris.Wrapf(ErrComponentAbsent, "slot %d, component %s", b.slot, reflect.TypeFor[T]())
	}
	return s.get(b), nil
}

// get resolves b's slot, materializing it if needed. b must be a member of
// the storage's universe with the bit set.
func (s *Storage[E, T]) get(b *Base) *T {
	if !s.isMaterialized(b) {
		s.ensureLen(b.slot + 1)
		s.items[b.slot] = DefaultOf[T](b.prefab)
		s.stamps[b.slot] = b.admission
	}
	return &s.items[b.slot]
}

// TryGetCopy returns a copy of e's T and true, or the zero value and false
// when e has no T.
func (s *Storage[E, T]) TryGetCopy(e E) (T, bool, error) {
	var zero T
	b := e.entityBase()
	if err := b.belongsTo(s.universe.reg); err != nil {
		return zero, false, err
	}
	if !b.bits.test(s.index) {
		return zero, false, nil
	}
	return *s.get(b), true, nil
}

// Put stores v as e's T, adding the component if e did not have it, and
// returns a pointer to the stored value.
func (s *Storage[E, T]) Put(e E, v T) (*T, error) {
	b := e.entityBase()
	if err := b.belongsTo(s.universe.reg); err != nil {
		return nil, err
	}
	s.ensureLen(b.slot + 1)
	s.items[b.slot] = v
	s.stamps[b.slot] = b.admission
	b.bits.set(s.index)
	return &s.items[b.slot], nil
}

// PutZero stores the zero value of T as e's T.
func (s *Storage[E, T]) PutZero(e E) (*T, error) {
	var zero T
	return s.Put(e, zero)
}

// Remove deletes e's T. Removing an absent component is a no-op.
func (s *Storage[E, T]) Remove(e E) error {
	b := e.entityBase()
	if err := b.belongsTo(s.universe.reg); err != nil {
		return err
	}
	if !b.bits.test(s.index) {
		return nil
	}
	b.bits.unset(s.index)
	if s.isMaterialized(b) {
		var zero T
		s.items[b.slot] = zero
		s.stamps[b.slot] = 0
	}
	return nil
}

// Handle returns a reference to e's T that looks the value up again on every
// call, so it stays valid across growth of the storage.
func (s *Storage[E, T]) Handle(e E) Ref[E, T] {
	return Ref[E, T]{storage: s, entity: e}
}

func (s *Storage[E, T]) copyOut(b *Base) (any, bool) {
	if b.owner != s.universe.reg || !b.bits.test(s.index) {
		return nil, false
	}
	return *s.get(b), true
}

func (s *Storage[E, T]) componentType() reflect.Type {
	return reflect.TypeFor[T]()
}

// isMaterialized reports whether b's slot holds a value written during b's
// current admission.
func (s *Storage[E, T]) isMaterialized(b *Base) bool {
	return b.slot < len(s.stamps) && s.stamps[b.slot] == b.admission
}

// reserve pre-sizes the backing array for n slots once the storage holds data.
func (s *Storage[E, T]) reserve(n int) {
	if len(s.items) == 0 || n <= len(s.items) {
		return
	}
	s.ensureLen(n)
}

// ensureLen grows the backing array to at least n slots.
func (s *Storage[E, T]) ensureLen(n int) {
	if n <= len(s.items) {
		return
	}
	size := grownLen(len(s.items), n)
	items := make([]T, size)
	copy(items, s.items)
	stamps := make([]uint64, size)
	copy(stamps, s.stamps)
	s.items = items
	s.stamps = stamps
}

// Ref is a re-resolving reference to one entity's component. Unlike the
// pointers returned by Storage.Get, a Ref may be kept across mutations of the
// storage; each Get is a fresh lookup.
type Ref[E Entity, T any] struct {
	storage *Storage[E, T]
	entity  E
}

// Get returns a pointer to the current value. The pointer itself follows the
// same rules as Storage.Get.
func (r Ref[E, T]) Get() (*T, error) {
	return r.storage.Get(r.entity)
}

// Set overwrites the referenced component.
func (r Ref[E, T]) Set(v T) error {
	_, err := r.storage.Put(r.entity, v)
	return err
}

// Valid reports whether the entity still has the component.
func (r Ref[E, T]) Valid() bool {
	ok, err := r.storage.Has(r.entity)
	return err == nil && ok
}
