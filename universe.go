package slotecs

import (
	"iter"
	"reflect"

	"github.com/rotisserie/eris"
)

// Universe is the root of the storage engine: it admits entities, assigns
// their slots from an IndexPool, owns one Storage per component type and
// numbers component types in first-use order. Universes are fully independent
// of each other; type-indices, prefabs and storages of one universe are
// meaningless in another.
//
// A Universe is not safe for concurrent use.
type Universe[E Entity] struct {
	reg        *registry
	pool       *IndexPool
	log        Logger
	entities   []E
	live       bitset
	storages   []componentStore // by type-index; nil until GetAccessor is called
	admissions uint64
	count      int
}

// NewUniverse returns an empty universe for entities of type E.
func NewUniverse[E Entity](opts ...Option) *Universe[E] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	bus := &eventBus{}
	u := &Universe[E]{
		reg:      newRegistry(bus),
		pool:     newIndexPool(o.initialCapacity, bus),
		log:      newLogger(o.logger),
		entities: make([]E, 0, o.initialCapacity),
		live:     newBitset(o.initialCapacity),
		storages: make([]componentStore, 0, 16),
	}
	u.reg.universe = u
	subscribe(bus, u.onPoolResized)
	subscribe(bus, u.onComponentRegistered)
	return u
}

// AddEntity admits e: it borrows a slot, binds e to this universe and then
// calls e.OnInitialize when e implements Initializer. It fails with
// ErrAlreadyAttached when e already belongs to a universe and with
// ErrCrossUniverse when e was built from another universe's prefab.
func (u *Universe[E]) AddEntity(e E) error {
	b := e.entityBase()
	if b.owner != nil {
		return eris.Wrapf(ErrAlreadyAttached, "slot %d", b.slot)
	}
	if err := b.checkPrefab(u.reg); err != nil {
		return err
	}
	slot := u.pool.Borrow()
	u.admissions++
	if err := b.initialize(u.reg, slot, u.admissions); err != nil {
		_ = u.pool.Free(slot)
		return err
	}
	u.entities = growSlice(u.entities, slot+1)
	u.entities[slot] = e
	u.live.set(slot)
	u.count++
	u.log.Trace().Int("slot", slot).Msg("entity added")

	if hook, ok := any(e).(Initializer); ok {
		hook.OnInitialize()
	}
	return nil
}

// AddEntities admits each entity in order, stopping at the first failure.
func (u *Universe[E]) AddEntities(es ...E) error {
	for i, e := range es {
		if err := u.AddEntity(e); err != nil {
			return eris.Wrapf(err, "adding entity %d of %d", i, len(es))
		}
	}
	return nil
}

// RemoveEntity releases e's slot and detaches e from this universe. e's
// presence bits go back to those of its prefab, or to none, so a later
// admission starts fresh. Component values stay in their storages until the
// slot is reused and overwritten.
func (u *Universe[E]) RemoveEntity(e E) error {
	b := e.entityBase()
	if err := b.belongsTo(u.reg); err != nil {
		return eris.Wrap(err, "entity does not belong to this universe")
	}
	slot := b.slot
	if err := u.pool.Free(slot); err != nil {
		return err
	}
	var zero E
	u.entities[slot] = zero
	u.live.unset(slot)
	u.count--
	b.uninitialize()
	u.log.Trace().Int("slot", slot).Msg("entity removed")
	return nil
}

// RemoveEntities removes each entity in order, stopping at the first failure.
func (u *Universe[E]) RemoveEntities(es ...E) error {
	for i, e := range es {
		if err := u.RemoveEntity(e); err != nil {
			return eris.Wrapf(err, "removing entity %d of %d", i, len(es))
		}
	}
	return nil
}

// EntityAt returns the entity currently holding slot.
func (u *Universe[E]) EntityAt(slot int) (E, bool) {
	if !u.live.test(slot) {
		var zero E
		return zero, false
	}
	return u.entities[slot], true
}

// All iterates over live entities in slot order.
func (u *Universe[E]) All() iter.Seq2[int, E] {
	return func(yield func(int, E) bool) {
		for slot, e := range u.entities {
			if !u.live.test(slot) {
				continue
			}
			if !yield(slot, e) {
				return
			}
		}
	}
}

// Len returns the number of entities currently in the universe.
func (u *Universe[E]) Len() int { return u.count }

// Capacity returns the current ceiling of the slot pool.
func (u *Universe[E]) Capacity() int { return u.pool.Ceiling() }

// Reserve raises the slot pool ceiling to at least n so that admitting up to
// n entities does not trigger growth. Storages already holding data are
// pre-sized to match.
func (u *Universe[E]) Reserve(n int) error {
	if n <= u.pool.Ceiling() {
		return nil
	}
	return u.pool.Grow(n)
}

// NumComponentTypes returns how many component types have been registered.
func (u *Universe[E]) NumComponentTypes() int { return u.reg.len() }

// ComponentTypes returns the registered component types in type-index order.
func (u *Universe[E]) ComponentTypes() []reflect.Type {
	out := make([]reflect.Type, u.reg.len())
	copy(out, u.reg.byIndex)
	return out
}

// TypeIndexOf returns the type-index of t if it has been registered.
func (u *Universe[E]) TypeIndexOf(t reflect.Type) (int, bool) {
	return u.reg.lookup(t)
}

// Logger returns the universe's logger.
func (u *Universe[E]) Logger() *Logger { return &u.log }

// NewPrefabBuilder returns an empty builder for prefabs of this universe.
func (u *Universe[E]) NewPrefabBuilder() *PrefabBuilder {
	return newPrefabBuilder(u.reg)
}

// MakePrefab snapshots e's current components, with their current values as
// defaults. This is not the prefab e was built from. Reading every present
// component materializes it, so the cost grows with the number of component
// types; build prefabs ahead of time where possible.
func (u *Universe[E]) MakePrefab(e E) (*Prefab, error) {
	b := e.entityBase()
	if err := b.belongsTo(u.reg); err != nil {
		return nil, err
	}
	bits := b.bits.clone()
	defaults := make(map[reflect.Type]any, bits.count())
	bits.each(func(id int) {
		t, ok := u.reg.typeAt(id)
		if !ok {
			return
		}
		if id < len(u.storages) && u.storages[id] != nil {
			if v, ok := u.storages[id].copyOut(b); ok {
				defaults[t] = v
			}
			return
		}
		// no storage yet: the value is whatever the originating prefab says
		if b.prefab != nil {
			if v, ok := b.prefab.defaults[t]; ok {
				defaults[t] = v
			}
		}
	})
	return &Prefab{owner: u.reg, bits: bits, defaults: defaults}, nil
}

// MakePrefabOf returns a prefab declaring the given component types without
// defaults. Types not seen before are registered.
func (u *Universe[E]) MakePrefabOf(types ...reflect.Type) *Prefab {
	bits := newBitset(u.reg.len() + len(types))
	for _, t := range types {
		if t == nil {
			continue
		}
		bits.set(u.reg.indexOf(t))
	}
	return &Prefab{owner: u.reg, bits: bits}
}

// MakePrefabFromDefaults returns a prefab declaring the dynamic type of each
// component, with the component as its default. Pass component values, not
// pointers to them: the default is looked up by the exact type later asked
// for. A later component of the same type overrides an earlier one.
func (u *Universe[E]) MakePrefabFromDefaults(components ...any) (*Prefab, error) {
	bits := newBitset(u.reg.len() + len(components))
	defaults := make(map[reflect.Type]any, len(components))
	for i, c := range components {
		if c == nil {
			return nil, eris.Wrapf(ErrNilComponent, "component %d", i)
		}
		t := reflect.TypeOf(c)
		bits.set(u.reg.indexOf(t))
		defaults[t] = c
	}
	return &Prefab{owner: u.reg, bits: bits, defaults: defaults}, nil
}

func (u *Universe[E]) onPoolResized(ev PoolResized) {
	u.log.Debug().
		Int("min_unused", ev.MinUnused).
		Int("ceiling", ev.Ceiling).
		Msg("index pool resized")
}

func (u *Universe[E]) onComponentRegistered(ev ComponentRegistered) {
	u.log.Debug().
		Int("type_index", ev.TypeIndex).
		Str("component", ev.Type.String()).
		Msg("component type registered")
}

// GetAccessor returns the storage for component type T in u, registering T
// at the next type-index the first time it is asked for. Keep the returned
// storage around instead of calling this on hot paths.
func GetAccessor[T any, E Entity](u *Universe[E]) *Storage[E, T] {
	id := indexFor[T](u.reg)
	if id < len(u.storages) {
		if s := u.storages[id]; s != nil {
			return s.(*Storage[E, T])
		}
	}
	u.storages = growSlice(u.storages, id+1)
	s := newStorage[E, T](u, id)
	u.storages[id] = s
	u.pool.Subscribe(func(ev PoolResized) {
		s.reserve(ev.Ceiling)
	})
	return s
}

// AttachComponent puts v on e, overwriting any existing T, and returns a
// pointer to the stored value. It fails when e is not a member of u.
func AttachComponent[T any, E Entity](u *Universe[E], e E, v T) (*T, error) {
	if err := e.entityBase().belongsTo(u.reg); err != nil {
		return nil, err
	}
	return GetAccessor[T](u).Put(e, v)
}

// AttachZeroComponent puts the zero value of T on e.
func AttachZeroComponent[T any, E Entity](u *Universe[E], e E) (*T, error) {
	var zero T
	return AttachComponent(u, e, zero)
}
