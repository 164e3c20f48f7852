package slotecs

import "reflect"

// registry is the type-index table of one universe. Indices are handed out in
// first-use order and are never reused, so a bit position means the same
// component type for the whole life of the universe.
//
// The registry pointer doubles as the universe's identity: entities and
// prefabs remember the registry they were bound to, which lets the
// non-generic Base and Prefab detect cross-universe use.
type registry struct {
	types    map[reflect.Type]int
	byIndex  []reflect.Type
	universe any // *Universe[E] owning this registry
	bus      *eventBus
}

func newRegistry(bus *eventBus) *registry {
	return &registry{
		types:   make(map[reflect.Type]int, 16),
		byIndex: make([]reflect.Type, 0, 16),
		bus:     bus,
	}
}

// indexOf returns the type-index of t, registering it first if needed.
func (r *registry) indexOf(t reflect.Type) int {
	if id, ok := r.types[t]; ok {
		return id
	}
	id := len(r.byIndex)
	r.types[t] = id
	r.byIndex = append(r.byIndex, t)
	publish(r.bus, ComponentRegistered{TypeIndex: id, Type: t})
	return id
}

// lookup returns the type-index of t without registering it.
func (r *registry) lookup(t reflect.Type) (int, bool) {
	id, ok := r.types[t]
	return id, ok
}

// typeAt returns the component type registered at index id.
func (r *registry) typeAt(id int) (reflect.Type, bool) {
	if id < 0 || id >= len(r.byIndex) {
		return nil, false
	}
	return r.byIndex[id], true
}

// len returns the number of registered component types.
func (r *registry) len() int {
	return len(r.byIndex)
}

// indexFor returns the type-index of T in r, registering it if needed.
func indexFor[T any](r *registry) int {
	return r.indexOf(reflect.TypeFor[T]())
}
