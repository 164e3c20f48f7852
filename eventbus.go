package slotecs

import "reflect"

// maxEventTypes bounds the number of distinct event types a bus can route.
const maxEventTypes = 16

// PoolResized is published by an IndexPool whenever its ceiling changes,
// either through automatic growth in Borrow or through Grow and Shrink.
type PoolResized struct {
	MinUnused int
	Ceiling   int
}

// ComponentRegistered is published by a Universe when a component type is
// assigned its type-index.
type ComponentRegistered struct {
	TypeIndex int
	Type      reflect.Type
}

// eventBus routes synchronous, typed notifications between the pieces of a
// universe. Handlers run in subscription order on the publishing goroutine.
type eventBus struct {
	eventTypeMap    map[reflect.Type]uint8
	handlers        [maxEventTypes][]any
	nextEventTypeID uint8
}

// subscribe registers handler for events of type T.
func subscribe[T any](bus *eventBus, handler func(T)) {
	id := bus.eventTypeID(reflect.TypeFor[T]())
	if cap(bus.handlers[id]) == 0 {
		bus.handlers[id] = make([]any, 0, 4)
	}
	bus.handlers[id] = append(bus.handlers[id], handler)
}

// publish delivers event to every handler subscribed to T. Publishing a type
// nobody subscribed to is a no-op.
func publish[T any](bus *eventBus, event T) {
	if bus == nil || bus.eventTypeMap == nil {
		return
	}
	if id, ok := bus.eventTypeMap[reflect.TypeFor[T]()]; ok {
		for _, h := range bus.handlers[id] {
			h.(func(T))(event)
		}
	}
}

func (bus *eventBus) eventTypeID(t reflect.Type) uint8 {
	if bus.eventTypeMap == nil {
		bus.eventTypeMap = make(map[reflect.Type]uint8)
	}
	if id, ok := bus.eventTypeMap[t]; ok {
		return id
	}
	id := bus.nextEventTypeID
	if int(id) >= maxEventTypes {
		panic("slotecs: too many event types")
	}
	bus.nextEventTypeID++
	bus.eventTypeMap[t] = id
	return id
}
