package slotecs

import (
	"reflect"

	"github.com/rs/zerolog"
)

// Loggable is anything that can list its registered component types in
// type-index order. *Universe[E] implements it for every E.
type Loggable interface {
	ComponentTypes() []reflect.Type
}

// Logger wraps the zerolog logger a universe was configured with and adds
// helpers for dumping component registrations and entity contents.
type Logger struct {
	*zerolog.Logger
}

func newLogger(l zerolog.Logger) Logger {
	return Logger{&l}
}

func (*Logger) loadComponentIntoArrayLogger(id int, t reflect.Type, arrayLogger *zerolog.Array) *zerolog.Array {
	dictLogger := zerolog.Dict()
	dictLogger = dictLogger.Int("type_index", id)
	dictLogger = dictLogger.Str("component", t.String())
	return arrayLogger.Dict(dictLogger)
}

// LogComponents logs every component type registered in target.
func (l *Logger) LogComponents(target Loggable, level zerolog.Level) {
	types := target.ComponentTypes()
	arrayLogger := zerolog.Arr()
	for id, t := range types {
		arrayLogger = l.loadComponentIntoArrayLogger(id, t, arrayLogger)
	}
	l.WithLevel(level).
		Int("total_components", len(types)).
		Array("components", arrayLogger).
		Send()
}

// LogEntity logs the slot of e and the component types it currently has.
func (l *Logger) LogEntity(target Loggable, level zerolog.Level, e Entity) {
	b := e.entityBase()
	types := target.ComponentTypes()
	arrayLogger := zerolog.Arr()
	b.bits.each(func(id int) {
		if id < len(types) {
			arrayLogger = l.loadComponentIntoArrayLogger(id, types[id], arrayLogger)
		}
	})
	event := l.WithLevel(level).
		Int("slot", b.Slot()).
		Array("components", arrayLogger)
	if b.prefab != nil {
		event = event.Bool("from_prefab", true)
	}
	event.Send()
}
