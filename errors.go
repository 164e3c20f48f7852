package slotecs

import "github.com/rotisserie/eris"

// All errors returned by this package wrap one of these sentinels with eris,
// so they can be matched with errors.Is or eris.Cause. Every one of them marks
// a caller bug; none is transient and none should be retried.
var (
	// ErrCrossUniverse is returned when an entity or prefab owned by one
	// universe is used with a storage, accessor or universe owned by another.
	ErrCrossUniverse = eris.New("entity belongs to a different universe")
	// ErrAlreadyAttached is returned when admitting an entity that is already
	// a member of a universe.
	ErrAlreadyAttached = eris.New("entity already belongs to a universe")
	// ErrNotAttached is returned when an operation needs the entity's
	// universe but the entity has not been added to one.
	ErrNotAttached = eris.New("entity has not been added to a universe")
	// ErrComponentAbsent is returned by Get when the entity does not have the
	// component.
	ErrComponentAbsent = eris.New("entity does not have this component")
	// ErrIndexPoolMisuse is returned when freeing a slot that was never issued
	// or resizing an index pool to an invalid ceiling.
	ErrIndexPoolMisuse = eris.New("invalid index pool operation")
	// ErrNilComponent is returned when a nil interface is passed where a
	// component value is expected.
	ErrNilComponent = eris.New("component value is nil")
)
