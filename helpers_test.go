package slotecs

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/require"
)

// --- Test Components ---
type Position struct{ X, Y float32 }
type Velocity struct{ VX, VY float32 }
type Health struct{ Current, Max int }
type Name struct{ Value string }
type Tag struct{}

// ship is the entity type used throughout the tests.
type ship struct {
	Base
	Callsign    string
	initialized int
	initSlot    int
}

func (s *ship) OnInitialize() {
	s.initialized++
	s.initSlot = s.Slot()
}

func newShip(callsign string) *ship {
	return &ship{Callsign: callsign}
}

// tile is an entity type without a lifecycle hook.
type tile struct {
	Base
}

func requireKind(t *testing.T, err error, kind error) {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, eris.Cause(err), kind)
}

func addShips(t *testing.T, u *Universe[*ship], n int) []*ship {
	t.Helper()
	ships := make([]*ship, n)
	for i := range ships {
		ships[i] = newShip("")
	}
	require.NoError(t, u.AddEntities(ships...))
	return ships
}
