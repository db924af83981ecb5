package room

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lockstep-arena/arena"
	"lockstep-arena/event"
)

// Full session walk-through: match two clients into a 2-seat room, run the
// lockstep cadence for a few ticks, lose a participant and verify the room
// recycles with a replay history.
func TestSession_Lifecycle(t *testing.T) {
	bus := newFakeBus()
	table := testTable(1, 2)
	registry := NewRegistry(2, bus)
	mm := NewMatchMaker(table, bus)
	monitor := NewMonitor(table, bus, time.Second)
	broadcaster := NewBroadcaster(table, bus, 60)

	c1, err := registry.Register(1)
	require.NoError(t, err)
	c2, err := registry.Register(2)
	require.NoError(t, err)

	// first join: occupancy 1, room stays pending through a monitor cycle
	_, err = mm.Match(c1)
	require.NoError(t, err)
	joined := bus.named(event.ClientJoined)
	require.Len(t, joined, 1)
	var jd event.ClientJoinedData
	require.NoError(t, joined[0].e.Decode(&jd))
	assert.Equal(t, 1, jd.ClientNumber)

	monitor.Sweep()
	assert.Equal(t, StatusPending, table.Get(0).Status())

	// second join fills the room; the next monitor cycle starts it
	_, err = mm.Match(c2)
	require.NoError(t, err)
	monitor.Sweep()

	started := bus.named(event.Start)
	require.Len(t, started, 1)
	var sd event.StartData
	require.NoError(t, started[0].e.Decode(&sd))
	require.Len(t, sd.Entities, 2)
	assert.Equal(t, []int{0, 1}, []int{sd.Entities[0].ID, sd.Entities[1].ID})

	r := table.Get(0)

	// lockstep cadence over three ticks
	for tick := 0; tick < 3; tick++ {
		require.True(t, r.SubmitAction(c1, tick, arena.Action{EntityID: 0, Type: arena.ActionMoveRight, Delta: 0.016}))

		// half a slice holds the whole room
		broadcaster.Flush()
		assert.Equal(t, tick, r.CurrentTick())

		require.True(t, r.SubmitAction(c2, tick, arena.Action{EntityID: 1, Type: arena.ActionNone}))
		broadcaster.Flush()
		assert.Equal(t, tick+1, r.CurrentTick())
	}
	assert.Len(t, bus.named(event.Update), 3)

	// c1 disconnects: remaining member notified, monitor closes the room
	count, ok := r.RemoveClient(c1)
	require.True(t, ok)
	assert.Equal(t, 1, count)
	registry.Remove(c1.ConnID())

	monitor.Sweep()

	closed := bus.named(event.RoomClosed)
	require.Len(t, closed, 1)
	var cd event.RoomClosedData
	require.NoError(t, closed[0].e.Decode(&cd))
	assert.Len(t, cd.History.Entities, 2)
	assert.Len(t, cd.History.Actions, 6)

	// room recycled: 0/2 pending, tick zero, and matchable again
	assert.Equal(t, StatusPending, r.Status())
	assert.Equal(t, 0, r.ClientCount())
	assert.Equal(t, 0, r.CurrentTick())
	assert.Equal(t, ClientIdle, c2.Status())

	_, err = mm.Match(c2)
	assert.NoError(t, err)
}

// A member that never submits stalls its room until the monitor notices the
// departure; advancement never happens on a partial slice.
func TestSession_StallsWithoutFullSlice(t *testing.T) {
	bus := newFakeBus()
	table := testTable(1, 2)
	mm := NewMatchMaker(table, bus)
	monitor := NewMonitor(table, bus, time.Second)
	broadcaster := NewBroadcaster(table, bus, 60)

	c1 := NewClient("a", 1)
	c2 := NewClient("b", 2)
	mm.Match(c1)
	mm.Match(c2)
	monitor.Sweep()

	r := table.Get(0)
	require.True(t, r.SubmitAction(c1, 0, arena.Action{EntityID: 0, Type: arena.ActionMoveLeft, Delta: 0.016}))

	for i := 0; i < 10; i++ {
		broadcaster.Flush()
		monitor.Sweep()
	}

	// still gated: both loops ran, nothing advanced, nothing closed
	assert.Equal(t, 0, r.CurrentTick())
	assert.Empty(t, bus.named(event.Update))
	assert.Equal(t, StatusInProgress, r.Status())
}
