package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lockstep-arena/event"
)

func TestRegistry_Register(t *testing.T) {
	bus := newFakeBus()
	reg := NewRegistry(2, bus)

	c1, err := reg.Register(11)
	require.NoError(t, err)
	require.NotNil(t, c1)
	assert.NotEmpty(t, c1.ID())
	assert.Equal(t, uint64(11), c1.ConnID())
	assert.Equal(t, ClientIdle, c1.Status())

	// acknowledgment goes to the originating connection only
	acks := bus.named(event.Connected)
	require.Len(t, acks, 1)
	assert.Equal(t, -1, acks[0].roomID)
	assert.Equal(t, uint64(11), acks[0].connID)

	var data event.ConnectedData
	require.NoError(t, acks[0].e.Decode(&data))
	assert.Equal(t, c1.ID(), data.ClientID)

	// identifiers are unique
	c2, err := reg.Register(12)
	require.NoError(t, err)
	assert.NotEqual(t, c1.ID(), c2.ID())
}

func TestRegistry_CapacityExceeded(t *testing.T) {
	bus := newFakeBus()
	reg := NewRegistry(20, bus)

	for i := 0; i < 20; i++ {
		_, err := reg.Register(uint64(i + 1))
		require.NoError(t, err)
	}

	// the 21st connection is rejected and the registry size holds
	_, err := reg.Register(21)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, 20, reg.Count())
	assert.Nil(t, reg.Lookup(21))
}

func TestRegistry_LookupAndRemove(t *testing.T) {
	reg := NewRegistry(2, newFakeBus())

	c, err := reg.Register(5)
	require.NoError(t, err)
	assert.Same(t, c, reg.Lookup(5))

	reg.Remove(5)
	assert.Nil(t, reg.Lookup(5))
	assert.Zero(t, reg.Count())

	// freed capacity is reusable
	_, err = reg.Register(6)
	assert.NoError(t, err)
}
