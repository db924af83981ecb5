package room

import (
	"fmt"

	l4g "github.com/alecthomas/log4go"

	"lockstep-arena/event"
	"lockstep-arena/transport"
)

// MatchMaker assigns idle clients to the first pending room with a free
// seat, in room-index order.
type MatchMaker struct {
	rooms Table
	bus   transport.Bus
}

// NewMatchMaker creates a matchmaker over the room table.
func NewMatchMaker(rooms Table, bus transport.Bus) *MatchMaker {
	return &MatchMaker{
		rooms: rooms,
		bus:   bus,
	}
}

// Match joins the client to a room, subscribes its connection to the room
// group and announces the new occupancy to the whole group. Fails with
// ErrInvalidState unless the client is idle, and with ErrNoRoomAvailable
// when every pending room is taken.
func (m *MatchMaker) Match(c *Client) (*Room, error) {
	if c.Status() != ClientIdle {
		return nil, ErrInvalidState
	}

	for _, r := range m.rooms {
		count, err := r.AddClient(c)
		if err != nil {
			continue
		}

		l4g.Info("[matchmaker] client=[%s] joined room(%d) %d/%d", c.ID(), r.ID(), count, r.Size())

		m.bus.Join(r.ID(), c.ConnID())
		m.bus.ToRoom(r.ID(), event.New(event.ClientJoined, event.ClientJoinedData{
			Info:         fmt.Sprintf("client: %s joined room: %d", c.ID(), r.ID()),
			ClientNumber: count,
		}))

		return r, nil
	}

	l4g.Warn("[matchmaker] client=[%s] no room available", c.ID())
	return nil, ErrNoRoomAvailable
}
