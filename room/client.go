package room

import "sync"

// ClientStatus is the per-connection session state.
type ClientStatus int32

const (
	ClientIdle       ClientStatus = 0 // connected, not matched
	ClientPending    ClientStatus = 1 // waiting in a pending room
	ClientInProgress ClientStatus = 2 // playing in an in-progress room
)

func (s ClientStatus) String() string {
	switch s {
	case ClientIdle:
		return "idle"
	case ClientPending:
		return "pending"
	case ClientInProgress:
		return "inProgress"
	}
	return "unknown"
}

// Client is one connected participant. The identifier is server-generated
// and stable for the connection lifetime, independent of the transport
// connection id. Room membership is a weak back-reference: a room index into
// the table, never an owning pointer.
type Client struct {
	id     string
	connID uint64

	mu       sync.Mutex
	status   ClientStatus
	roomID   int
	entityID int
}

// NewClient creates an idle client bound to a transport connection.
func NewClient(id string, connID uint64) *Client {
	return &Client{
		id:       id,
		connID:   connID,
		status:   ClientIdle,
		roomID:   -1,
		entityID: -1,
	}
}

// ID is the server-generated client identifier.
func (c *Client) ID() string {
	return c.id
}

// ConnID is the transport connection identifier.
func (c *Client) ConnID() uint64 {
	return c.connID
}

// Status returns the current session state.
func (c *Client) Status() ClientStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// RoomID returns the joined room index, -1 when unassigned.
func (c *Client) RoomID() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roomID
}

// EntityID returns the assigned seat inside the room, -1 before start.
func (c *Client) EntityID() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entityID
}

// setMatched transitions idle -> pending when joining a room.
func (c *Client) setMatched(roomID int) {
	c.mu.Lock()
	c.status = ClientPending
	c.roomID = roomID
	c.mu.Unlock()
}

// setPlaying transitions pending -> inProgress at room start.
func (c *Client) setPlaying(entityID int) {
	c.mu.Lock()
	c.status = ClientInProgress
	c.entityID = entityID
	c.mu.Unlock()
}

// reset forcibly returns the client to idle, clearing room and entity.
func (c *Client) reset() {
	c.mu.Lock()
	c.status = ClientIdle
	c.roomID = -1
	c.entityID = -1
	c.mu.Unlock()
}
