package room

import (
	"sync"

	l4g "github.com/alecthomas/log4go"
	"github.com/google/uuid"

	"lockstep-arena/event"
	"lockstep-arena/transport"
)

// Registry owns the transport-connection to client mapping and enforces the
// deployment-wide client capacity (room count times room size). Entries are
// removed exactly once, on disconnect.
type Registry struct {
	capacity int
	bus      transport.Bus

	mu      sync.RWMutex
	clients map[uint64]*Client
}

// NewRegistry creates an empty registry.
func NewRegistry(capacity int, bus transport.Bus) *Registry {
	return &Registry{
		capacity: capacity,
		bus:      bus,
		clients:  make(map[uint64]*Client),
	}
}

// Register accepts a connection, mints the client identifier and sends the
// "connected" acknowledgment to the originating connection only. Fails with
// ErrCapacityExceeded when the deployment is full.
func (reg *Registry) Register(connID uint64) (*Client, error) {
	reg.mu.Lock()
	if len(reg.clients) >= reg.capacity {
		reg.mu.Unlock()
		l4g.Warn("[registry] conn(%d) rejected, capacity %d reached", connID, reg.capacity)
		return nil, ErrCapacityExceeded
	}

	c := NewClient(uuid.NewString(), connID)
	reg.clients[connID] = c
	reg.mu.Unlock()

	l4g.Info("[registry] conn(%d) registered client=[%s]", connID, c.ID())

	reg.bus.ToConn(connID, event.New(event.Connected, event.ConnectedData{
		Info:     "you've connected",
		ClientID: c.ID(),
	}))

	return c, nil
}

// Lookup resolves a connection to its client, nil when unknown.
func (reg *Registry) Lookup(connID uint64) *Client {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.clients[connID]
}

// Remove drops the mapping of a disconnected connection.
func (reg *Registry) Remove(connID uint64) {
	reg.mu.Lock()
	delete(reg.clients, connID)
	reg.mu.Unlock()
}

// Count returns the number of registered clients.
func (reg *Registry) Count() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.clients)
}
