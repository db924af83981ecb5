package server

import (
	"sync"
	"sync/atomic"

	l4g "github.com/alecthomas/log4go"

	"lockstep-arena/event"
	"lockstep-arena/transport"
)

// Hub is the broadcast-group implementation of transport.Bus shared by every
// transport: connections are tracked by id and grouped by room, so a room
// can mix websocket and KCP participants.
type Hub struct {
	nextID uint64

	mu     sync.RWMutex
	conns  map[uint64]transport.Conn
	groups map[int]map[uint64]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		conns:  make(map[uint64]transport.Conn),
		groups: make(map[int]map[uint64]struct{}),
	}
}

// NextID mints a fresh connection identifier.
func (h *Hub) NextID() uint64 {
	return atomic.AddUint64(&h.nextID, 1)
}

// Add tracks a connection.
func (h *Hub) Add(c transport.Conn) {
	h.mu.Lock()
	h.conns[c.ID()] = c
	h.mu.Unlock()
}

// Drop forgets a connection, including any group membership.
func (h *Hub) Drop(connID uint64) {
	h.mu.Lock()
	delete(h.conns, connID)
	for _, group := range h.groups {
		delete(group, connID)
	}
	h.mu.Unlock()
}

// Join adds a connection to a room group.
func (h *Hub) Join(roomID int, connID uint64) {
	h.mu.Lock()
	group, ok := h.groups[roomID]
	if !ok {
		group = make(map[uint64]struct{})
		h.groups[roomID] = group
	}
	group[connID] = struct{}{}
	h.mu.Unlock()
}

// Leave removes a connection from a room group.
func (h *Hub) Leave(roomID int, connID uint64) {
	h.mu.Lock()
	if group, ok := h.groups[roomID]; ok {
		delete(group, connID)
	}
	h.mu.Unlock()
}

// ToConn delivers to one connection. Unknown ids are ignored.
func (h *Hub) ToConn(connID uint64, e event.Event) {
	h.mu.RLock()
	c := h.conns[connID]
	h.mu.RUnlock()

	if c == nil {
		return
	}
	h.send(c, e)
}

// ToRoom delivers to every connection in a room group.
func (h *Hub) ToRoom(roomID int, e event.Event) {
	h.mu.RLock()
	group := h.groups[roomID]
	targets := make([]transport.Conn, 0, len(group))
	for connID := range group {
		if c, ok := h.conns[connID]; ok {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range targets {
		h.send(c, e)
	}
}

// send closes the connection when delivery fails; the transport's close
// callback then runs the normal disconnect path.
func (h *Hub) send(c transport.Conn, e event.Event) {
	if err := c.Send(e); err != nil {
		l4g.Warn("[hub] send event=[%s] to conn(%d) failed: %v", e.Name, c.ID(), err)
		c.Close()
	}
}
