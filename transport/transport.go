// Package transport abstracts the delivery layer the session engine talks
// through: one bidirectional event channel per connection, plus a broadcast
// group per room. Concrete implementations live in the server package
// (websocket and KCP conns behind one hub).
package transport

import "lockstep-arena/event"

// Conn is one connected client channel. IDs are server-assigned and unique
// for the process lifetime; they are distinct from client identifiers.
type Conn interface {
	ID() uint64
	Send(e event.Event) error
	Close()
}

// Bus groups connections by room and delivers events to one connection or to
// a whole room group. All methods are safe for concurrent use.
type Bus interface {
	// Join adds a connection to a room group.
	Join(roomID int, connID uint64)
	// Leave removes a connection from a room group.
	Leave(roomID int, connID uint64)
	// ToConn delivers to a single connection. Unknown ids are ignored.
	ToConn(connID uint64, e event.Event)
	// ToRoom delivers to every connection in a room group.
	ToRoom(roomID int, e event.Event)
}
