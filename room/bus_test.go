package room

import (
	"sync"

	"lockstep-arena/event"
)

// fakeBus records everything the engine publishes.
type fakeBus struct {
	mu     sync.Mutex
	joins  []groupOp
	leaves []groupOp
	sent   []sentEvent
}

type groupOp struct {
	roomID int
	connID uint64
}

// sentEvent records one delivery; roomID is -1 for single-connection sends.
type sentEvent struct {
	roomID int
	connID uint64
	e      event.Event
}

func newFakeBus() *fakeBus {
	return &fakeBus{}
}

func (b *fakeBus) Join(roomID int, connID uint64) {
	b.mu.Lock()
	b.joins = append(b.joins, groupOp{roomID, connID})
	b.mu.Unlock()
}

func (b *fakeBus) Leave(roomID int, connID uint64) {
	b.mu.Lock()
	b.leaves = append(b.leaves, groupOp{roomID, connID})
	b.mu.Unlock()
}

func (b *fakeBus) ToConn(connID uint64, e event.Event) {
	b.mu.Lock()
	b.sent = append(b.sent, sentEvent{-1, connID, e})
	b.mu.Unlock()
}

func (b *fakeBus) ToRoom(roomID int, e event.Event) {
	b.mu.Lock()
	b.sent = append(b.sent, sentEvent{roomID, 0, e})
	b.mu.Unlock()
}

// named returns every recorded delivery of one event name, in order.
func (b *fakeBus) named(name string) []sentEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []sentEvent
	for _, s := range b.sent {
		if s.e.Name == name {
			out = append(out, s)
		}
	}
	return out
}
