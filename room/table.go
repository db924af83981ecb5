package room

import (
	"math/rand"
	"time"

	"lockstep-arena/arena"
)

// Table is the process-scoped room table, fixed at startup. Rooms are
// identified by their index and recycled pending -> inProgress -> pending;
// they are never created or destroyed at runtime.
type Table []*Room

// NewTable builds n pending rooms of the given capacity, each with its own
// spawn randomness.
func NewTable(n, size int, settings arena.Settings) Table {
	t := make(Table, 0, n)
	for i := 0; i < n; i++ {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano() + int64(i)))
		t = append(t, NewRoom(i, size, settings, rnd))
	}
	return t
}

// Get returns the room at index id, nil when out of range.
func (t Table) Get(id int) *Room {
	if id < 0 || id >= len(t) {
		return nil
	}
	return t[id]
}
