// Package room implements the session engine: the fixed room table with its
// pending/inProgress state machine, lockstep tick gating, the connection
// registry, the matchmaker and the two periodic loops driving room lifecycle
// and tick advancement.
package room

import (
	"math/rand"
	"sync"

	l4g "github.com/alecthomas/log4go"

	"lockstep-arena/arena"
)

// Status is the room lifecycle state.
type Status int32

const (
	StatusPending    Status = 0 // accepting joins, no entities
	StatusInProgress Status = 1 // entities assigned, action log active
)

func (s Status) String() string {
	if s == StatusInProgress {
		return "inProgress"
	}
	return "pending"
}

// Room is a fixed-capacity lockstep session. All mutable state (member list,
// entities, action log, tick counter) is guarded by one mutex, so the event
// handlers and the two periodic loops never interleave inside a room.
type Room struct {
	id       int
	size     int
	settings arena.Settings
	rnd      *rand.Rand

	mu          sync.Mutex
	status      Status
	currentTick int
	clients     []*Client
	entities    []arena.Entity
	log         *actionLog
	startState  []arena.Entity // entity snapshot taken at start, for replay
	lastHistory *arena.History // kept until the next start
}

// NewRoom creates a pending room with table index id.
func NewRoom(id, size int, settings arena.Settings, rnd *rand.Rand) *Room {
	return &Room{
		id:       id,
		size:     size,
		settings: settings,
		rnd:      rnd,
		status:   StatusPending,
		clients:  make([]*Client, 0, size),
		log:      newActionLog(size),
	}
}

// ID is the stable room index.
func (r *Room) ID() int {
	return r.id
}

// Size is the fixed capacity.
func (r *Room) Size() int {
	return r.size
}

// Status returns the lifecycle state.
func (r *Room) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// CurrentTick returns the gating tick counter.
func (r *Room) CurrentTick() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currentTick
}

// ClientCount returns the current occupancy.
func (r *Room) ClientCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

// Clients returns a copy of the ordered member list.
func (r *Room) Clients() []*Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Client, len(r.clients))
	copy(out, r.clients)
	return out
}

// Entities returns a copy of the live entity list, nil while pending.
func (r *Room) Entities() []arena.Entity {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entities) == 0 {
		return nil
	}
	out := make([]arena.Entity, len(r.entities))
	copy(out, r.entities)
	return out
}

// History returns the replay payload of the last closed session, nil when
// none was captured or the room has started again since.
func (r *Room) History() *arena.History {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastHistory
}

// CouldBeStarted reports pending and full.
func (r *Room) CouldBeStarted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status == StatusPending && len(r.clients) == r.size
}

// CouldBeClosed reports in-progress with a departed member.
func (r *Room) CouldBeClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status == StatusInProgress && len(r.clients) < r.size
}

// AddClient joins a client to a pending room with a free seat and moves the
// client to pending. Occupancy after the join is returned. The join is a
// single atomic state update; there is no partial failure to roll back.
func (r *Room) AddClient(c *Client) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != StatusPending {
		return 0, ErrInvalidState
	}
	if len(r.clients) >= r.size {
		return 0, ErrRoomFull
	}

	r.clients = append(r.clients, c)
	c.setMatched(r.id)

	return len(r.clients), nil
}

// RemoveClient drops a member, keeping join order of the rest. The remaining
// occupancy is returned; ok is false when the client was not a member. The
// room status is left untouched: an in-progress room that lost a member is
// closed by the monitor on its next cycle.
func (r *Room) RemoveClient(c *Client) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, v := range r.clients {
		if v == c {
			r.clients = append(r.clients[:i], r.clients[i+1:]...)
			return len(r.clients), true
		}
	}
	return len(r.clients), false
}

// Start transitions pending -> inProgress. Every member moves to inProgress
// and gets the sequential seat (entity id) matching its join order; one
// entity is spawned per member. Fails with ErrInvalidState unless the room
// is pending and full.
func (r *Room) Start() ([]arena.Entity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != StatusPending || len(r.clients) != r.size {
		return nil, ErrInvalidState
	}

	r.entities = make([]arena.Entity, 0, r.size)
	for i, c := range r.clients {
		r.entities = append(r.entities, arena.Spawn(r.rnd, i, c.ID(), r.settings))
		c.setPlaying(i)
	}

	r.status = StatusInProgress
	r.currentTick = 0
	r.log.reset()
	r.lastHistory = nil

	r.startState = make([]arena.Entity, r.size)
	copy(r.startState, r.entities)

	l4g.Info("[room(%d)] start, %d entities", r.id, len(r.entities))

	return r.snapshotEntities(), nil
}

// Close transitions inProgress -> pending, performing a full reset. The
// pre-reset entities and action log are captured as the session history, and
// every remaining member is forcibly returned to idle; their connection ids
// are returned so the caller can release them from the broadcast group.
// Fails with ErrInvalidState unless the room is in-progress and not full.
func (r *Room) Close() (arena.History, []uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != StatusInProgress || len(r.clients) >= r.size {
		return arena.History{}, nil, ErrInvalidState
	}

	history := arena.History{
		Entities: r.startState,
		Actions:  r.log.all(),
	}

	released := make([]uint64, 0, len(r.clients))
	for _, c := range r.clients {
		released = append(released, c.ConnID())
		c.reset()
	}

	r.clients = r.clients[:0]
	r.entities = nil
	r.startState = nil
	r.currentTick = 0
	r.log.reset()
	r.status = StatusPending
	r.lastHistory = &history

	l4g.Info("[room(%d)] closed, released %d clients", r.id, len(released))

	return history, released, nil
}

// SubmitAction records one client's action for the current tick. Submissions
// are dropped silently unless the room and the client are in-progress, the
// tick matches the room's current tick, the entity id is the client's own
// seat and no action of this client is in the current slice yet. An unknown
// action type is normalized to the explicit no-op (type -1, zero delta); a
// negative delta is clamped to zero. The return value reports acceptance.
func (r *Room) SubmitAction(c *Client, tick int, a arena.Action) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != StatusInProgress || c.Status() != ClientInProgress {
		return false
	}
	if tick != r.currentTick {
		return false
	}
	if a.EntityID != c.EntityID() {
		return false
	}
	if r.log.has(r.currentTick, a.EntityID) {
		return false
	}

	if !a.Type.Valid() {
		a.Type = arena.ActionNone
		a.Delta = 0
	}
	if a.Delta < 0 {
		a.Delta = 0
	}

	r.log.push(a)
	return true
}

// AdvanceTick completes the current tick: when every member has submitted,
// the finished slice is returned and the tick counter moves on. The log
// keeps the slice for replay history. ok is false while the slice is
// incomplete or the room is not in progress.
func (r *Room) AdvanceTick() (tick int, actions []arena.Action, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != StatusInProgress || !r.log.complete(r.currentTick) {
		return 0, nil, false
	}

	tick = r.currentTick
	slice := r.log.tickSlice(tick)
	actions = make([]arena.Action, len(slice))
	copy(actions, slice)

	r.currentTick++
	return tick, actions, true
}

// snapshotEntities copies the entity list. Callers hold r.mu.
func (r *Room) snapshotEntities() []arena.Entity {
	out := make([]arena.Entity, len(r.entities))
	copy(out, r.entities)
	return out
}
