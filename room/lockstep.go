package room

import "lockstep-arena/arena"

// actionLog is the flat append-only action log of one in-progress session.
// The slice belonging to tick T occupies [T*size, T*size+size); a tick is
// complete once its slice holds exactly size entries, one per participant.
type actionLog struct {
	size    int
	actions []arena.Action
}

func newActionLog(size int) *actionLog {
	return &actionLog{
		size:    size,
		actions: make([]arena.Action, 0, size),
	}
}

func (l *actionLog) reset() {
	l.actions = l.actions[:0]
}

// complete reports whether tick's slice is full.
func (l *actionLog) complete(tick int) bool {
	return len(l.actions) >= (tick+1)*l.size
}

// tickSlice returns the (possibly partial) slice of tick. The result aliases
// the log; callers copy before handing it out.
func (l *actionLog) tickSlice(tick int) []arena.Action {
	from := tick * l.size
	if from > len(l.actions) {
		return nil
	}
	to := from + l.size
	if to > len(l.actions) {
		to = len(l.actions)
	}
	return l.actions[from:to]
}

// has reports whether tick's slice already holds an action for entityID.
// Entity ids are unique per client, so this doubles as the double-submission
// check.
func (l *actionLog) has(tick int, entityID int) bool {
	for _, a := range l.tickSlice(tick) {
		if a.EntityID == entityID {
			return true
		}
	}
	return false
}

func (l *actionLog) push(a arena.Action) {
	l.actions = append(l.actions, a)
}

// all returns a copy of the whole log.
func (l *actionLog) all() []arena.Action {
	out := make([]arena.Action, len(l.actions))
	copy(out, l.actions)
	return out
}
