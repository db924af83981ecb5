package room

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lockstep-arena/arena"
)

func TestActionLog_SliceRanges(t *testing.T) {
	l := newActionLog(2)

	assert.False(t, l.complete(0))
	assert.Empty(t, l.tickSlice(0))

	l.push(arena.Action{EntityID: 0, Type: arena.ActionMoveLeft})
	assert.False(t, l.complete(0))
	assert.Len(t, l.tickSlice(0), 1)

	l.push(arena.Action{EntityID: 1, Type: arena.ActionMoveRight})
	assert.True(t, l.complete(0))
	assert.Len(t, l.tickSlice(0), 2)

	// tick 1 slice occupies [2, 4)
	assert.False(t, l.complete(1))
	assert.Empty(t, l.tickSlice(1))

	l.push(arena.Action{EntityID: 1, Type: arena.ActionNone})
	slice := l.tickSlice(1)
	assert.Len(t, slice, 1)
	assert.Equal(t, 1, slice[0].EntityID)
}

func TestActionLog_Has(t *testing.T) {
	l := newActionLog(2)

	l.push(arena.Action{EntityID: 0})
	assert.True(t, l.has(0, 0))
	assert.False(t, l.has(0, 1))

	l.push(arena.Action{EntityID: 1})
	l.push(arena.Action{EntityID: 1})
	assert.True(t, l.has(1, 1))
	assert.False(t, l.has(1, 0))
}

func TestActionLog_Reset(t *testing.T) {
	l := newActionLog(2)
	l.push(arena.Action{EntityID: 0})
	l.push(arena.Action{EntityID: 1})

	l.reset()
	assert.Empty(t, l.all())
	assert.False(t, l.complete(0))
}

func TestActionLog_AllCopies(t *testing.T) {
	l := newActionLog(1)
	l.push(arena.Action{EntityID: 0, Type: arena.ActionMoveTop})

	all := l.all()
	all[0].Type = arena.ActionMoveBottom

	assert.Equal(t, arena.ActionMoveTop, l.tickSlice(0)[0].Type)
}
