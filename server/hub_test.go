package server

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"lockstep-arena/event"
)

type brokenConn struct {
	fakeConn
}

func (c *brokenConn) Send(event.Event) error {
	return errors.New("peer gone")
}

func TestHub_GroupDelivery(t *testing.T) {
	hub := NewHub()

	a := &fakeConn{id: hub.NextID()}
	b := &fakeConn{id: hub.NextID()}
	c := &fakeConn{id: hub.NextID()}
	hub.Add(a)
	hub.Add(b)
	hub.Add(c)

	hub.Join(7, a.id)
	hub.Join(7, b.id)

	hub.ToRoom(7, event.New(event.Update, nil))
	assert.Len(t, a.events(), 1)
	assert.Len(t, b.events(), 1)
	assert.Empty(t, c.events())

	hub.Leave(7, b.id)
	hub.ToRoom(7, event.New(event.Update, nil))
	assert.Len(t, a.events(), 2)
	assert.Len(t, b.events(), 1)
}

func TestHub_DropRemovesGroupMembership(t *testing.T) {
	hub := NewHub()

	a := &fakeConn{id: hub.NextID()}
	hub.Add(a)
	hub.Join(3, a.id)

	hub.Drop(a.id)

	hub.ToConn(a.id, event.New(event.Update, nil))
	hub.ToRoom(3, event.New(event.Update, nil))
	assert.Empty(t, a.events())
}

func TestHub_SendFailureClosesConn(t *testing.T) {
	hub := NewHub()

	c := &brokenConn{fakeConn{id: hub.NextID()}}
	hub.Add(c)

	hub.ToConn(c.id, event.New(event.Update, nil))
	assert.True(t, c.closed)
}
