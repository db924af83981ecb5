package server

import (
	"errors"
	"fmt"

	l4g "github.com/alecthomas/log4go"

	"lockstep-arena/arena"
	"lockstep-arena/event"
	"lockstep-arena/room"
	"lockstep-arena/transport"
)

// Router maps transport events onto the session engine. Every transport
// (websocket, KCP) funnels its connections through the same three entry
// points, so the engine never sees transport specifics.
type Router struct {
	hub        *Hub
	registry   *room.Registry
	rooms      room.Table
	matchMaker *room.MatchMaker
}

// NewRouter wires the router to the engine.
func NewRouter(hub *Hub, registry *room.Registry, rooms room.Table, matchMaker *room.MatchMaker) *Router {
	return &Router{
		hub:        hub,
		registry:   registry,
		rooms:      rooms,
		matchMaker: matchMaker,
	}
}

// HandleConnect registers an accepted connection. On capacity rejection the
// connection receives "connectFailed" and the return value tells the
// transport to drop it.
func (rt *Router) HandleConnect(c transport.Conn) bool {
	rt.hub.Add(c)

	if _, err := rt.registry.Register(c.ID()); err != nil {
		if errors.Is(err, room.ErrCapacityExceeded) {
			c.Send(event.New(event.ConnectFailed, event.Info{
				Info: "exceeded max client number",
			}))
		}
		rt.hub.Drop(c.ID())
		return false
	}

	return true
}

// HandleEvent routes one client-to-server event.
func (rt *Router) HandleEvent(connID uint64, e event.Event) {
	client := rt.registry.Lookup(connID)
	if client == nil {
		return
	}

	switch e.Name {
	case event.Matching:
		rt.handleMatching(client)
	case event.Update:
		rt.handleUpdate(client, e)
	default:
		l4g.Debug("[router] conn(%d) unknown event=[%s]", connID, e.Name)
	}
}

// HandleDisconnect tears a connection down: a non-idle client leaves its
// room (announced to the remaining members), the registry entry is removed
// exactly once, and the hub forgets the connection.
func (rt *Router) HandleDisconnect(connID uint64) {
	client := rt.registry.Lookup(connID)
	if client == nil {
		rt.hub.Drop(connID)
		return
	}

	if client.Status() != room.ClientIdle {
		if r := rt.rooms.Get(client.RoomID()); r != nil {
			count, ok := r.RemoveClient(client)
			if ok {
				rt.hub.Leave(r.ID(), connID)
				rt.hub.ToRoom(r.ID(), event.New(event.ClientLeft, event.ClientLeftData{
					Info:         fmt.Sprintf("client: %s left room: %d", client.ID(), r.ID()),
					ClientNumber: count,
				}))
				l4g.Info("[router] client=[%s] left room(%d), %d remain", client.ID(), r.ID(), count)
			}
		}
	}

	rt.registry.Remove(connID)
	rt.hub.Drop(connID)
}

func (rt *Router) handleMatching(client *room.Client) {
	_, err := rt.matchMaker.Match(client)
	if err == nil {
		return
	}

	info := "no available room"
	if errors.Is(err, room.ErrInvalidState) {
		info = "invalid client status"
	}
	rt.hub.ToConn(client.ConnID(), event.New(event.MatchingFail, event.Info{
		Info: info,
	}))
}

func (rt *Router) handleUpdate(client *room.Client, e event.Event) {
	var req event.UpdateRequest
	if err := e.Decode(&req); err != nil {
		l4g.Debug("[router] client=[%s] bad update payload: %v", client.ID(), err)
		return
	}

	r := rt.rooms.Get(client.RoomID())
	if r == nil {
		return
	}

	// Absent type or delta means an explicit no-op; out-of-range types are
	// normalized inside SubmitAction.
	action := arena.Action{
		EntityID: req.Action.EntityID,
		Type:     arena.ActionNone,
	}
	if req.Action.Type != nil {
		action.Type = arena.ActionType(*req.Action.Type)
	}
	if req.Action.Delta != nil {
		action.Delta = *req.Action.Delta
	}

	// Stale, duplicate and spoofed submissions are dropped without a reply.
	r.SubmitAction(client, req.Tick, action)
}
