package server

import (
	"errors"
	"time"

	l4g "github.com/alecthomas/log4go"

	"lockstep-arena/event"
	"lockstep-arena/pkg/network"
	"lockstep-arena/pkg/packet/json_packet"
)

// kcpConn adapts one network.Conn (KCP session) to transport.Conn. Events
// travel as length-prefixed JSON frames.
type kcpConn struct {
	id   uint64
	conn *network.Conn
}

func (c *kcpConn) ID() uint64 {
	return c.id
}

func (c *kcpConn) Send(e event.Event) error {
	p := json_packet.NewPacket(e)
	if p == nil {
		return errors.New("unencodable event")
	}
	return c.conn.AsyncWritePacket(p, time.Millisecond)
}

func (c *kcpConn) Close() {
	c.conn.Close()
}

// kcpGate bridges the generic network server callbacks to the router.
type kcpGate struct {
	hub    *Hub
	router *Router
}

// OnConnect wraps the session and registers it; returning false makes the
// network server drop the connection.
func (g *kcpGate) OnConnect(conn *network.Conn) bool {
	c := &kcpConn{
		id:   g.hub.NextID(),
		conn: conn,
	}
	conn.PutExtraData(c)

	if !g.router.HandleConnect(c) {
		return false
	}

	l4g.Debug("[kcp] conn(%d) accepted from [%s]", c.id, conn.GetRawConn().RemoteAddr())
	return true
}

// OnMessage decodes one framed envelope and routes it.
func (g *kcpGate) OnMessage(conn *network.Conn, p network.Packet) bool {
	c, ok := conn.GetExtraData().(*kcpConn)
	if !ok {
		return false
	}

	pkt, ok := p.(*json_packet.Packet)
	if !ok {
		return false
	}

	e, err := pkt.Event()
	if err != nil {
		l4g.Debug("[kcp] conn(%d) bad envelope: %v", c.id, err)
		return true
	}

	g.router.HandleEvent(c.id, e)
	return true
}

// OnClose runs the disconnect path.
func (g *kcpGate) OnClose(conn *network.Conn) {
	if c, ok := conn.GetExtraData().(*kcpConn); ok {
		g.router.HandleDisconnect(c.id)
	}
}
