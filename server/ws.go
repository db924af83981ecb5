package server

import (
	"net/http"
	"sync"
	"time"

	l4g "github.com/alecthomas/log4go"
	"github.com/gorilla/websocket"

	"lockstep-arena/event"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
	wsMaxMessage = 16 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsConn adapts one gorilla websocket connection to transport.Conn. Events
// travel as JSON text frames; writes go through a buffered channel drained
// by the write pump.
type wsConn struct {
	id   uint64
	conn *websocket.Conn

	send      chan []byte
	closed    chan struct{}
	closeOnce sync.Once
}

func (c *wsConn) ID() uint64 {
	return c.id
}

func (c *wsConn) Send(e event.Event) error {
	data, err := e.Marshal()
	if err != nil {
		return err
	}

	select {
	case c.send <- data:
		return nil
	case <-c.closed:
		return websocket.ErrCloseSent
	default:
		// Slow consumer; the hub closes us on error.
		return websocket.ErrCloseSent
	}
}

func (c *wsConn) Close() {
	c.closeOnce.Do(func() {
		close(c.closed)
	})
}

// writePump serializes all writes to the peer. On close it flushes whatever
// is still queued so rejection events reach the peer before the close frame.
func (c *wsConn) writePump() {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.closed:
			for {
				select {
				case data := <-c.send:
					c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
					c.conn.WriteMessage(websocket.TextMessage, data)
				default:
					c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
					c.conn.WriteMessage(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
					return
				}
			}
		}
	}
}

// readPump feeds inbound envelopes to the router until the peer goes away,
// then runs the disconnect path.
func (c *wsConn) readPump(router *Router) {
	defer func() {
		router.HandleDisconnect(c.id)
		c.Close()
	}()

	c.conn.SetReadLimit(wsMaxMessage)
	c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		e, err := event.Unmarshal(data)
		if err != nil {
			l4g.Debug("[ws] conn(%d) bad envelope: %v", c.id, err)
			continue
		}
		router.HandleEvent(c.id, e)
	}
}

// WebSocketHandler returns the http handler of the browser transport.
func (s *Server) WebSocketHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			l4g.Warn("[ws] upgrade failed: %v", err)
			return
		}

		c := &wsConn{
			id:     s.hub.NextID(),
			conn:   conn,
			send:   make(chan []byte, 256),
			closed: make(chan struct{}),
		}

		go c.writePump()

		if !s.router.HandleConnect(c) {
			c.Close()
			return
		}

		l4g.Debug("[ws] conn(%d) accepted from [%s]", c.id, conn.RemoteAddr())
		go c.readPump(s.router)
	})
}
