package network

import (
	"errors"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrConnClosing   = errors.New("use of closed network connection")
	ErrWriteBlocking = errors.New("write packet was blocking")
	ErrReadBlocking  = errors.New("read packet was blocking")
)

// Conn wraps one raw connection with buffered read/write loops. The three
// loops (read, write, handle) exit together once closeChan closes.
type Conn struct {
	srv               *Server
	conn              net.Conn      // the raw connection
	extraData         atomic.Value  // save custom data bound to the connection
	closeOnce         sync.Once     // close the conn, once, per instance
	closeFlag         int32         // close flag
	closeChan         chan struct{} // close chanel
	packetSendChan    chan Packet   // packet send chanel
	packetReceiveChan chan Packet   // packet receive chanel
	callback          ConnCallback  // callback of this connection
}

// ConnCallback is an interface of methods that are used as callbacks on a connection
type ConnCallback interface {
	// OnConnect is called when the connection was accepted,
	// If the return value of false is closed
	OnConnect(*Conn) bool

	// OnMessage is called when the connection receives a packet,
	// If the return value of false is closed
	OnMessage(*Conn, Packet) bool

	// OnClose is called when the connection closed
	OnClose(*Conn)
}

// NewConn returns a new Conn instance
func NewConn(conn net.Conn, srv *Server) *Conn {
	return &Conn{
		srv:               srv,
		conn:              conn,
		callback:          srv.callback,
		closeChan:         make(chan struct{}),
		packetSendChan:    make(chan Packet, srv.config.PacketSendChanLimit),
		packetReceiveChan: make(chan Packet, srv.config.PacketReceiveChanLimit),
	}
}

// GetExtraData gets the extra data bound to the connection
func (c *Conn) GetExtraData() interface{} {
	return c.extraData.Load()
}

// PutExtraData binds extra data to the connection
func (c *Conn) PutExtraData(data interface{}) {
	c.extraData.Store(data)
}

// GetRawConn returns the raw net.Conn of the connection
func (c *Conn) GetRawConn() net.Conn {
	return c.conn
}

// SetCallback replaces the connection callback. Only legal inside OnConnect,
// before the handle loop dispatches the first message.
func (c *Conn) SetCallback(callback ConnCallback) {
	c.callback = callback
}

// Close closes the connection
func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		atomic.StoreInt32(&c.closeFlag, 1)
		close(c.closeChan)
		c.conn.Close()
		c.callback.OnClose(c)
	})
}

// IsClosed indicates whether or not the connection is closed
func (c *Conn) IsClosed() bool {
	return atomic.LoadInt32(&c.closeFlag) == 1
}

// AsyncWritePacket async writes a packet, this method will never block
func (c *Conn) AsyncWritePacket(p Packet, timeout time.Duration) (err error) {
	if c.IsClosed() {
		return ErrConnClosing
	}

	defer func() {
		if e := recover(); e != nil {
			err = ErrConnClosing
		}
	}()

	if timeout == 0 {
		select {
		case c.packetSendChan <- p:
			return nil

		default:
			return ErrWriteBlocking
		}
	}

	select {
	case c.packetSendChan <- p:
		return nil

	case <-c.closeChan:
		return ErrConnClosing

	case <-time.After(timeout):
		return ErrWriteBlocking
	}
}

// Do starts the three loops of the connection. It blocks in the caller's
// goroutine until OnConnect refuses the connection or any loop exits.
func (c *Conn) Do() {
	if !c.callback.OnConnect(c) {
		c.flushSendChan()
		c.Close()
		return
	}

	asyncDo(c.handleLoop, c.srv.waitGroup)
	asyncDo(c.readLoop, c.srv.waitGroup)
	c.writeLoop()
}

// flushSendChan writes already queued packets straight to the raw conn. A
// refused connection never starts its write loop, but a rejection packet
// queued by OnConnect must still reach the peer before the close.
func (c *Conn) flushSendChan() {
	for {
		select {
		case p := <-c.packetSendChan:
			if c.srv.config.ConnWriteTimeout > 0 {
				c.conn.SetWriteDeadline(time.Now().Add(c.srv.config.ConnWriteTimeout))
			}
			if _, err := c.conn.Write(p.Serialize()); err != nil {
				return
			}
		default:
			return
		}
	}
}

func (c *Conn) readLoop() {
	defer func() {
		recover()
		c.Close()
	}()

	for {
		select {
		case <-c.srv.exitChan:
			return

		case <-c.closeChan:
			return

		default:
		}

		if c.srv.config.ConnReadTimeout > 0 {
			c.conn.SetReadDeadline(time.Now().Add(c.srv.config.ConnReadTimeout))
		}
		p, err := c.srv.protocol.ReadPacket(c.conn)
		if err != nil {
			return
		}

		c.packetReceiveChan <- p
	}
}

func (c *Conn) writeLoop() {
	defer func() {
		recover()
		c.Close()
	}()

	for {
		select {
		case <-c.srv.exitChan:
			return

		case <-c.closeChan:
			return

		case p := <-c.packetSendChan:
			if c.IsClosed() {
				return
			}
			if c.srv.config.ConnWriteTimeout > 0 {
				c.conn.SetWriteDeadline(time.Now().Add(c.srv.config.ConnWriteTimeout))
			}
			if _, err := c.conn.Write(p.Serialize()); err != nil {
				return
			}
		}
	}
}

func (c *Conn) handleLoop() {
	defer func() {
		recover()
		c.Close()
	}()

	for {
		select {
		case <-c.srv.exitChan:
			return

		case <-c.closeChan:
			return

		case p := <-c.packetReceiveChan:
			if c.IsClosed() {
				return
			}
			if !c.callback.OnMessage(c, p) {
				return
			}
		}
	}
}

func asyncDo(fn func(), wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		fn()
		wg.Done()
	}()
}
