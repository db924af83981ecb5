package kcp_server

import (
	"net"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/xtaci/kcp-go"

	"lockstep-arena/pkg/network"
)

const (
	latency = time.Millisecond * 100
)

type testCallback struct {
	numConn   uint32
	numMsg    uint32
	numDiscon uint32
}

func (t *testCallback) OnMessage(conn *network.Conn, msg network.Packet) bool {

	atomic.AddUint32(&t.numMsg, 1)

	conn.AsyncWritePacket(network.NewDefaultPacket([]byte("pong")), time.Second*1)
	return true
}

func (t *testCallback) OnConnect(conn *network.Conn) bool {
	id := atomic.AddUint32(&t.numConn, 1)
	conn.PutExtraData(id)
	return true
}

func (t *testCallback) OnClose(conn *network.Conn) {
	atomic.AddUint32(&t.numDiscon, 1)
}

func Test_KCPServer(t *testing.T) {

	callback := &testCallback{}
	server, err := ListenAndServe("127.0.0.1:10086", callback, &network.DefaultProtocol{})
	if nil != err {
		t.Fatal(err)
	}
	defer server.Stop()

	time.Sleep(time.Second)

	wg := sync.WaitGroup{}
	const max_con = 100
	for i := 0; i < max_con; i++ {
		wg.Add(1)
		time.Sleep(time.Nanosecond)
		go func() {
			defer wg.Done()

			c, e := kcp.Dial("127.0.0.1:10086")
			if nil != e {
				t.Error(e)
				return
			}
			defer c.Close()

			c.Write(network.NewDefaultPacket([]byte("ping")).Serialize())
			b := make([]byte, 1024)
			c.SetReadDeadline(time.Now().Add(latency))
			if _, e := c.Read(b); nil != e {
				t.Errorf("error:%s", e.Error())
			}
		}()
	}

	wg.Wait()
	time.Sleep(time.Second * 2)

	n := atomic.LoadUint32(&callback.numConn)
	if n != max_con {
		t.Errorf("numConn[%d] should be [%d]", n, max_con)
	}

	n = atomic.LoadUint32(&callback.numMsg)
	if n != max_con {
		t.Errorf("numMsg[%d] should be [%d]", n, max_con)
	}
}

type rejectCallback struct {
	testCallback
}

// OnConnect refuses every connection after queueing a rejection packet, the
// way the gate refuses a connection over capacity.
func (r *rejectCallback) OnConnect(conn *network.Conn) bool {
	conn.AsyncWritePacket(network.NewDefaultPacket([]byte("full")), time.Second)
	return false
}

func Test_TCPServer_RefusedConnGetsRejectionPacket(t *testing.T) {

	l, err := net.Listen("tcp", "127.0.0.1:10088")
	if nil != err {
		t.Fatal(err)
	}

	config := &network.Config{
		PacketReceiveChanLimit: 16,
		PacketSendChanLimit:    16,
		ConnReadTimeout:        time.Second,
		ConnWriteTimeout:       time.Second,
	}
	server := network.NewServer(config, &rejectCallback{}, &network.DefaultProtocol{})

	go server.Start(l, func(conn net.Conn, i *network.Server) *network.Conn {
		return network.NewConn(conn, server)
	})
	defer server.Stop()

	time.Sleep(time.Millisecond * 100)

	c, e := net.Dial("tcp", "127.0.0.1:10088")
	if nil != e {
		t.Fatal(e)
	}
	defer c.Close()

	// the rejection packet arrives before the close
	c.SetReadDeadline(time.Now().Add(time.Second))
	p, e := (&network.DefaultProtocol{}).ReadPacket(c)
	if nil != e {
		t.Fatalf("expected rejection packet, got error:%s", e.Error())
	}
	if body := string(p.(*network.DefaultPacket).GetBody()); body != "full" {
		t.Errorf("body[%s] should be [full]", body)
	}

	b := make([]byte, 16)
	if _, e := c.Read(b); nil == e {
		t.Error("connection should be closed after the rejection packet")
	}
}

func Test_TCPServer(t *testing.T) {

	l, err := net.Listen("tcp", "127.0.0.1:10087")
	if nil != err {
		t.Fatal(err)
	}

	config := &network.Config{
		PacketReceiveChanLimit: 1024,
		PacketSendChanLimit:    1024,
		ConnReadTimeout:        time.Millisecond * 50,
		ConnWriteTimeout:       time.Millisecond * 50,
	}

	callback := &testCallback{}
	server := network.NewServer(config, callback, &network.DefaultProtocol{})

	go server.Start(l, func(conn net.Conn, i *network.Server) *network.Conn {
		return network.NewConn(conn, server)
	})

	time.Sleep(time.Second)

	wg := sync.WaitGroup{}
	const max_con = 100
	for i := 0; i < max_con; i++ {
		wg.Add(1)
		time.Sleep(time.Nanosecond)
		go func() {
			defer wg.Done()
			c, e := net.Dial("tcp", "127.0.0.1:10087")
			if nil != e {
				t.Error(e)
				return
			}
			defer c.Close()
			c.Write(network.NewDefaultPacket([]byte("ping")).Serialize())
			b := make([]byte, 1024)
			c.SetReadDeadline(time.Now().Add(time.Second * 2))
			c.Read(b)
		}()
	}

	wg.Wait()
	server.Stop()

	n := atomic.LoadUint32(&callback.numConn)
	if n != max_con {
		t.Errorf("numConn[%d] should be [%d]", n, max_con)
	}

	n = atomic.LoadUint32(&callback.numMsg)
	if n != max_con {
		t.Errorf("numMsg[%d] should be [%d]", n, max_con)
	}
}
