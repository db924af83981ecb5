// A headless native client: connects over KCP, requests matchmaking and
// plays a session by answering every update broadcast with a submission for
// the next tick. Useful for smoke-testing a deployment without a browser.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"net"
	"time"

	"github.com/xtaci/kcp-go"

	"lockstep-arena/event"
	"lockstep-arena/pkg/packet/json_packet"
)

var (
	addr = flag.String("kcp", "127.0.0.1:10086", "server kcp address")
	idle = flag.Bool("idle", false, "submit no-op actions only")
)

func send(c net.Conn, e event.Event) {
	p := json_packet.NewPacket(e)
	if p == nil {
		panic("unencodable event")
	}
	if _, err := c.Write(p.Serialize()); err != nil {
		panic(fmt.Sprintf("write error: %s", err))
	}
}

func submit(c net.Conn, tick, entityID int) {
	action := event.ActionInput{EntityID: entityID}
	if !*idle {
		t := rand.Intn(4)
		dt := 1.0 / 60
		action.Type = &t
		action.Delta = &dt
	}
	send(c, event.New(event.Update, event.UpdateRequest{
		Tick:   tick,
		Action: action,
	}))
}

func main() {
	flag.Parse()

	c, err := kcp.Dial(*addr)
	if err != nil {
		panic(err)
	}
	defer c.Close()

	proto := &json_packet.EventProtocol{}

	var clientID string
	entityID := -1

	for {
		p, err := proto.ReadPacket(c)
		if err != nil {
			fmt.Println("read error:", err)
			return
		}

		e, err := p.(*json_packet.Packet).Event()
		if err != nil {
			fmt.Println("bad envelope:", err)
			continue
		}

		switch e.Name {
		case event.Connected:
			var data event.ConnectedData
			if err := e.Decode(&data); err != nil {
				panic(err)
			}
			clientID = data.ClientID
			fmt.Println("connected as", clientID)
			send(c, event.Event{Name: event.Matching})

		case event.ConnectFailed, event.MatchingFail:
			var data event.Info
			e.Decode(&data)
			fmt.Println(e.Name+":", data.Info)
			return

		case event.ClientJoined:
			var data event.ClientJoinedData
			e.Decode(&data)
			fmt.Println(data.Info)

		case event.Start:
			var data event.StartData
			if err := e.Decode(&data); err != nil {
				panic(err)
			}
			for _, ent := range data.Entities {
				if ent.ClientID == clientID {
					entityID = ent.ID
				}
			}
			fmt.Printf("session started, %d entities, my seat %d\n", len(data.Entities), entityID)
			submit(c, 0, entityID)

		case event.Update:
			var data event.UpdateData
			if err := e.Decode(&data); err != nil {
				panic(err)
			}
			submit(c, data.Tick+1, entityID)

		case event.ClientLeft:
			var data event.ClientLeftData
			e.Decode(&data)
			fmt.Println(data.Info)

		case event.RoomClosed:
			var data event.RoomClosedData
			e.Decode(&data)
			fmt.Printf("%s, replay of %d actions over %d entities\n",
				data.Info, len(data.History.Actions), len(data.History.Entities))
			entityID = -1
			// back to idle; match again after a breather
			time.Sleep(time.Second)
			send(c, event.Event{Name: event.Matching})
		}
	}
}
