// Package json_packet frames JSON event envelopes for byte-stream
// transports (TCP/KCP). Websocket connections carry the same envelope as a
// text frame and do not need this codec.
package json_packet

import (
	"encoding/binary"
	"errors"
	"io"

	l4g "github.com/alecthomas/log4go"

	"lockstep-arena/event"
	"lockstep-arena/pkg/network"
)

const (
	DataLen = 2

	MaxPacketLen = 16 * 1024
)

/*

|--totalDataLen(uint16)--|--------------data--------------|
|-------------2----------|----------(totalDataLen)--------|

data is one JSON event envelope: {"event":"...","data":{...}}

*/

// Packet is one framed event envelope.
type Packet struct {
	data []byte
}

func (p *Packet) GetData() []byte {
	return p.data
}

func (p *Packet) Serialize() []byte {
	buff := make([]byte, DataLen, DataLen+len(p.data))
	binary.BigEndian.PutUint16(buff, uint16(len(p.data)))
	return append(buff, p.data...)
}

// Event parses the framed envelope.
func (p *Packet) Event() (event.Event, error) {
	return event.Unmarshal(p.data)
}

// NewPacket frames an event envelope. Returns nil if the envelope does not
// marshal or exceeds the frame limit.
func NewPacket(e event.Event) *Packet {
	data, err := e.Marshal()
	if err != nil {
		l4g.Error("[json_packet] marshal event=[%s] error: %v", e.Name, err)
		return nil
	}
	if len(data) > MaxPacketLen {
		l4g.Error("[json_packet] event=[%s] too large: %d", e.Name, len(data))
		return nil
	}

	return &Packet{data: data}
}

// EventProtocol reads length-prefixed event frames off a stream.
type EventProtocol struct {
}

func (p *EventProtocol) ReadPacket(r io.Reader) (network.Packet, error) {

	buff := make([]byte, DataLen)

	// data length
	if _, err := io.ReadFull(r, buff); err != nil {
		return nil, err
	}
	dataLen := binary.BigEndian.Uint16(buff)

	if int(dataLen) > MaxPacketLen {
		return nil, errors.New("data max")
	}

	msg := &Packet{}

	// data
	if dataLen > 0 {
		msg.data = make([]byte, dataLen)
		if _, err := io.ReadFull(r, msg.data); err != nil {
			return nil, err
		}
	}

	return msg, nil
}
