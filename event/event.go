// Package event defines the wire catalogue: a JSON event envelope plus the
// payload of every message exchanged with clients. The same envelope is sent
// as a websocket text frame and as the body of a length-prefixed packet on
// byte-stream transports.
package event

import "encoding/json"

// Server to client event names.
const (
	Connected     = "connected"
	ConnectFailed = "connectFailed"
	ClientJoined  = "clientJoined"
	MatchingFail  = "matchingFailed"
	Start         = "start"
	Update        = "update" // also client to server, see UpdateRequest
	ClientLeft    = "clientLeft"
	RoomClosed    = "roomClosed"
)

// Client to server event names.
const (
	Matching = "matching"
)

// Event is the wire envelope.
type Event struct {
	Name string          `json:"event"`
	Data json.RawMessage `json:"data,omitempty"`
}

// New builds an envelope around a payload. It panics when the payload does
// not marshal, which can only be a programming error: every payload type in
// this package marshals.
func New(name string, payload interface{}) Event {
	e := Event{Name: name}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			panic(err)
		}
		e.Data = data
	}
	return e
}

// Decode unmarshals the envelope payload into v.
func (e Event) Decode(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// Marshal serializes the whole envelope.
func (e Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// Unmarshal parses a whole envelope.
func Unmarshal(data []byte) (Event, error) {
	var e Event
	err := json.Unmarshal(data, &e)
	return e, err
}
