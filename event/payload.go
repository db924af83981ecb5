package event

import "lockstep-arena/arena"

// Info is the payload of events that carry a human-readable note only
// (connectFailed, matchingFailed).
type Info struct {
	Info string `json:"info"`
}

// ConnectedData acknowledges a registered connection.
type ConnectedData struct {
	Info     string `json:"info"`
	ClientID string `json:"clientId"`
}

// ClientJoinedData announces a new room member to the whole room group.
type ClientJoinedData struct {
	Info         string `json:"info"`
	ClientNumber int    `json:"clientNumber"`
}

// StartData carries the entity snapshot of a freshly started session.
type StartData struct {
	Entities []arena.Entity `json:"entities"`
}

// ActionInput is the client-submitted action of an UpdateRequest. Type is a
// pointer so an absent field is distinguishable from moveLeft (0); absent or
// out-of-range types are normalized to the none sentinel.
type ActionInput struct {
	EntityID int      `json:"entityId"`
	Type     *int     `json:"type,omitempty"`
	Delta    *float64 `json:"_dt,omitempty"`
}

// UpdateRequest is the per-tick submission of one client.
type UpdateRequest struct {
	Tick   int         `json:"tick"`
	Action ActionInput `json:"action"`
}

// UpdateData broadcasts a completed tick slice to the room group.
type UpdateData struct {
	Tick    int            `json:"tick"`
	Actions []arena.Action `json:"actions"`
}

// ClientLeftData announces a departure to the remaining room members.
type ClientLeftData struct {
	Info         string `json:"info"`
	ClientNumber int    `json:"clientNumber"`
}

// RoomClosedData carries the replay history of the closed session.
type RoomClosedData struct {
	Info    string        `json:"info"`
	History arena.History `json:"history"`
}
