// Package arena holds the shared data vocabulary of a session: entities,
// per-tick actions and the replay history captured when a room closes.
// It carries no behavior beyond spawning, so every other package can depend
// on it without cycles.
package arena

import "math/rand"

// ActionType enumerates the movement commands a client may submit per tick.
type ActionType int

const (
	// ActionNone is the explicit no-op submission. It is also the value an
	// unknown wire type is normalized to.
	ActionNone ActionType = -1

	ActionMoveLeft   ActionType = 0
	ActionMoveTop    ActionType = 1
	ActionMoveRight  ActionType = 2
	ActionMoveBottom ActionType = 3
)

// Valid reports whether t is one of the four known movement commands.
func (t ActionType) Valid() bool {
	return t >= ActionMoveLeft && t <= ActionMoveBottom
}

// Action is one client's submission for one tick.
type Action struct {
	EntityID int        `json:"entityId"`
	Type     ActionType `json:"type"`
	Delta    float64    `json:"_dt"` // seconds since the client's previous submission
}

// Position is a point inside the arena.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Entity is one client's avatar for the duration of a session. The identifier
// is the seat index inside the room, assigned at room start in join order.
type Entity struct {
	ID       int      `json:"id"`
	ClientID string   `json:"clientId"`
	Color    string   `json:"color"`
	Position Position `json:"position"`
	Radius   int      `json:"radius"`
}

// History is the replay payload of a closed session: the entity snapshot
// taken at start plus the full ordered action log.
type History struct {
	Entities []Entity `json:"entities"`
	Actions  []Action `json:"actions"`
}

// Settings are the spawn parameters of an arena.
type Settings struct {
	Width  int
	Height int
	Radius int
	Colors []string
}

// Spawn creates the entity for seat id, at a pseudo-random position clamped
// so the full radius stays inside the arena, colored by cycling the palette.
func Spawn(rnd *rand.Rand, id int, clientID string, s Settings) Entity {
	return Entity{
		ID:       id,
		ClientID: clientID,
		Color:    s.Colors[id%len(s.Colors)],
		Position: Position{
			X: randomInt(rnd, s.Radius, s.Width-s.Radius),
			Y: randomInt(rnd, s.Radius, s.Height-s.Radius),
		},
		Radius: s.Radius,
	}
}

// randomInt returns a random integer in [min, max].
func randomInt(rnd *rand.Rand, min, max int) int {
	return min + rnd.Intn(max-min+1)
}
