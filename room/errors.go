package room

import "errors"

var (
	// ErrCapacityExceeded rejects a connection when the registry is at the
	// deployment-wide client limit.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrInvalidState rejects an operation whose state-machine precondition
	// does not hold (matching while not idle, start while not full, ...).
	ErrInvalidState = errors.New("invalid state")

	// ErrNoRoomAvailable means no pending room had a free seat.
	ErrNoRoomAvailable = errors.New("no room available")

	// ErrRoomFull rejects a join on a room at capacity.
	ErrRoomFull = errors.New("room full")
)
