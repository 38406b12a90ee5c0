package engine

import "errors"

// Game rule failures. All are non-fatal: the engine leaves the state
// untouched when returning any of them, and the request layer maps them to
// transport status codes.
var (
	ErrAlreadyStarted   = errors.New("game already started")
	ErrOutOfBounds      = errors.New("position is outside the grid")
	ErrBlockedCell      = errors.New("cell is blocked")
	ErrNotActive        = errors.New("no active game")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrNoMovement       = errors.New("no movement possible in that direction")
)
