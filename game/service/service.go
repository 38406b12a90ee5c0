package service

import (
	"context"

	"github.com/Inselaffe03/mortail-coil-arena/game/engine"
	"github.com/Inselaffe03/mortail-coil-arena/game/level"
)

// GameService defines all game-related operations exposed to transports.
//
// There is exactly one game instance per process; the service serializes
// every operation on it, so the slide loop and the win/stuck evaluation
// are atomic with respect to all other requests.
//
// Failed operations return both a structured result (success flag plus a
// human-readable message, ready for the response body) and the underlying
// engine sentinel, which the transport maps to a status code.
type GameService interface {
	// Game state
	GetState(ctx context.Context) *engine.GameState

	// Levels
	ListLevels(ctx context.Context) []level.Info
	LoadLevel(ctx context.Context, id int) (*OpResult, error)

	// Game operations
	Start(ctx context.Context, x, y int) (*OpResult, error)
	Move(ctx context.Context, direction string) (*MoveResult, error)
	Reset(ctx context.Context) (*OpResult, error)
}
