package engine

import (
	"fmt"

	"github.com/Inselaffe03/mortail-coil-arena/game/level"
)

// Observer receives a full state snapshot after every successful mutating
// operation. Failed operations emit nothing. Implementations must not
// block: the engine calls observers synchronously.
type Observer interface {
	GameStateChanged(state *GameState)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(state *GameState)

func (f ObserverFunc) GameStateChanged(state *GameState) { f(state) }

// Engine provides the main interface for game operations.
type Engine interface {
	// Game state
	State() *GameState
	Snapshot() *GameState

	// Lifecycle
	LoadLevel(id int) error
	StartGame(x, y int) error
	Reset() error

	// Movement
	Move(direction Direction) error
	CanStep(direction Direction) bool

	// Observers
	Subscribe(o Observer)
}

// GameEngine implements the Engine interface. It owns the single mutable
// game state and is not safe for concurrent use; callers serialize access
// (the service layer does this with a mutex).
type GameEngine struct {
	catalog   *level.Catalog
	state     *GameState
	observers []Observer
}

// NewEngine creates an engine over the given catalog and loads the first
// level, so the engine always holds a valid state. Observers passed here
// do not receive the initial state; transports pull it on connect.
func NewEngine(catalog *level.Catalog, observers ...Observer) (*GameEngine, error) {
	first, ok := catalog.First()
	if !ok {
		return nil, fmt.Errorf("level catalog is empty")
	}

	return &GameEngine{
		catalog:   catalog,
		state:     newGameState(first),
		observers: observers,
	}, nil
}

// Subscribe registers an observer for state-change notifications.
func (e *GameEngine) Subscribe(o Observer) {
	e.observers = append(e.observers, o)
}

// State returns the live game state. Mutating it bypasses the engine;
// transports should use Snapshot instead.
func (e *GameEngine) State() *GameState {
	return e.state
}

// Snapshot returns a deep copy of the current state.
func (e *GameEngine) Snapshot() *GameState {
	return e.state.Clone()
}

// LoadLevel replaces the whole game state with a fresh board built from
// the requested level. On a not-found error the current state is left
// untouched.
func (e *GameEngine) LoadLevel(id int) error {
	def, err := e.catalog.Get(id)
	if err != nil {
		return err
	}

	e.state = newGameState(def)
	e.notify()
	return nil
}

// StartGame places the player on the given cell and marks it visited.
// Precondition order: already-started, out-of-bounds, blocked-cell.
func (e *GameEngine) StartGame(x, y int) error {
	s := e.state
	if s.Started {
		return ErrAlreadyStarted
	}
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height {
		return ErrOutOfBounds
	}
	if s.Board[y][x].Blocked {
		return ErrBlockedCell
	}

	s.PlayerX, s.PlayerY = x, y
	s.Started = true
	s.Board[y][x].Visited = true
	// First visit of the game: absolute assignment, not an increment.
	s.VisitedCount = 1

	e.notify()
	return nil
}

// Reset rebuilds the current level from its definition, equivalent to
// loading it again. The level was already loaded once, so the lookup
// cannot fail in practice.
func (e *GameEngine) Reset() error {
	return e.LoadLevel(e.state.LevelID)
}

// notify pushes one shared snapshot to all observers.
func (e *GameEngine) notify() {
	if len(e.observers) == 0 {
		return
	}
	snapshot := e.state.Clone()
	for _, o := range e.observers {
		o.GameStateChanged(snapshot)
	}
}
