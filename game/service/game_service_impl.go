package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Inselaffe03/mortail-coil-arena/game/engine"
	"github.com/Inselaffe03/mortail-coil-arena/game/level"
)

// gameServiceImpl implements the GameService interface over the single
// engine instance. The mutex is the only serialization point for game
// mutations in the whole process.
type gameServiceImpl struct {
	engine  engine.Engine
	catalog *level.Catalog
	mu      sync.RWMutex
}

// NewGameService creates a new game service instance.
func NewGameService(eng engine.Engine, catalog *level.Catalog) GameService {
	return &gameServiceImpl{
		engine:  eng,
		catalog: catalog,
	}
}

// GetState returns a snapshot of the current game state.
func (s *gameServiceImpl) GetState(ctx context.Context) *engine.GameState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.engine.Snapshot()
}

// ListLevels enumerates the catalog in its stable load order.
func (s *gameServiceImpl) ListLevels(ctx context.Context) []level.Info {
	return s.catalog.List()
}

// LoadLevel replaces the active game with a fresh board for the given
// level.
func (s *gameServiceImpl) LoadLevel(ctx context.Context, id int) (*OpResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.engine.LoadLevel(id); err != nil {
		return &OpResult{Message: fmt.Sprintf("level %d not found", id)}, err
	}

	st := s.engine.State()
	return &OpResult{
		Success: true,
		Message: fmt.Sprintf("level %d loaded (%dx%d, %d playable cells)", st.LevelID, st.Width, st.Height, st.TotalCells),
	}, nil
}

// Start places the player on the given cell.
func (s *gameServiceImpl) Start(ctx context.Context, x, y int) (*OpResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.engine.StartGame(x, y); err != nil {
		return &OpResult{Message: failureMessage(err)}, err
	}

	return &OpResult{
		Success: true,
		Message: fmt.Sprintf("game started at (%d,%d)", x, y),
	}, nil
}

// Move executes a single slide command.
func (s *gameServiceImpl) Move(ctx context.Context, direction string) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := engine.ParseDirection(direction)
	if err != nil {
		return &MoveResult{Message: fmt.Sprintf("invalid direction %q", direction)}, err
	}

	if err := s.engine.Move(d); err != nil {
		return &MoveResult{Message: failureMessage(err)}, err
	}

	st := s.engine.State()
	return &MoveResult{
		Success:      true,
		Message:      moveMessage(st),
		Finished:     st.Finished,
		Won:          st.Won,
		PlayerX:      st.PlayerX,
		PlayerY:      st.PlayerY,
		VisitedCount: st.VisitedCount,
		TotalCells:   st.TotalCells,
	}, nil
}

// Reset rebuilds the current level from scratch.
func (s *gameServiceImpl) Reset(ctx context.Context) (*OpResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.engine.Reset(); err != nil {
		return &OpResult{Message: failureMessage(err)}, err
	}

	st := s.engine.State()
	return &OpResult{
		Success: true,
		Message: fmt.Sprintf("level %d reset", st.LevelID),
	}, nil
}

// failureMessage turns an engine sentinel into the human-readable message
// reported in failure results.
func failureMessage(err error) string {
	switch {
	case errors.Is(err, engine.ErrAlreadyStarted):
		return "game already started; reset or load a level first"
	case errors.Is(err, engine.ErrOutOfBounds):
		return "start position is outside the grid"
	case errors.Is(err, engine.ErrBlockedCell):
		return "cannot start on a blocked cell"
	case errors.Is(err, engine.ErrNotActive):
		return "no active game; start a game first"
	case errors.Is(err, engine.ErrNoMovement):
		return "cannot move in that direction"
	default:
		return err.Error()
	}
}

// moveMessage summarizes a successful move, including the terminal
// outcome when the move ended the game.
func moveMessage(st *engine.GameState) string {
	switch {
	case st.Won:
		return fmt.Sprintf("you win! all %d cells visited", st.TotalCells)
	case st.Finished:
		return fmt.Sprintf("stuck at (%d,%d) with %d/%d cells visited", st.PlayerX, st.PlayerY, st.VisitedCount, st.TotalCells)
	default:
		return fmt.Sprintf("moved to (%d,%d), %d/%d cells visited", st.PlayerX, st.PlayerY, st.VisitedCount, st.TotalCells)
	}
}
