package engine

import (
	"strings"

	"github.com/Inselaffe03/mortail-coil-arena/game/level"
)

// Direction is one of the four cardinal move directions.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// directions lists all directions in a fixed order, used by the stuck scan.
var directions = [...]Direction{Up, Down, Left, Right}

// vectors maps each direction to its unit step on the grid. The y axis
// grows downward, matching row-major board storage.
var vectors = map[Direction]struct{ dx, dy int }{
	Up:    {0, -1},
	Down:  {0, 1},
	Left:  {-1, 0},
	Right: {1, 0},
}

// ParseDirection converts a request token into a Direction. Tokens are
// matched case-insensitively; anything else fails with ErrInvalidDirection.
func ParseDirection(token string) (Direction, error) {
	switch strings.ToLower(token) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	default:
		return 0, ErrInvalidDirection
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Cell is a single board cell. Blocked is fixed at board construction;
// Visited flips to true when the player enters the cell. Blocked cells are
// constructed with Visited already true, so a blocked cell can never be
// entered and never counts toward progress.
type Cell struct {
	Blocked bool `json:"blocked"`
	Visited bool `json:"visited"`
}

// GameState is the complete state of the single game instance. The board
// is replaced wholesale on every level load or reset.
type GameState struct {
	LevelID      int      `json:"level_id"`
	Width        int      `json:"width"`
	Height       int      `json:"height"`
	Board        [][]Cell `json:"board"`
	PlayerX      int      `json:"player_x"`
	PlayerY      int      `json:"player_y"`
	Started      bool     `json:"started"`
	Finished     bool     `json:"finished"`
	Won          bool     `json:"won"`
	VisitedCount int      `json:"visited_count"`
	TotalCells   int      `json:"total_cells"`
}

// newGameState builds a fresh state from a level definition: 'X' cells
// become blocked (and pre-visited), everything else open and unvisited.
// The player is unplaced at (-1,-1) until StartGame.
func newGameState(def level.Definition) *GameState {
	board := make([][]Cell, def.Height)
	total := 0
	for y := range board {
		board[y] = make([]Cell, def.Width)
		for x := range board[y] {
			if def.BlockedAt(x, y) {
				board[y][x] = Cell{Blocked: true, Visited: true}
			} else {
				total++
			}
		}
	}

	return &GameState{
		LevelID:    def.ID,
		Width:      def.Width,
		Height:     def.Height,
		Board:      board,
		PlayerX:    -1,
		PlayerY:    -1,
		TotalCells: total,
	}
}

// Clone returns a deep copy of the state, safe to hand to observers and
// transports while the engine keeps mutating the original.
func (gs *GameState) Clone() *GameState {
	clone := *gs
	clone.Board = make([][]Cell, len(gs.Board))
	for y, row := range gs.Board {
		clone.Board[y] = make([]Cell, len(row))
		copy(clone.Board[y], row)
	}
	return &clone
}
