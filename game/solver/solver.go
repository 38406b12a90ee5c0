package solver

import (
	"github.com/Inselaffe03/mortail-coil-arena/game/engine"
	"github.com/Inselaffe03/mortail-coil-arena/game/level"
)

// deltas mirrors the engine's direction vectors for the search.
var deltas = map[engine.Direction][2]int{
	engine.Up:    {0, -1},
	engine.Down:  {0, 1},
	engine.Left:  {-1, 0},
	engine.Right: {1, 0},
}

var searchOrder = [...]engine.Direction{engine.Up, engine.Down, engine.Left, engine.Right}

// Solution is a winning start position and slide sequence for a level.
type Solution struct {
	StartX int
	StartY int
	Moves  []engine.Direction
}

// Result reports the outcome of an exhaustive search. When Exhausted is
// true the node budget ran out before the search space was covered, so
// Solvable=false is inconclusive.
type Result struct {
	Solvable  bool
	Solution  *Solution
	Nodes     int
	Exhausted bool
}

// search carries the mutable state of one depth-first search.
type search struct {
	width, height int
	blocked       []bool
	visited       []bool
	total         int
	maxNodes      int
	nodes         int
	exhausted     bool
	moves         []engine.Direction
}

// Solve searches for a winning start position and move sequence by
// depth-first search over all slides, visiting at most maxNodes search
// nodes. The slide rules match the engine: a slide runs until the next
// cell is out of bounds, blocked, or visited, and a move must cover at
// least one new cell.
func Solve(def level.Definition, maxNodes int) Result {
	s := &search{
		width:    def.Width,
		height:   def.Height,
		blocked:  make([]bool, def.Width*def.Height),
		visited:  make([]bool, def.Width*def.Height),
		maxNodes: maxNodes,
	}

	for y := 0; y < def.Height; y++ {
		for x := 0; x < def.Width; x++ {
			if def.BlockedAt(x, y) {
				s.blocked[y*def.Width+x] = true
				s.visited[y*def.Width+x] = true
			} else {
				s.total++
			}
		}
	}

	if s.total == 0 {
		return Result{Nodes: 0}
	}

	for y := 0; y < def.Height; y++ {
		for x := 0; x < def.Width; x++ {
			if s.blocked[y*def.Width+x] {
				continue
			}

			s.visited[y*def.Width+x] = true
			if s.dfs(x, y, 1) {
				moves := make([]engine.Direction, len(s.moves))
				copy(moves, s.moves)
				return Result{
					Solvable: true,
					Solution: &Solution{StartX: x, StartY: y, Moves: moves},
					Nodes:    s.nodes,
				}
			}
			s.visited[y*def.Width+x] = false

			if s.exhausted {
				return Result{Nodes: s.nodes, Exhausted: true}
			}
		}
	}

	return Result{Nodes: s.nodes}
}

// dfs extends the current path from (x, y) with covered cells already
// visited. It unwinds its own markings on backtrack.
func (s *search) dfs(x, y, covered int) bool {
	if covered == s.total {
		return true
	}

	s.nodes++
	if s.nodes > s.maxNodes {
		s.exhausted = true
		return false
	}

	for _, d := range searchOrder {
		entered, nx, ny := s.slide(x, y, d)
		if len(entered) == 0 {
			continue
		}

		s.moves = append(s.moves, d)
		if s.dfs(nx, ny, covered+len(entered)) {
			return true
		}
		s.moves = s.moves[:len(s.moves)-1]

		for _, idx := range entered {
			s.visited[idx] = false
		}

		if s.exhausted {
			return false
		}
	}

	return false
}

// slide marks and returns the cells entered by sliding from (x, y) in
// direction d, together with the final position.
func (s *search) slide(x, y int, d engine.Direction) ([]int, int, int) {
	dx, dy := deltas[d][0], deltas[d][1]
	var entered []int

	for {
		nx, ny := x+dx, y+dy
		if nx < 0 || nx >= s.width || ny < 0 || ny >= s.height {
			break
		}
		idx := ny*s.width + nx
		if s.visited[idx] {
			break
		}
		s.visited[idx] = true
		entered = append(entered, idx)
		x, y = nx, ny
	}

	return entered, x, y
}
