package engine

// canStep reports whether a single step from the player's position in the
// given direction lands in bounds on a non-blocked, non-visited cell. It
// is the shared predicate for both the slide loop and stuck detection.
func (gs *GameState) canStep(d Direction) bool {
	v := vectors[d]
	x, y := gs.PlayerX+v.dx, gs.PlayerY+v.dy
	if x < 0 || x >= gs.Width || y < 0 || y >= gs.Height {
		return false
	}
	cell := gs.Board[y][x]
	return !cell.Blocked && !cell.Visited
}

// hasLegalStep scans all four directions with the slide predicate.
func (gs *GameState) hasLegalStep() bool {
	for _, d := range directions {
		if gs.canStep(d) {
			return true
		}
	}
	return false
}

// CanStep is the exported form of the slide predicate. It additionally
// requires an active game, so it is always false before StartGame and in
// terminal states.
func (e *GameEngine) CanStep(d Direction) bool {
	s := e.state
	if !s.Started || s.Finished {
		return false
	}
	return s.canStep(d)
}

// Move slides the player in the given direction until the next cell is out
// of bounds, blocked, or already visited. Every entered cell is marked
// visited and counted. A move that cannot take even one step fails with
// ErrNoMovement and mutates nothing.
//
// After movement the terminal checks run: full coverage wins; otherwise,
// if no direction offers a legal step, the game finishes unwon (stuck).
func (e *GameEngine) Move(d Direction) error {
	s := e.state
	if !s.Started || s.Finished {
		return ErrNotActive
	}

	v := vectors[d]
	steps := 0
	for s.canStep(d) {
		s.PlayerX += v.dx
		s.PlayerY += v.dy
		s.Board[s.PlayerY][s.PlayerX].Visited = true
		s.VisitedCount++
		steps++
	}

	if steps == 0 {
		return ErrNoMovement
	}

	if s.VisitedCount == s.TotalCells {
		s.Finished = true
		s.Won = true
	} else if !s.hasLegalStep() {
		s.Finished = true
	}

	e.notify()
	return nil
}
