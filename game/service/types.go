package service

// OpResult is the generic outcome of a state-mutating operation.
type OpResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// MoveResult is the outcome of a move command. On success it carries the
// player's new position, progress counters, and the terminal flags; on
// failure only the message is meaningful.
type MoveResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	Finished     bool   `json:"finished"`
	Won          bool   `json:"won"`
	PlayerX      int    `json:"player_x"`
	PlayerY      int    `json:"player_y"`
	VisitedCount int    `json:"visited_count"`
	TotalCells   int    `json:"total_cells"`
}
