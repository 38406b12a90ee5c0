package level

import (
	"errors"
	"fmt"
)

var (
	ErrLevelNotFound = errors.New("level not found")
	ErrInvalidLevel  = errors.New("invalid level definition")
)

// Blocked is the cell character that marks a permanently blocked cell.
// Any other character in a definition's cell string is an open cell.
const Blocked = 'X'

// Definition describes a single puzzle level. Definitions are immutable
// once loaded; the engine builds a fresh mutable board from one on every
// level load.
type Definition struct {
	ID     int    `json:"id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Cells  string `json:"cells"`
}

// Info is the listing view of a level: identity and dimensions without
// the cell data.
type Info struct {
	ID     int `json:"id"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// PlayableCells returns the number of non-blocked cells in the definition.
func (d Definition) PlayableCells() int {
	n := 0
	for _, c := range d.Cells {
		if c != Blocked {
			n++
		}
	}
	return n
}

// BlockedAt reports whether the cell at (x, y) is blocked. Coordinates are
// row-major with (0,0) in the top-left corner.
func (d Definition) BlockedAt(x, y int) bool {
	return d.Cells[y*d.Width+x] == Blocked
}

// Validate checks a definition for structural correctness.
func Validate(d Definition) error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: level %d: dimensions must be positive, got %dx%d",
			ErrInvalidLevel, d.ID, d.Width, d.Height)
	}
	if len(d.Cells) != d.Width*d.Height {
		return fmt.Errorf("%w: level %d: cell string length %d does not match %dx%d grid",
			ErrInvalidLevel, d.ID, len(d.Cells), d.Width, d.Height)
	}
	return nil
}
