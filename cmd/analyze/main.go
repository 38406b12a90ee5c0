// Command analyze prints quick, human-readable statistics about a level
// file: dimensions, playable-cell counts, blocked ratios, and optionally
// whether each level is solvable according to an exhaustive slide search.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Inselaffe03/mortail-coil-arena/game/level"
	"github.com/Inselaffe03/mortail-coil-arena/game/solver"
)

var (
	levelsPath = flag.String("levels", "", "Path to a JSON level file (embedded classic set when empty)")
	solve      = flag.Bool("solve", false, "Search for a winning move sequence per level")
	budget     = flag.Int("budget", 2_000_000, "Search node budget per level")
)

func main() {
	flag.Parse()

	var catalog *level.Catalog
	var err error
	if *levelsPath != "" {
		catalog, err = level.LoadFile(*levelsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
			os.Exit(1)
		}
	} else {
		catalog = level.DefaultCatalog()
	}

	for _, info := range catalog.List() {
		def, err := catalog.Get(info.ID)
		if err != nil {
			continue
		}
		analyzeLevel(def)
	}
}

func analyzeLevel(def level.Definition) {
	fmt.Printf("\n=== Level %d ===\n", def.ID)

	total := def.Width * def.Height
	playable := def.PlayableCells()
	fmt.Printf("Grid: %d x %d (%d cells)\n", def.Width, def.Height, total)
	fmt.Printf("Playable: %d, blocked: %d (%.0f%% blocked)\n",
		playable, total-playable, float64(total-playable)/float64(total)*100)

	for y := 0; y < def.Height; y++ {
		fmt.Printf("  %s\n", def.Cells[y*def.Width:(y+1)*def.Width])
	}

	if !*solve {
		return
	}

	result := solver.Solve(def, *budget)
	switch {
	case result.Solvable:
		moves := make([]string, len(result.Solution.Moves))
		for i, m := range result.Solution.Moves {
			moves[i] = m.String()
		}
		fmt.Printf("Solvable: yes (%d nodes)\n", result.Nodes)
		fmt.Printf("  start (%d,%d): %s\n", result.Solution.StartX, result.Solution.StartY, strings.Join(moves, " "))
	case result.Exhausted:
		fmt.Printf("Solvable: unknown, search budget of %d nodes exhausted\n", *budget)
	default:
		fmt.Printf("Solvable: no (%d nodes)\n", result.Nodes)
	}
}
