// Package engine implements the core game logic of the sliding coil
// puzzle.
//
// The player occupies a cell on a rectangular grid with some cells
// pre-blocked. A move slides the player in a cardinal direction until the
// next cell is out of bounds, blocked, or already visited; the goal is to
// visit every playable cell exactly once.
//
// Core Types:
//
// The Engine interface defines the contract for game operations,
// implemented by GameEngine. GameState is the single mutable game
// instance; it is rebuilt wholesale from a level.Definition on every load
// or reset.
//
// Usage:
//
//	catalog := level.DefaultCatalog()
//
//	eng, err := engine.NewEngine(catalog)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	eng.StartGame(0, 0)
//	err = eng.Move(engine.Right)
//	state := eng.Snapshot()
//
// Game Rules:
//
// Starting marks the start cell visited. Each successful move visits at
// least one new cell. The game ends won when every playable cell has been
// visited, or stuck when no direction offers a legal step. Terminal states
// only leave via LoadLevel or Reset.
//
// The engine emits a deep-copied snapshot to subscribed observers after
// every successful mutating operation; failures never notify and never
// mutate.
package engine
