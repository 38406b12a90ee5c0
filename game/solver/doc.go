// Package solver implements an exhaustive depth-first search over start
// positions and slide sequences, used by cmd/analyze to check whether
// levels are solvable. The search works on its own flat board
// representation for cheap backtracking.
package solver
