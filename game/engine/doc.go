// Package engine provides the core game logic for the Knight Grid puzzle.
//
// The engine package implements:
//   - A flat row-major grid of visit numbers
//   - Knight-move validation against geometry and occupancy
//   - Terminal-state detection after each accepted move
//   - A Warnsdorff heuristic estimating the longest achievable path
//   - Configuration loading and validation
//
// Core Types:
//
// GameState owns the grid, the move counter, the last clicked position and
// the terminal flag. It changes only through ApplyMove, which validates before
// mutating and leaves the state untouched on rejection. IsValidMove,
// HasAnyValidMove and EstimateMaxTour are pure functions over grid geometry.
// GameEngine wraps a GameState with its configuration and a cumulative move
// history.
//
// Usage:
//
//	state := engine.NewGameState(10, 5)
//	state.ApplyMove(engine.Position{Row: 0, Col: 0})
//	state.ApplyMove(engine.Position{Row: 2, Col: 1})
//	if state.Terminal {
//		fmt.Println(engine.FormatGameOver(nil, state))
//	}
//
// Game Rules:
//
// The first click may land on any cell. Every later click must be an
// unvisited cell exactly one knight's move, (2,1) or (1,2), from the previous
// one. The game ends when no such cell remains, and the player's path length
// is compared with MaxMoves.
//
// The engine performs no I/O and no logging.
package engine
