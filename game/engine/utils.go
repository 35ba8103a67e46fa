package engine

import "fmt"

// VisitedSequence returns the visited positions ordered by their value. The
// second result is false if the values are not exactly 1..k with no repeats.
func VisitedSequence(g Grid) ([]Position, bool) {
	k := g.CountVisited()
	seq := make([]Position, k)
	seen := make([]bool, k+1)

	for i, v := range g.Cells {
		if v == 0 {
			continue
		}
		if v < 0 || v > k || seen[v] {
			return nil, false
		}
		seen[v] = true
		seq[v-1] = Position{Row: i / g.Cols, Col: i % g.Cols}
	}
	return seq, true
}

// IsKnightPath reports whether consecutive positions are knight moves and no
// position repeats.
func IsKnightPath(path []Position) bool {
	seen := make(map[Position]bool, len(path))
	for i, p := range path {
		if seen[p] {
			return false
		}
		seen[p] = true
		if i > 0 && !IsKnightDisplacement(path[i-1], p) {
			return false
		}
	}
	return true
}

// FormatGameOver renders the end-of-game summary line for a config.
func FormatGameOver(config *GameConfig, state *GameState) string {
	format := "Moves: %d | Maximum possible: %d"
	if config != nil && config.Messages.GameOver != "" {
		format = config.Messages.GameOver
	}
	return fmt.Sprintf(format, state.MovesMade(), state.MaxMoves)
}
