package engine

// knightOffsets is the single offset table shared by the validator, the
// reachability scan and the tour estimator. Its order is the Warnsdorff
// tie-break order.
var knightOffsets = [8][2]int{
	{2, 1}, {2, -1}, {-2, 1}, {-2, -1},
	{1, 2}, {1, -2}, {-1, 2}, {-1, -2},
}

// IsKnightDisplacement reports whether from→to is an L-shaped knight step.
func IsKnightDisplacement(from, to Position) bool {
	dr := abs(to.Row - from.Row)
	dc := abs(to.Col - from.Col)
	return (dr == 2 && dc == 1) || (dr == 1 && dc == 2)
}

// KnightNeighbors returns the in-bounds knight neighbors of pos for a
// rows×cols grid, in offset-table order.
func KnightNeighbors(pos Position, rows, cols int) []Position {
	neighbors := make([]Position, 0, len(knightOffsets))
	for _, off := range knightOffsets {
		n := Position{Row: pos.Row + off[0], Col: pos.Col + off[1]}
		if n.Row >= 0 && n.Row < rows && n.Col >= 0 && n.Col < cols {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// CheckMove classifies a proposed click without mutating the state.
func (gs *GameState) CheckMove(pos Position) RejectReason {
	if gs.Terminal {
		return GameOver
	}
	if !gs.Grid.InBounds(pos) {
		return OutOfBounds
	}
	if !gs.Grid.IsEmpty(pos) {
		return Occupied
	}
	// First move may start anywhere.
	if gs.LastClicked == nil {
		return Accepted
	}
	if !IsKnightDisplacement(*gs.LastClicked, pos) {
		return NotKnightMove
	}
	return Accepted
}

// IsValidMove reports whether pos may be clicked next.
func IsValidMove(gs *GameState, pos Position) bool {
	return gs.CheckMove(pos) == Accepted
}

// HasAnyValidMove reports whether some legal continuation exists from the
// last clicked cell. A state with no clicks always has one.
func HasAnyValidMove(gs *GameState) bool {
	if gs.LastClicked == nil {
		return gs.Grid.Rows > 0 && gs.Grid.Cols > 0
	}
	for _, n := range KnightNeighbors(*gs.LastClicked, gs.Grid.Rows, gs.Grid.Cols) {
		if gs.Grid.IsEmpty(n) {
			return true
		}
	}
	return false
}

// CandidateMoves lists the unvisited cells a knight's move away from the last
// click. It is empty before the first click and once the game is over.
func CandidateMoves(gs *GameState) []Position {
	if gs.LastClicked == nil || gs.Terminal {
		return nil
	}
	var candidates []Position
	for _, n := range KnightNeighbors(*gs.LastClicked, gs.Grid.Rows, gs.Grid.Cols) {
		if gs.Grid.IsEmpty(n) {
			candidates = append(candidates, n)
		}
	}
	return candidates
}

// ApplyMove numbers pos with the current counter if the move is legal and
// flips the terminal flag when no continuation remains. A rejected move leaves
// the state untouched.
func (gs *GameState) ApplyMove(pos Position) bool {
	if gs.CheckMove(pos) != Accepted {
		return false
	}

	gs.Grid.set(pos, gs.Counter)
	gs.Counter++
	last := pos
	gs.LastClicked = &last

	if !HasAnyValidMove(gs) {
		gs.Terminal = true
	}
	return true
}

// MovesMade returns the number of accepted moves.
func (gs *GameState) MovesMade() int {
	return gs.Counter - 1
}

// RefreshViews recomputes the helper views derived from the core state.
func (gs *GameState) RefreshViews() {
	gs.Candidates = CandidateMoves(gs)
}

// Clone returns a deep copy of the state.
func (gs *GameState) Clone() *GameState {
	c := *gs
	c.Grid = gs.Grid.Clone()
	if gs.LastClicked != nil {
		last := *gs.LastClicked
		c.LastClicked = &last
	}
	if gs.Candidates != nil {
		c.Candidates = append([]Position(nil), gs.Candidates...)
	}
	return &c
}

// abs returns the absolute value of x
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
