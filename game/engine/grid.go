package engine

// NewGrid creates an all-zero grid. Non-positive dimensions yield an empty grid
// on which every position is out of bounds.
func NewGrid(rows, cols int) Grid {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return Grid{
		Rows:  rows,
		Cols:  cols,
		Cells: make([]int, rows*cols),
	}
}

// InBounds reports whether pos lies inside the grid.
func (g Grid) InBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < g.Rows && pos.Col >= 0 && pos.Col < g.Cols
}

// At returns the value stored at pos, or false when pos is out of bounds.
func (g Grid) At(pos Position) (int, bool) {
	if !g.InBounds(pos) {
		return 0, false
	}
	return g.Cells[g.index(pos)], true
}

// IsEmpty reports whether pos is in bounds and unvisited.
func (g Grid) IsEmpty(pos Position) bool {
	v, ok := g.At(pos)
	return ok && v == 0
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	cells := make([]int, len(g.Cells))
	copy(cells, g.Cells)
	return Grid{Rows: g.Rows, Cols: g.Cols, Cells: cells}
}

// Rows2D returns a copy of the grid as nested rows, for display.
func (g Grid) Rows2D() [][]int {
	out := make([][]int, g.Rows)
	for r := 0; r < g.Rows; r++ {
		out[r] = append([]int(nil), g.Cells[r*g.Cols:(r+1)*g.Cols]...)
	}
	return out
}

// CountVisited returns the number of non-zero cells.
func (g Grid) CountVisited() int {
	count := 0
	for _, v := range g.Cells {
		if v != 0 {
			count++
		}
	}
	return count
}

// PositionOf returns the cell holding value, if any.
func (g Grid) PositionOf(value int) (Position, bool) {
	for i, v := range g.Cells {
		if v == value {
			return Position{Row: i / g.Cols, Col: i % g.Cols}, true
		}
	}
	return Position{}, false
}

func (g Grid) index(pos Position) int {
	return pos.Row*g.Cols + pos.Col
}

func (g *Grid) set(pos Position, value int) {
	g.Cells[g.index(pos)] = value
}
