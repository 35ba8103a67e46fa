package engine

import "sync"

type gridDims struct {
	rows, cols int
}

// tourCache memoizes BestWarnsdorffTour per grid size; the result depends only
// on geometry.
var tourCache = struct {
	sync.Mutex
	plans map[gridDims]TourPlan
}{plans: make(map[gridDims]TourPlan)}

// WarnsdorffTour builds a greedy open knight's tour from start. At each step
// it advances to the unvisited neighbor with the fewest unvisited onward
// neighbors; ties go to the earliest neighbor in offset-table order.
func WarnsdorffTour(rows, cols int, start Position) []Position {
	if start.Row < 0 || start.Row >= rows || start.Col < 0 || start.Col >= cols {
		return nil
	}

	visited := make([]bool, rows*cols)
	idx := func(p Position) int { return p.Row*cols + p.Col }

	unvisited := func(p Position) []Position {
		all := KnightNeighbors(p, rows, cols)
		out := all[:0]
		for _, n := range all {
			if !visited[idx(n)] {
				out = append(out, n)
			}
		}
		return out
	}

	path := []Position{start}
	visited[idx(start)] = true
	current := start

	for {
		neighbors := unvisited(current)
		if len(neighbors) == 0 {
			break
		}

		next := neighbors[0]
		best := len(unvisited(next))
		for _, n := range neighbors[1:] {
			if d := len(unvisited(n)); d < best {
				next, best = n, d
			}
		}

		visited[idx(next)] = true
		path = append(path, next)
		current = next
	}

	return path
}

// BestWarnsdorffTour runs WarnsdorffTour from every cell in row-major order and
// keeps the first longest path. Results are cached per (rows, cols).
func BestWarnsdorffTour(rows, cols int) TourPlan {
	key := gridDims{rows, cols}

	tourCache.Lock()
	if plan, ok := tourCache.plans[key]; ok {
		tourCache.Unlock()
		return plan.clone()
	}
	tourCache.Unlock()

	plan := TourPlan{Rows: rows, Cols: cols}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			start := Position{Row: r, Col: c}
			path := WarnsdorffTour(rows, cols, start)
			if len(path) > plan.Length {
				plan.Start = start
				plan.Path = path
				plan.Length = len(path)
			}
		}
	}

	tourCache.Lock()
	tourCache.plans[key] = plan
	tourCache.Unlock()

	return plan.clone()
}

// EstimateMaxTour returns the heuristic maximum path length for a rows×cols
// grid. It is 0 when either dimension is below 1.
func EstimateMaxTour(rows, cols int) int {
	if rows < 1 || cols < 1 {
		return 0
	}
	return BestWarnsdorffTour(rows, cols).Length
}

func (p TourPlan) clone() TourPlan {
	p.Path = append([]Position(nil), p.Path...)
	return p
}
