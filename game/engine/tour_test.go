package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateMaxTour_KnownSizes(t *testing.T) {
	tests := []struct {
		rows, cols int
		expected   int
	}{
		{1, 1, 1},
		{1, 2, 1},
		{2, 1, 1},
		{1, 5, 1},
		{2, 2, 1},
		{2, 3, 2},
		{3, 3, 8},
		{0, 5, 0},
		{5, 0, 0},
		{-1, 3, 0},
	}

	for _, test := range tests {
		got := EstimateMaxTour(test.rows, test.cols)
		assert.Equal(t, test.expected, got, "EstimateMaxTour(%d, %d)", test.rows, test.cols)
	}
}

func TestEstimateMaxTour_Bounds(t *testing.T) {
	for _, dims := range [][2]int{{4, 4}, {5, 5}, {10, 5}, {8, 8}, {3, 7}} {
		got := EstimateMaxTour(dims[0], dims[1])
		assert.GreaterOrEqual(t, got, 1)
		assert.LessOrEqual(t, got, dims[0]*dims[1])
	}
}

func TestEstimateMaxTour_Deterministic(t *testing.T) {
	first := EstimateMaxTour(10, 5)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, EstimateMaxTour(10, 5))
	}
	assert.Equal(t, BestWarnsdorffTour(10, 5), BestWarnsdorffTour(10, 5))
}

func TestBestWarnsdorffTour_PathIsValid(t *testing.T) {
	for _, dims := range [][2]int{{3, 3}, {5, 5}, {10, 5}, {8, 8}, {6, 4}} {
		plan := BestWarnsdorffTour(dims[0], dims[1])

		require.Len(t, plan.Path, plan.Length)
		assert.Equal(t, EstimateMaxTour(dims[0], dims[1]), plan.Length)
		assert.Equal(t, plan.Start, plan.Path[0])
		assert.True(t, IsKnightPath(plan.Path), "%dx%d path must be a knight path", dims[0], dims[1])

		for _, p := range plan.Path {
			assert.True(t, p.Row >= 0 && p.Row < dims[0] && p.Col >= 0 && p.Col < dims[1])
		}
	}
}

func TestBestWarnsdorffTour_ReturnsCopy(t *testing.T) {
	plan := BestWarnsdorffTour(5, 5)
	require.NotEmpty(t, plan.Path)
	plan.Path[0] = Position{Row: 99, Col: 99}

	again := BestWarnsdorffTour(5, 5)
	assert.NotEqual(t, Position{Row: 99, Col: 99}, again.Path[0])
}

func TestBestWarnsdorffTour_3x3StartsAtCorner(t *testing.T) {
	plan := BestWarnsdorffTour(3, 3)
	assert.Equal(t, Position{Row: 0, Col: 0}, plan.Start)
	assert.Equal(t, Position{Row: 2, Col: 1}, plan.Path[1], "tie goes to the first offset")
}

func TestWarnsdorffTour_Edges(t *testing.T) {
	assert.Nil(t, WarnsdorffTour(3, 3, Position{Row: 3, Col: 0}))
	assert.Nil(t, WarnsdorffTour(3, 3, Position{Row: -1, Col: 0}))
	assert.Equal(t, []Position{{Row: 1, Col: 1}}, WarnsdorffTour(3, 3, Position{Row: 1, Col: 1}))
}

func TestEstimateMaxTour_Concurrent(t *testing.T) {
	done := make(chan int, 8)
	for i := 0; i < 8; i++ {
		go func() {
			done <- EstimateMaxTour(7, 6)
		}()
	}
	first := <-done
	for i := 1; i < 8; i++ {
		assert.Equal(t, first, <-done)
	}
}
