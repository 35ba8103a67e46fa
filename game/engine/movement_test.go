package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pos(r, c int) Position { return Position{Row: r, Col: c} }

func TestIsKnightDisplacement(t *testing.T) {
	from := pos(4, 4)
	tests := []struct {
		name     string
		to       Position
		expected bool
	}{
		{"down two right one", pos(6, 5), true},
		{"down two left one", pos(6, 3), true},
		{"up two right one", pos(2, 5), true},
		{"up one left two", pos(3, 2), true},
		{"down one right two", pos(5, 6), true},
		{"same cell", pos(4, 4), false},
		{"straight line", pos(4, 6), false},
		{"diagonal", pos(5, 5), false},
		{"two two", pos(6, 6), false},
		{"three one", pos(7, 5), false},
		{"one zero", pos(5, 4), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, IsKnightDisplacement(from, test.to))
		})
	}
}

func TestKnightNeighbors(t *testing.T) {
	t.Run("corner of 8x8", func(t *testing.T) {
		got := KnightNeighbors(pos(0, 0), 8, 8)
		assert.Equal(t, []Position{pos(2, 1), pos(1, 2)}, got)
	})

	t.Run("center of 8x8 has eight in table order", func(t *testing.T) {
		got := KnightNeighbors(pos(4, 4), 8, 8)
		require.Len(t, got, 8)
		assert.Equal(t, pos(6, 5), got[0])
		assert.Equal(t, pos(3, 2), got[7])
	})

	t.Run("1x2 has none", func(t *testing.T) {
		assert.Empty(t, KnightNeighbors(pos(0, 0), 1, 2))
	})
}

func TestIsValidMove_FirstMove(t *testing.T) {
	state := NewGameState(10, 5)

	for r := 0; r < 10; r++ {
		for c := 0; c < 5; c++ {
			assert.True(t, IsValidMove(state, pos(r, c)), "first move at (%d,%d)", r, c)
		}
	}

	for _, p := range []Position{pos(-1, 0), pos(0, -1), pos(10, 0), pos(0, 5), pos(-7, -7)} {
		assert.False(t, IsValidMove(state, p), "out of bounds first move at %v", p)
		assert.Equal(t, OutOfBounds, state.CheckMove(p))
	}
}

func TestCheckMove_ReasonTable(t *testing.T) {
	state := NewGameState(10, 5)
	require.True(t, state.ApplyMove(pos(4, 2)))
	require.True(t, state.ApplyMove(pos(6, 3)))
	require.True(t, state.ApplyMove(pos(4, 4)))

	tests := []struct {
		name     string
		target   Position
		expected RejectReason
	}{
		{"knight (2,1) onto empty cell", pos(2, 3), Accepted},
		{"knight (1,2) onto empty cell", pos(5, 2), Accepted},
		{"knight (2,1) onto visited cell", pos(6, 3), Occupied},
		{"knight (2,2) always rejected", pos(2, 2), NotKnightMove},
		{"diagonal", pos(5, 3), NotKnightMove},
		{"straight", pos(4, 3), NotKnightMove},
		{"same cell is occupied", pos(4, 4), Occupied},
		{"knight offset off the right edge", pos(5, 6), OutOfBounds},
		{"knight offset off the bottom edge", pos(10, 3), OutOfBounds},
		{"negative coordinates", pos(-2, 3), OutOfBounds},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, state.CheckMove(test.target))
			assert.Equal(t, test.expected == Accepted, IsValidMove(state, test.target))
		})
	}
}

func TestApplyMove_DefaultGridScenario(t *testing.T) {
	t.Run("knight move accepted", func(t *testing.T) {
		state := NewGameState(10, 5)
		require.True(t, state.ApplyMove(pos(0, 0)))
		require.True(t, state.ApplyMove(pos(2, 1)))

		assert.Equal(t, 3, state.Counter)
		v, _ := state.Grid.At(pos(2, 1))
		assert.Equal(t, 2, v)
		assert.Equal(t, pos(2, 1), *state.LastClicked)
	})

	t.Run("diagonal rejected and state unchanged", func(t *testing.T) {
		state := NewGameState(10, 5)
		require.True(t, state.ApplyMove(pos(0, 0)))
		before := state.Clone()

		assert.False(t, state.ApplyMove(pos(1, 1)))
		assert.Equal(t, before, state)
		assert.Equal(t, 2, state.Counter)
		assert.Equal(t, 1, state.Grid.CountVisited())
		v, _ := state.Grid.At(pos(0, 0))
		assert.Equal(t, 1, v)
	})
}

func TestApplyMove_RejectionIsNoOp(t *testing.T) {
	fixture := NewGameState(6, 6)
	require.True(t, fixture.ApplyMove(pos(2, 2)))
	require.True(t, fixture.ApplyMove(pos(4, 3)))

	tests := []struct {
		name   string
		target Position
		reason RejectReason
	}{
		{"last clicked cell", pos(4, 3), Occupied},
		{"visited knight neighbor", pos(2, 2), Occupied},
		{"diagonal", pos(5, 4), NotKnightMove},
		{"two by two", pos(6, 5), OutOfBounds},
		{"knight move off the grid", pos(6, 4), OutOfBounds},
		{"negative", pos(-1, -1), OutOfBounds},
		{"straight line", pos(4, 5), NotKnightMove},
		{"two by two in bounds", pos(2, 1), NotKnightMove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := fixture.Clone()
			before := fixture.Clone()

			assert.Equal(t, tt.reason, state.CheckMove(tt.target))
			assert.False(t, state.ApplyMove(tt.target))
			assert.Equal(t, before, state)
		})
	}
}

func TestApplyMove_TerminalDetection(t *testing.T) {
	t.Run("3x3 center is immediately terminal", func(t *testing.T) {
		state := NewGameState(3, 3)
		require.True(t, state.ApplyMove(pos(1, 1)))
		assert.True(t, state.Terminal)
		assert.False(t, HasAnyValidMove(state))
	})

	t.Run("1x1 grid ends after one move", func(t *testing.T) {
		state := NewGameState(1, 1)
		assert.True(t, HasAnyValidMove(state))
		require.True(t, state.ApplyMove(pos(0, 0)))
		assert.True(t, state.Terminal)
	})

	t.Run("2x3 pair", func(t *testing.T) {
		state := NewGameState(2, 3)
		require.True(t, state.ApplyMove(pos(0, 0)))
		assert.False(t, state.Terminal)
		require.True(t, state.ApplyMove(pos(1, 2)))
		assert.True(t, state.Terminal)
	})

	t.Run("terminal rejects further moves", func(t *testing.T) {
		state := NewGameState(3, 3)
		require.True(t, state.ApplyMove(pos(1, 1)))
		before := state.Clone()

		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				assert.Equal(t, GameOver, state.CheckMove(pos(r, c)))
				assert.False(t, state.ApplyMove(pos(r, c)))
			}
		}
		assert.Equal(t, before, state)
	})

	t.Run("terminal never set without a move", func(t *testing.T) {
		state := NewGameState(1, 2)
		assert.False(t, state.Terminal)
		assert.False(t, state.ApplyMove(pos(5, 5)))
		assert.False(t, state.Terminal)
	})
}

func TestCandidateMoves(t *testing.T) {
	state := NewGameState(10, 5)
	assert.Nil(t, CandidateMoves(state), "no candidates before the first click")

	require.True(t, state.ApplyMove(pos(0, 0)))
	assert.Equal(t, []Position{pos(2, 1), pos(1, 2)}, CandidateMoves(state))

	state.RefreshViews()
	assert.Equal(t, state.Candidates, CandidateMoves(state))
}

// TestRandomPlay_Invariants drives seeded random games and checks the counter
// and visited-set invariants after every attempt.
func TestRandomPlay_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for game := 0; game < 25; game++ {
		rows, cols := 1+rng.Intn(8), 1+rng.Intn(8)
		state := NewGameState(rows, cols)
		accepted := 0

		for attempt := 0; attempt < 200 && !state.Terminal; attempt++ {
			target := pos(rng.Intn(rows+2)-1, rng.Intn(cols+2)-1)
			if candidates := CandidateMoves(state); len(candidates) > 0 && rng.Intn(2) == 0 {
				target = candidates[rng.Intn(len(candidates))]
			}

			counter := state.Counter
			wasValid := IsValidMove(state, target)
			ok := state.ApplyMove(target)

			require.Equal(t, wasValid, ok)
			if ok {
				accepted++
				require.Equal(t, counter+1, state.Counter)
				require.Equal(t, !HasAnyValidMove(state), state.Terminal)
			} else {
				require.Equal(t, counter, state.Counter)
			}

			seq, contiguous := VisitedSequence(state.Grid)
			require.True(t, contiguous)
			require.Len(t, seq, accepted)
			require.True(t, IsKnightPath(seq))
		}
	}
}
