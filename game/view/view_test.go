package view

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/mcp-training/knightgrid/game/engine"
)

func pos(r, c int) engine.Position { return engine.Position{Row: r, Col: c} }

func play(t *testing.T, rows, cols int, moves ...engine.Position) *engine.GameState {
	t.Helper()
	state := engine.NewGameState(rows, cols)
	for _, m := range moves {
		require.True(t, state.ApplyMove(m), "move %v", m)
	}
	return state
}

func TestPixelToCell(t *testing.T) {
	tests := []struct {
		x, y, size int
		expected   engine.Position
	}{
		{0, 0, 60, pos(0, 0)},
		{59, 59, 60, pos(0, 0)},
		{60, 0, 60, pos(0, 1)},
		{125, 310, 60, pos(5, 2)},
		{299, 599, 60, pos(9, 4)},
		{10, 605, 60, pos(10, 0)}, // footer area is out of bounds for a 10-row grid
		{-1, 10, 60, pos(-1, -1)},
		{10, -1, 60, pos(-1, -1)},
		{10, 10, 0, pos(-1, -1)},
	}

	grid := engine.NewGrid(10, 5)
	for _, tt := range tests {
		got := PixelToCell(tt.x, tt.y, tt.size)
		assert.Equal(t, tt.expected, got, "PixelToCell(%d, %d, %d)", tt.x, tt.y, tt.size)
	}
	assert.False(t, grid.InBounds(PixelToCell(-5, -5, 60)))
}

func TestCellOrigin(t *testing.T) {
	x, y := CellOrigin(pos(3, 2), 60)
	assert.Equal(t, 120, x)
	assert.Equal(t, 180, y)
	assert.Equal(t, pos(3, 2), PixelToCell(x, y, 60))
}

func TestScreenSize(t *testing.T) {
	w, h := ScreenSize(nil)
	assert.Equal(t, 300, w)
	assert.Equal(t, 660, h)

	cfg := engine.DefaultGameConfig()
	cfg.Rows, cfg.Cols, cfg.CellSize = 8, 8, 50
	w, h = ScreenSize(cfg)
	assert.Equal(t, 400, w)
	assert.Equal(t, 400+FooterHeight, h)
}

func TestCellStyleAt(t *testing.T) {
	fresh := engine.NewGameState(10, 5)
	assert.Equal(t, StylePlain, CellStyleAt(fresh, pos(0, 0)), "nothing is highlighted before the first click")

	state := play(t, 10, 5, pos(0, 0))
	assert.Equal(t, StyleCandidate, CellStyleAt(state, pos(2, 1)))
	assert.Equal(t, StyleCandidate, CellStyleAt(state, pos(1, 2)))
	assert.Equal(t, StylePlain, CellStyleAt(state, pos(1, 1)))
	assert.Equal(t, StylePlain, CellStyleAt(state, pos(0, 0)), "visited cell")

	// 2x3: (0,0) -> (1,2) and the game ends.
	over := play(t, 2, 3, pos(0, 0), pos(1, 2))
	require.True(t, over.Terminal)
	assert.Equal(t, StyleTerminal, CellStyleAt(over, pos(0, 1)))
	assert.Equal(t, StyleTerminal, CellStyleAt(over, pos(1, 2)))
}

func TestCellStyleFill(t *testing.T) {
	assert.Equal(t, CandidateColor, StyleCandidate.Fill())
	assert.Equal(t, TerminalColor, StyleTerminal.Fill())
	assert.Equal(t, Background, StylePlain.Fill())
}

func TestCellLabel(t *testing.T) {
	state := play(t, 10, 5, pos(0, 0), pos(2, 1))
	assert.Equal(t, "1", CellLabel(state, pos(0, 0)))
	assert.Equal(t, "2", CellLabel(state, pos(2, 1)))
	assert.Equal(t, "", CellLabel(state, pos(4, 4)))
	assert.Equal(t, "", CellLabel(state, pos(-1, 0)))
}

func TestFooter(t *testing.T) {
	cfg := engine.DefaultGameConfig()

	running := play(t, 10, 5, pos(0, 0))
	assert.Equal(t, cfg.Messages.Instructions, Footer(running, cfg))
	assert.Equal(t, DefaultFooter, Footer(running, nil))

	over := play(t, 2, 3, pos(0, 0), pos(1, 2))
	assert.Equal(t, "Moves: 2 | Maximum possible: 2 | Press R to restart", Footer(over, cfg))
	assert.Equal(t, "Moves: 2 | Maximum possible: 2", Footer(over, nil))
}

func TestRenderText(t *testing.T) {
	state := play(t, 3, 3, pos(0, 0))
	out := RenderText(state)

	assert.Contains(t, out, "Grid 3x3 | Moves: 1 | Maximum possible: 8")
	assert.Contains(t, out, "Last: (0,0)")
	assert.NotContains(t, out, "GAME OVER")
	assert.True(t, strings.HasSuffix(out, "1 . .\n. . +\n. + .\n"), "got:\n%s", out)
}

func TestRenderText_PadsWideNumbers(t *testing.T) {
	state := engine.NewGameState(4, 4)
	out := RenderText(state)

	assert.Contains(t, out, "Last: none")
	assert.True(t, strings.HasSuffix(out, " .  .  .  .\n"), "got:\n%s", out)
}

func TestRenderText_GameOver(t *testing.T) {
	state := play(t, 2, 3, pos(0, 0), pos(1, 2))
	out := RenderText(state)

	assert.Contains(t, out, "GAME OVER")
	assert.True(t, strings.HasSuffix(out, "1 . .\n. . 2\n"), "got:\n%s", out)
}

func TestRenderTour(t *testing.T) {
	plan := engine.TourPlan{
		Rows:   2,
		Cols:   3,
		Start:  pos(0, 0),
		Path:   []engine.Position{pos(0, 0), pos(1, 2)},
		Length: 2,
	}
	assert.Equal(t, "1 . .\n. . 2\n", RenderTour(plan))

	assert.Equal(t, "", RenderTour(engine.TourPlan{}))
}

func TestRenderTour_BestPlanNumbersEveryStep(t *testing.T) {
	plan := engine.BestWarnsdorffTour(3, 3)
	out := RenderTour(plan)

	for i := 1; i <= plan.Length; i++ {
		assert.Contains(t, out, strconv.Itoa(i))
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, ".", strings.Fields(lines[1])[1], "the centre of a 3x3 board is unreachable")
}
