package view

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/wricardo/mcp-training/knightgrid/game/engine"
)

// FooterHeight is the strip below the grid that holds the status line.
const FooterHeight = 60

// DefaultFooter is shown while the game is running and the config has no
// instructions.
const DefaultFooter = "Press R to restart game"

// CellStyle is how a cell is painted.
type CellStyle string

const (
	StylePlain     CellStyle = "plain"
	StyleCandidate CellStyle = "candidate"
	StyleTerminal  CellStyle = "terminal"
)

// Palette
var (
	Background     = color.RGBA{255, 255, 255, 255}
	GridLine       = color.RGBA{0, 0, 0, 255}
	TextColor      = color.RGBA{0, 0, 0, 255}
	CandidateColor = color.RGBA{200, 255, 200, 255}
	TerminalColor  = color.RGBA{255, 200, 200, 255}
)

// Fill returns the background fill of a style.
func (s CellStyle) Fill() color.RGBA {
	switch s {
	case StyleCandidate:
		return CandidateColor
	case StyleTerminal:
		return TerminalColor
	default:
		return Background
	}
}

// PixelToCell maps a window pixel to the grid cell under it. Negative pixels
// and a non-positive cell size yield {-1, -1}, which is never in bounds.
func PixelToCell(x, y, cellSize int) engine.Position {
	if x < 0 || y < 0 || cellSize <= 0 {
		return engine.Position{Row: -1, Col: -1}
	}
	return engine.Position{Row: y / cellSize, Col: x / cellSize}
}

// CellOrigin returns the top-left pixel of a cell.
func CellOrigin(pos engine.Position, cellSize int) (x, y int) {
	return pos.Col * cellSize, pos.Row * cellSize
}

// ScreenSize returns the window size for a config: the grid plus the footer.
func ScreenSize(cfg *engine.GameConfig) (width, height int) {
	if cfg == nil {
		cfg = engine.DefaultGameConfig()
	}
	return cfg.Cols * cfg.CellSize, cfg.Rows*cfg.CellSize + FooterHeight
}

// CellStyleAt decides how pos is painted. Every cell is tinted once the game
// is over; otherwise the legal next clicks are highlighted.
func CellStyleAt(state *engine.GameState, pos engine.Position) CellStyle {
	if state.Terminal {
		return StyleTerminal
	}
	if state.LastClicked != nil && engine.IsValidMove(state, pos) {
		return StyleCandidate
	}
	return StylePlain
}

// CellLabel is the number drawn in a cell, or "" for an unvisited cell.
func CellLabel(state *engine.GameState, pos engine.Position) string {
	v, ok := state.Grid.At(pos)
	if !ok || v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

// Footer is the status line under the grid.
func Footer(state *engine.GameState, cfg *engine.GameConfig) string {
	if state.Terminal {
		return engine.FormatGameOver(cfg, state)
	}
	if cfg != nil && cfg.Messages.Instructions != "" {
		return cfg.Messages.Instructions
	}
	return DefaultFooter
}

// RenderText draws the grid as text: visit numbers, "+" for legal next
// clicks and "." for everything else.
func RenderText(state *engine.GameState) string {
	var b strings.Builder
	g := state.Grid

	fmt.Fprintf(&b, "Grid %dx%d | Moves: %d | Maximum possible: %d\n",
		g.Rows, g.Cols, state.MovesMade(), state.MaxMoves)
	if state.LastClicked != nil {
		fmt.Fprintf(&b, "Last: (%d,%d)\n", state.LastClicked.Row, state.LastClicked.Col)
	} else {
		b.WriteString("Last: none (any cell may be clicked)\n")
	}
	if state.Terminal {
		b.WriteString("GAME OVER\n")
	}

	writeGrid(&b, g.Rows, g.Cols, func(pos engine.Position) string {
		if label := CellLabel(state, pos); label != "" {
			return label
		}
		if CellStyleAt(state, pos) == StyleCandidate {
			return "+"
		}
		return "."
	})
	return b.String()
}

// RenderTour draws a tour plan as a grid numbered in visiting order, with "."
// for cells the tour never reaches.
func RenderTour(plan engine.TourPlan) string {
	order := make(map[engine.Position]int, len(plan.Path))
	for i, p := range plan.Path {
		order[p] = i + 1
	}

	var b strings.Builder
	writeGrid(&b, plan.Rows, plan.Cols, func(pos engine.Position) string {
		if n, ok := order[pos]; ok {
			return strconv.Itoa(n)
		}
		return "."
	})
	return b.String()
}

// writeGrid writes one line per row with right-aligned labels wide enough
// for the largest visit number.
func writeGrid(b *strings.Builder, rows, cols int, label func(engine.Position) string) {
	width := len(strconv.Itoa(rows * cols))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(b, "%*s", width, label(engine.Position{Row: r, Col: c}))
		}
		b.WriteByte('\n')
	}
}
