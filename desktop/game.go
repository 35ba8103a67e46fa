package desktop

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog/log"

	"github.com/wricardo/mcp-training/knightgrid/game/engine"
	"github.com/wricardo/mcp-training/knightgrid/game/view"
)

// Debug font metrics
const (
	glyphWidth  = 6
	glyphHeight = 16
)

// Game implements ebiten.Game over a local engine.
type Game struct {
	engine *engine.GameEngine
	config *engine.GameConfig
	width  int
	height int

	// labels caches rendered text, keyed by string. The debug font is white,
	// so text is rendered once off-screen and tinted when drawn.
	labels map[string]*ebiten.Image
}

// NewGame creates a window game for cfg. A nil cfg uses the built-in default.
func NewGame(cfg *engine.GameConfig) (*Game, error) {
	if cfg == nil {
		cfg = engine.DefaultGameConfig()
	}
	eng, err := engine.NewEngine(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	w, h := view.ScreenSize(cfg)
	log.Info().
		Int("rows", cfg.Rows).
		Int("cols", cfg.Cols).
		Int("max_moves", eng.GetMaxMoves()).
		Msg("grid game initialized")

	return &Game{
		engine: eng,
		config: cfg,
		width:  w,
		height: h,
		labels: make(map[string]*ebiten.Image),
	}, nil
}

// Run opens the window and blocks until it is closed.
func Run(cfg *engine.GameConfig) error {
	g, err := NewGame(cfg)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle("Grid Counter")
	log.Info().Msg("starting grid game")
	return ebiten.RunGame(g)
}

// Update handles one frame of input
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.engine.Reset()
		log.Info().Msg("game reset by user")
		return nil
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.click(x, y)
	}
	return nil
}

// click forwards a pixel click to the engine. Rejected clicks change nothing.
func (g *Game) click(x, y int) {
	pos := view.PixelToCell(x, y, g.config.CellSize)
	ok, reason := g.engine.Move(pos)
	if !ok {
		log.Debug().Int("row", pos.Row).Int("col", pos.Col).Str("reason", string(reason)).Msg("click ignored")
		return
	}

	state := g.engine.GetState()
	log.Debug().Int("row", pos.Row).Int("col", pos.Col).Int("counter", state.Counter).Msg("cell clicked")
	if state.Terminal {
		log.Info().
			Int("moves", state.MovesMade()).
			Int("max_moves", state.MaxMoves).
			Msg("game over, no more valid moves available")
	}
}

// Draw renders the grid and the footer
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(view.Background)

	state := g.engine.GetState()
	size := g.config.CellSize
	for r := 0; r < state.Grid.Rows; r++ {
		for c := 0; c < state.Grid.Cols; c++ {
			pos := engine.Position{Row: r, Col: c}
			x, y := view.CellOrigin(pos, size)

			if style := view.CellStyleAt(state, pos); style != view.StylePlain {
				vector.DrawFilledRect(screen, float32(x), float32(y), float32(size), float32(size), style.Fill(), false)
			}
			vector.StrokeRect(screen, float32(x), float32(y), float32(size), float32(size), 1, view.GridLine, false)

			if label := view.CellLabel(state, pos); label != "" {
				g.drawText(screen, label, x+size/2, y+size/2, view.TextColor)
			}
		}
	}

	footer := view.Footer(state, g.config)
	g.drawText(screen, footer, g.width/2, g.height-view.FooterHeight/2, view.TextColor)
}

// drawText draws s centered on (cx, cy) in clr.
func (g *Game) drawText(screen *ebiten.Image, s string, cx, cy int, clr color.RGBA) {
	img, ok := g.labels[s]
	if !ok {
		img = ebiten.NewImage(len(s)*glyphWidth, glyphHeight)
		ebitenutil.DebugPrint(img, s)
		g.labels[s] = img
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(cx-len(s)*glyphWidth/2), float64(cy-glyphHeight/2))
	op.ColorScale.ScaleWithColor(clr)
	screen.DrawImage(img, op)
}

// Layout returns the fixed logical screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
