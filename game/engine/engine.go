package engine

import (
	"fmt"
	"time"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	SetState(state *GameState) error
	Reset() *GameState
	IsGameOver() bool
	GetCounter() int
	GetMaxMoves() int
	GetLastClicked() *Position

	// Movement operations
	Move(pos Position) (bool, RejectReason)
	CanMove(pos Position) bool
	GetPossibleMoves() []Position

	// Configuration
	GetConfig() *GameConfig
	SetConfig(config *GameConfig) error

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry
}

// GameEngine implements the Engine interface. It is not safe for concurrent
// use; callers serialize access.
type GameEngine struct {
	state   *GameState
	config  *GameConfig
	history []MoveHistoryEntry
}

// NewEngine creates a new game engine with the provided configuration
func NewEngine(config *GameConfig) (*GameEngine, error) {
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	return &GameEngine{
		config:  config,
		state:   InitGameStateFromConfig(config),
		history: []MoveHistoryEntry{},
	}, nil
}

// NewEngineWithDefaults creates a new game engine with the built-in 10x5 configuration
func NewEngineWithDefaults() *GameEngine {
	config := DefaultGameConfig()
	return &GameEngine{
		config:  config,
		state:   InitGameStateFromConfig(config),
		history: []MoveHistoryEntry{},
	}
}

// GetState returns the current game state
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// SetState replaces the game state. The grid must match the configured size.
func (e *GameEngine) SetState(state *GameState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if state.Grid.Rows != e.config.Rows || state.Grid.Cols != e.config.Cols {
		return fmt.Errorf("state grid %dx%d does not match config %dx%d",
			state.Grid.Rows, state.Grid.Cols, e.config.Rows, e.config.Cols)
	}
	if len(state.Grid.Cells) != state.Grid.Rows*state.Grid.Cols {
		return fmt.Errorf("state grid has %d cells, want %d", len(state.Grid.Cells), state.Grid.Rows*state.Grid.Cols)
	}
	e.state = state
	return nil
}

// Reset replaces the state with a fresh one. Move history is cumulative and
// survives the reset.
func (e *GameEngine) Reset() *GameState {
	e.state = InitGameStateFromConfig(e.config)
	e.history = append(e.history, MoveHistoryEntry{
		Action:     "reset",
		Accepted:   true,
		Timestamp:  time.Now().Unix(),
		MoveNumber: len(e.history) + 1,
	})
	return e.state
}

// IsGameOver returns whether no legal continuation remains
func (e *GameEngine) IsGameOver() bool {
	return e.state.Terminal
}

// GetCounter returns the next value to be assigned
func (e *GameEngine) GetCounter() int {
	return e.state.Counter
}

// GetMaxMoves returns the heuristic maximum path length for this grid
func (e *GameEngine) GetMaxMoves() int {
	return e.state.MaxMoves
}

// GetLastClicked returns the last accepted position, or nil before the first move
func (e *GameEngine) GetLastClicked() *Position {
	return e.state.LastClicked
}

// Move attempts to click pos and records the attempt in the history.
func (e *GameEngine) Move(pos Position) (bool, RejectReason) {
	var from *Position
	if e.state.LastClicked != nil {
		prev := *e.state.LastClicked
		from = &prev
	}

	reason := e.state.CheckMove(pos)
	accepted := reason == Accepted && e.state.ApplyMove(pos)

	entry := MoveHistoryEntry{
		Action:     "move",
		Position:   pos,
		From:       from,
		Accepted:   accepted,
		Reason:     reason,
		Timestamp:  time.Now().Unix(),
		MoveNumber: len(e.history) + 1,
	}
	if accepted {
		entry.Value = e.state.Counter - 1
		e.state.Message = ""
		if e.state.Terminal {
			e.state.Message = FormatGameOver(e.config, e.state)
		}
	}
	e.history = append(e.history, entry)

	return accepted, reason
}

// CanMove reports whether pos is a legal next click
func (e *GameEngine) CanMove(pos Position) bool {
	return IsValidMove(e.state, pos)
}

// GetPossibleMoves returns all cells that would currently be accepted. Before
// the first click that is every cell.
func (e *GameEngine) GetPossibleMoves() []Position {
	if e.state.LastClicked == nil && !e.state.Terminal {
		all := make([]Position, 0, len(e.state.Grid.Cells))
		for r := 0; r < e.state.Grid.Rows; r++ {
			for c := 0; c < e.state.Grid.Cols; c++ {
				all = append(all, Position{Row: r, Col: c})
			}
		}
		return all
	}
	return CandidateMoves(e.state)
}

// GetConfig returns the current game configuration
func (e *GameEngine) GetConfig() *GameConfig {
	return e.config
}

// SetConfig sets a new game configuration and resets the game
func (e *GameEngine) SetConfig(config *GameConfig) error {
	if err := ValidateGameConfig(config); err != nil {
		return err
	}

	e.config = config
	e.state = InitGameStateFromConfig(config)
	return nil
}

// GetMoveHistory returns the complete move history
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return e.history
}

// GetLastMove returns the last history entry, or nil if there is none
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.history) == 0 {
		return nil
	}
	return &e.history[len(e.history)-1]
}

// BulkMove clicks positions in sequence and stops at the first rejection.
func (e *GameEngine) BulkMove(moves []Position) []bool {
	results := make([]bool, 0, len(moves))

	for _, pos := range moves {
		ok, _ := e.Move(pos)
		results = append(results, ok)
		if !ok {
			break
		}
	}

	return results
}
