package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrInvalidConfig wraps every config validation failure.
var ErrInvalidConfig = errors.New("config validation")

// ValidateGameConfig validates a game configuration for correctness and playability
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	// Validate required fields
	if config.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidConfig)
	}
	if config.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidConfig)
	}

	// Validate grid dimensions; the tour estimator is quadratic in cell count
	if config.Rows < MinGridSize || config.Rows > MaxGridSize {
		return fmt.Errorf("%w: rows must be between %d and %d, got %d", ErrInvalidConfig, MinGridSize, MaxGridSize, config.Rows)
	}
	if config.Cols < MinGridSize || config.Cols > MaxGridSize {
		return fmt.Errorf("%w: cols must be between %d and %d, got %d", ErrInvalidConfig, MinGridSize, MaxGridSize, config.Cols)
	}

	if config.CellSize < MinCellSize || config.CellSize > MaxCellSize {
		return fmt.Errorf("%w: cell_size must be between %d and %d, got %d", ErrInvalidConfig, MinCellSize, MaxCellSize, config.CellSize)
	}

	// Validate messages
	if config.Messages.Welcome == "" {
		return fmt.Errorf("%w: messages.welcome is required", ErrInvalidConfig)
	}
	if config.Messages.GameOver == "" {
		return fmt.Errorf("%w: messages.game_over is required", ErrInvalidConfig)
	}
	if strings.Count(config.Messages.GameOver, "%d") != 2 {
		return fmt.Errorf("%w: messages.game_over must contain %%d twice (moves, maximum)", ErrInvalidConfig)
	}

	return nil
}

// LoadGameConfig loads and validates a game configuration from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filename, err)
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// DefaultGameConfig returns the built-in 10x5 configuration.
func DefaultGameConfig() *GameConfig {
	config := &GameConfig{
		Name:        "default",
		Description: "Classic 10x5 knight grid",
		Rows:        DefaultRows,
		Cols:        DefaultCols,
		CellSize:    DefaultCellSize,
	}
	config.Messages.Welcome = "Click any cell to start. Each next click must be a knight's move away."
	config.Messages.Instructions = "Press R to restart game"
	config.Messages.GameOver = "Moves: %d | Maximum possible: %d | Press R to restart"
	config.Messages.Rejected = "Not a valid knight's move"
	return config
}

// NewGameState returns a fresh, all-zero state for a rows×cols grid with
// MaxMoves set from the tour estimator.
func NewGameState(rows, cols int) *GameState {
	return &GameState{
		Grid:     NewGrid(rows, cols),
		Counter:  1,
		MaxMoves: EstimateMaxTour(rows, cols),
	}
}

// InitGameStateFromConfig creates a new game state using the provided configuration
func InitGameStateFromConfig(config *GameConfig) *GameState {
	if config == nil {
		config = DefaultGameConfig()
	}
	state := NewGameState(config.Rows, config.Cols)
	state.ConfigName = config.Name
	state.Message = config.Messages.Welcome
	return state
}
