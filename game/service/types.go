package service

import (
	"time"

	"github.com/wricardo/mcp-training/knightgrid/game/engine"
)

// Event types reported in MoveResult and BulkMoveResult.
const (
	EventMove     = "move"
	EventRejected = "rejected"
	EventGameOver = "game_over"
	EventReset    = "reset"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// MoveResult contains the result of a single click. A rejected click is a
// normal result with Success false, not an error.
type MoveResult struct {
	Success   bool                `json:"success"`
	Reason    engine.RejectReason `json:"reason,omitempty"`
	GameState *engine.GameState   `json:"game_state"`
	Message   string              `json:"message"`
	Events    []GameEvent         `json:"events,omitempty"`
	Step      *StepInfo           `json:"step,omitempty"`
}

// BulkMoveResult contains the result of a sequence of clicks
type BulkMoveResult struct {
	// Summary
	MovesExecuted  int               `json:"moves_executed"`
	RequestedMoves int               `json:"requested_moves"`
	Success        bool              `json:"success"`
	GameState      *engine.GameState `json:"game_state"`
	Events         []GameEvent       `json:"events"`
	StoppedReason  string            `json:"stopped_reason,omitempty"`   // Human-readable reason
	StopReasonCode string            `json:"stop_reason_code,omitempty"` // out_of_bounds|occupied|not_knight_move|game_over
	StoppedOnMove  int               `json:"stopped_on_move,omitempty"`  // 1-based index of the move that caused stop
	Truncated      bool              `json:"truncated,omitempty"`
	Limit          int               `json:"limit,omitempty"`

	// Start/end snapshot
	StartCounter int `json:"start_counter"`
	EndCounter   int `json:"end_counter"`

	// Per-step compact trace (only for this call)
	Steps []StepInfo `json:"steps,omitempty"`

	// Final status aids
	GameOver      bool              `json:"game_over"`
	Message       string            `json:"message,omitempty"`
	PossibleMoves []engine.Position `json:"possible_moves,omitempty"`
}

// StepInfo is a compact record of one accepted or rejected click
type StepInfo struct {
	Idx     int                 `json:"idx"`
	From    *engine.Position    `json:"from,omitempty"`
	To      engine.Position     `json:"to"`
	Value   int                 `json:"value,omitempty"`
	Success bool                `json:"success"`
	Reason  engine.RejectReason `json:"reason,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string          `json:"type"` // "move", "rejected", "game_over", "reset"
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Position  engine.Position `json:"position,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
	CellSize    int    `json:"cell_size"`
	MaxMoves    int    `json:"max_moves"`
}
