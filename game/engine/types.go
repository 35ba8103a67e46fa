package engine

// RejectReason explains why a move was refused. The empty value means accepted.
type RejectReason string

const (
	Accepted      RejectReason = ""
	OutOfBounds   RejectReason = "out_of_bounds"
	Occupied      RejectReason = "occupied"
	NotKnightMove RejectReason = "not_knight_move"
	GameOver      RejectReason = "game_over"

	// Validation constants
	MinGridSize     = 1
	MaxGridSize     = 20
	MinCellSize     = 16
	MaxCellSize     = 200
	DefaultRows     = 10
	DefaultCols     = 5
	DefaultCellSize = 60
	MaxBulkMoves    = 50
)

// Position is a (row, col) grid coordinate.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Grid is a rows×cols board stored row-major. A zero cell is unvisited; a
// positive value is the order in which the cell was visited.
type Grid struct {
	Rows  int   `json:"rows"`
	Cols  int   `json:"cols"`
	Cells []int `json:"cells"`
}

// GameConfig represents the game configuration from JSON
type GameConfig struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
	CellSize    int    `json:"cell_size"`
	Messages    struct {
		Welcome      string `json:"welcome"`
		Instructions string `json:"instructions"`
		GameOver     string `json:"game_over"`
		Rejected     string `json:"rejected"`
	} `json:"messages"`
}

// GameState is the complete state of one play-through.
type GameState struct {
	Grid        Grid      `json:"grid"`
	Counter     int       `json:"counter"`
	LastClicked *Position `json:"last_clicked"`
	Terminal    bool      `json:"terminal"`
	MaxMoves    int       `json:"max_moves"`
	ConfigName  string    `json:"config_name,omitempty"`
	Message     string    `json:"message,omitempty"`

	// Computed helper views (not required for core game logic)
	Candidates []Position `json:"candidates,omitempty"`
}

// MoveHistoryEntry represents a single click in the game history
type MoveHistoryEntry struct {
	Action     string       `json:"action"` // "move" or "reset"
	Position   Position     `json:"position"`
	From       *Position    `json:"from,omitempty"`
	Accepted   bool         `json:"accepted"`
	Reason     RejectReason `json:"reason,omitempty"`
	Value      int          `json:"value,omitempty"`
	Timestamp  int64        `json:"timestamp"`
	MoveNumber int          `json:"move_number"`
}

// TourPlan is the best Warnsdorff tour found for a grid size.
type TourPlan struct {
	Rows   int        `json:"rows"`
	Cols   int        `json:"cols"`
	Start  Position   `json:"start"`
	Path   []Position `json:"path"`
	Length int        `json:"length"`
}
