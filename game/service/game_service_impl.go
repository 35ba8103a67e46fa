package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wricardo/mcp-training/knightgrid/game/engine"
)

// ErrInvalidDimensions is returned by EstimateTour for sizes outside the
// supported grid range.
var ErrInvalidDimensions = errors.New("invalid grid dimensions")

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	// Fallback: return as-is or "default"
	if configName == "" {
		return "default"
	}
	return configName
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			return nil, s.configLoadError(configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	log.Info().
		Str("session", session.ID).
		Str("config", configID).
		Int("rows", config.Rows).
		Int("cols", config.Cols).
		Int("max_moves", session.Engine.GetMaxMoves()).
		Msg("session created")

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     configID, // Return the config_id, not the display name
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      snapshot(session.Engine),
		GameConfig:     session.Config,
	}, nil
}

// configLoadError lists the available config IDs when the requested one is missing.
func (s *gameServiceImpl) configLoadError(configName string, err error) error {
	availableConfigs, listErr := s.configs.ListConfigs()
	if listErr != nil || len(availableConfigs) == 0 {
		return fmt.Errorf("failed to load config %s: %w", configName, err)
	}
	var configIDs []string
	for _, cfg := range availableConfigs {
		configIDs = append(configIDs, cfg.ConfigID)
	}
	return fmt.Errorf("config '%s' (available: %v): %w", configName, configIDs, err)
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	// UpdateLastAccessed writes the session, so readers must be excluded.
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	_ = s.sessions.UpdateLastAccessed(sessionID)

	return s.sessionInfo(session), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess))
	}

	return result, nil
}

func (s *gameServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     s.getConfigID(sess.Config.Name), // Return config_id consistently
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      snapshot(sess.Engine),
		GameConfig:     sess.Config,
	}
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("session not found: %w", err)
	}
	log.Info().Str("session", sessionID).Msg("session deleted")
	return nil
}

// Move clicks one cell for a session
func (s *gameServiceImpl) Move(ctx context.Context, sessionID string, pos engine.Position, reset bool) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	_ = s.sessions.UpdateLastAccessed(sessionID)

	events := []GameEvent{}

	if reset {
		sess.Engine.Reset()
		events = append(events, resetEvent())
	}

	from := sess.Engine.GetLastClicked()
	ok, reason := sess.Engine.Move(pos)
	state := snapshot(sess.Engine)

	step := &StepInfo{
		Idx:     1,
		From:    copyPosition(from),
		To:      pos,
		Success: ok,
		Reason:  reason,
	}

	result := &MoveResult{
		Success:   ok,
		Reason:    reason,
		GameState: state,
		Message:   state.Message,
		Step:      step,
	}

	if ok {
		step.Value = state.Counter - 1
		events = append(events, s.moveEvents(sess.Config, state, pos)...)
		logMove(sessionID, pos, state)
	} else {
		result.Message = rejectionMessage(sess.Config, reason)
		events = append(events, GameEvent{
			Type:      EventRejected,
			Message:   result.Message,
			Timestamp: time.Now(),
			Position:  pos,
		})
		log.Debug().
			Str("session", sessionID).
			Int("row", pos.Row).
			Int("col", pos.Col).
			Str("reason", string(reason)).
			Msg("move rejected")
	}
	result.Events = events

	return result, nil
}

// BulkMove clicks cells in sequence, stopping at the first rejection or when
// the game ends.
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []engine.Position, reset bool) (*BulkMoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	_ = s.sessions.UpdateLastAccessed(sessionID)

	result := &BulkMoveResult{
		RequestedMoves: len(moves),
		Events:         make([]GameEvent, 0),
		Success:        true,
	}

	if reset {
		sess.Engine.Reset()
		result.Events = append(result.Events, resetEvent())
	}
	result.StartCounter = sess.Engine.GetCounter()

	// Limit moves to prevent abuse
	if len(moves) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		moves = moves[:engine.MaxBulkMoves]
	}

	for i, pos := range moves {
		if sess.Engine.IsGameOver() {
			result.StoppedReason = "game over"
			result.StopReasonCode = string(engine.GameOver)
			result.StoppedOnMove = i + 1
			break
		}

		from := sess.Engine.GetLastClicked()
		ok, reason := sess.Engine.Move(pos)
		step := StepInfo{
			Idx:     i + 1,
			From:    copyPosition(from),
			To:      pos,
			Success: ok,
			Reason:  reason,
		}

		if !ok {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("move %d to (%d,%d) rejected: %s",
				i+1, pos.Row, pos.Col, rejectionMessage(sess.Config, reason))
			result.StopReasonCode = string(reason)
			result.StoppedOnMove = i + 1
			result.Steps = append(result.Steps, step)
			break
		}

		result.MovesExecuted++
		state := sess.Engine.GetState()
		step.Value = state.Counter - 1
		result.Steps = append(result.Steps, step)
		result.Events = append(result.Events, s.moveEvents(sess.Config, state, pos)...)
	}

	endState := snapshot(sess.Engine)
	result.GameState = endState
	result.EndCounter = endState.Counter
	result.GameOver = endState.Terminal
	result.Message = endState.Message
	result.PossibleMoves = sess.Engine.GetPossibleMoves()

	if result.GameOver && result.StopReasonCode == "" {
		result.StopReasonCode = string(engine.GameOver)
	}
	if result.MovesExecuted > 0 {
		logMove(sessionID, *endState.LastClicked, endState)
	}

	return result, nil
}

// Reset resets a game session to initial state
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	_ = s.sessions.UpdateLastAccessed(sessionID)
	sess.Engine.Reset()
	log.Debug().Str("session", sessionID).Msg("game reset")

	return snapshot(sess.Engine), nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	_ = s.sessions.UpdateLastAccessed(sessionID)
	return snapshot(sess.Engine), nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order != "asc" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	moves := []engine.MoveHistoryEntry{}
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else if start < total {
		moves = append(moves, history[start:end]...)
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific game configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// EstimateTour returns the best Warnsdorff tour for a grid size
func (s *gameServiceImpl) EstimateTour(ctx context.Context, rows, cols int) (*engine.TourPlan, error) {
	if rows < engine.MinGridSize || rows > engine.MaxGridSize || cols < engine.MinGridSize || cols > engine.MaxGridSize {
		return nil, fmt.Errorf("%w: %dx%d, each side must be between %d and %d",
			ErrInvalidDimensions, rows, cols, engine.MinGridSize, engine.MaxGridSize)
	}
	plan := engine.BestWarnsdorffTour(rows, cols)
	return &plan, nil
}

// moveEvents builds the events for an accepted click
func (s *gameServiceImpl) moveEvents(config *engine.GameConfig, state *engine.GameState, pos engine.Position) []GameEvent {
	events := []GameEvent{{
		Type:      EventMove,
		Message:   fmt.Sprintf("Placed %d at (%d,%d)", state.Counter-1, pos.Row, pos.Col),
		Timestamp: time.Now(),
		Position:  pos,
	}}

	if state.Terminal {
		events = append(events, GameEvent{
			Type:      EventGameOver,
			Message:   engine.FormatGameOver(config, state),
			Timestamp: time.Now(),
			Position:  pos,
		})
	}

	return events
}

// snapshot returns a copy of the engine state with helper views filled in.
// Callers hold s.mu.
func snapshot(eng *engine.GameEngine) *engine.GameState {
	state := eng.GetState().Clone()
	state.RefreshViews()
	return state
}

func resetEvent() GameEvent {
	return GameEvent{
		Type:      EventReset,
		Message:   "Game reset to initial state",
		Timestamp: time.Now(),
	}
}

func rejectionMessage(config *engine.GameConfig, reason engine.RejectReason) string {
	switch reason {
	case engine.OutOfBounds:
		return "Cell is outside the grid"
	case engine.Occupied:
		return "Cell already visited"
	case engine.GameOver:
		return "Game is over, reset to play again"
	}
	if config != nil && config.Messages.Rejected != "" {
		return config.Messages.Rejected
	}
	return "Not a valid knight's move"
}

func copyPosition(p *engine.Position) *engine.Position {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func logMove(sessionID string, pos engine.Position, state *engine.GameState) {
	log.Debug().
		Str("session", sessionID).
		Int("row", pos.Row).
		Int("col", pos.Col).
		Int("value", state.Counter-1).
		Msg("move accepted")

	if state.Terminal {
		log.Info().
			Str("session", sessionID).
			Int("moves", state.MovesMade()).
			Int("max_moves", state.MaxMoves).
			Msg("game over")
	}
}
