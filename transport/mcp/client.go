package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/wricardo/mcp-training/knightgrid/game/engine"
	"github.com/wricardo/mcp-training/knightgrid/game/service"
	"github.com/wricardo/mcp-training/knightgrid/game/view"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Knight Grid",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Knight Grid - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Number as many cells as possible. The first click may be any cell; every
later click must be an unvisited cell one knight's move away from the last.
Compare your path length with the Warnsdorff estimate (Maximum possible).

AVAILABLE TOOLS:
- create_session: Create new game session
- list_sessions: List all active sessions
- get_session: Get session details
- game_state: Get current grid, candidates and counters
- move: Click one cell (row, col) - requires intent explanation
- bulk_move: Click several cells in order - requires intent explanation
- reset_game: Clear the grid
- move_history: View past clicks, including rejected ones
- list_configs: List available grid configurations
- game_instructions: Full rules and strategy hints
- estimate_tour: Best Warnsdorff tour for any grid size
- describe_cell: Details about one cell, including its onward move count

NOTE: The 'intent' parameter on move/bulk_move tools serves as rubber duck debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

func sessionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func cellProperties() map[string]interface{} {
	return map[string]interface{}{
		"row": map[string]interface{}{
			"type":        "integer",
			"description": "Row of the cell (0-based, top to bottom)",
		},
		"col": map[string]interface{}{
			"type":        "integer",
			"description": "Column of the cell (0-based, left to right)",
		},
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the config to use (optional, see list_configs)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	moveProps := cellProperties()
	moveProps["session_id"] = sessionProperty()
	moveProps["intent"] = map[string]interface{}{
		"type":        "string",
		"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
	}
	moveProps["reset"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Reset before clicking",
	}
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Click a cell. Rejected clicks leave the grid unchanged and report why.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: moveProps,
			Required:   []string{"session_id", "row", "col"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_move",
		Description: fmt.Sprintf("Click cells in sequence, stopping at the first rejection or at game over (max %d)", engine.MaxBulkMoves),
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"moves": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type":       "object",
						"properties": cellProperties(),
						"required":   []string{"row", "col"},
					},
					"description": "Cells to click, in order",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this sequence of moves (serves as a rubber duck to help explain your reasoning)",
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset before clicking",
				},
			},
			Required: []string{"session_id", "moves"},
		},
	}, c.handleBulkMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the game to an empty grid",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get move history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
				"order": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"asc", "desc"},
					"description": "Oldest first (asc) or newest first (desc, default)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "estimate_tour",
		Description: "Run the Warnsdorff estimator for a grid size and show the best tour it found",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"rows": map[string]interface{}{
					"type":        "integer",
					"description": fmt.Sprintf("Grid rows (%d-%d)", engine.MinGridSize, engine.MaxGridSize),
				},
				"cols": map[string]interface{}{
					"type":        "integer",
					"description": fmt.Sprintf("Grid columns (%d-%d)", engine.MinGridSize, engine.MaxGridSize),
				},
			},
			Required: []string{"rows", "cols"},
		},
	}, c.handleEstimateTour)

	describeProps := cellProperties()
	describeProps["session_id"] = sessionProperty()
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Get detailed information about one cell: its number, whether it is a legal next click and how many onward moves it leaves.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: describeProps,
			Required:   []string{"session_id", "row", "col"},
		},
	}, c.handleDescribeCell)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// HTTPHandler serves single JSON-RPC messages over POST.
func (c *Client) HTTPHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := c.mcpServer.HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	}
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("mcp api call")

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// arguments returns the tool arguments as a map, tolerating a missing object.
func arguments(request mcp.CallToolRequest) map[string]interface{} {
	if args, ok := request.Params.Arguments.(map[string]interface{}); ok {
		return args
	}
	return map[string]interface{}{}
}

// intArg reads an integer argument. JSON numbers arrive as float64.
func intArg(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	case int:
		return v, true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	default:
		return 0, false
	}
}

func cellArgs(args map[string]interface{}) (engine.Position, error) {
	row, okRow := intArg(args, "row")
	col, okCol := intArg(args, "col")
	if !okRow || !okCol {
		return engine.Position{}, fmt.Errorf("row and col must be integers")
	}
	return engine.Position{Row: row, Col: col}, nil
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n", session.ID, session.ConfigName)
	if session.GameState != nil {
		result += "\n" + formatGameState(session.GameState)
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		status := ""
		if s.GameState != nil {
			status = fmt.Sprintf(", Moves: %d/%d", s.GameState.MovesMade(), s.GameState.MaxMoves)
			if s.GameState.Terminal {
				status += ", over"
			}
		}
		fmt.Fprintf(&b, "- %s (Config: %s, Created: %s%s)\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"), status)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	reset, _ := args["reset"].(bool)

	intent, _ := args["intent"].(string)
	log.Debug().Str("session", sessionID).Str("intent", intent).Msg("move intent")

	pos, err := cellArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	body := map[string]interface{}{
		"row":   pos.Row,
		"col":   pos.Col,
		"reset": reset,
	}

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/move"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(pos, &result)), nil
}

func (c *Client) handleBulkMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	movesRaw, _ := args["moves"].([]interface{})
	reset, _ := args["reset"].(bool)

	intent, _ := args["intent"].(string)
	log.Debug().Str("session", sessionID).Str("intent", intent).Msg("bulk move intent")

	moves := make([]map[string]int, 0, len(movesRaw))
	for i, m := range movesRaw {
		cell, ok := m.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("move %d: expected an object with row and col", i+1)), nil
		}
		pos, err := cellArgs(cell)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("move %d: %v", i+1, err)), nil
		}
		moves = append(moves, map[string]int{"row": pos.Row, "col": pos.Col})
	}

	body := map[string]interface{}{
		"moves": moves,
		"reset": reset,
	}

	var result service.BulkMoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/bulk-move"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBulkMoveResult(sessionID, &result)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}

	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/reset"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := response.Message
	if response.State != nil {
		result += "\n\n" + formatGameState(response.State)
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	params := url.Values{}
	if page, ok := intArg(args, "page"); ok {
		params.Set("page", fmt.Sprint(page))
	}
	if limit, ok := intArg(args, "limit"); ok {
		params.Set("limit", fmt.Sprint(limit))
	}
	if order, ok := args["order"].(string); ok && order != "" {
		params.Set("order", order)
	}

	path := sessionPath(sessionID, "/history")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, cfg := range configs {
		fmt.Fprintf(&b, "• %s (config_id: %s)\n  %s\n  Grid: %dx%d, Maximum possible: %d\n\n",
			cfg.Name, cfg.ConfigID, cfg.Description, cfg.Rows, cfg.Cols, cfg.MaxMoves)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `Knight Grid - Complete Instructions

GAME OBJECTIVE:
Click cells to number them 1, 2, 3, ... The longer your path, the better.
When no legal click remains the game ends and your move count is compared
with the Warnsdorff estimate shown as "Maximum possible".

RULES:
• First click: any cell on the grid
• Every later click: an unvisited cell exactly one knight's move from the
  previous click, that is 2 rows and 1 column away, or 1 row and 2 columns
• Rejected clicks change nothing. The reason is one of:
  - out_of_bounds: the cell is outside the grid
  - occupied: the cell already has a number
  - not_knight_move: the cell is not a knight's move away
  - game_over: no clicks are accepted until you reset
• Reset clears the grid. History keeps everything, including resets.

GRID LEGEND (game_state):
• N - the cell was clicked N-th
• + - a legal next click (candidate)
• . - any other empty cell
Coordinates are (row, col), 0-based, row 0 at the top.

STRATEGY (Warnsdorff's rule):
• Prefer the candidate that leaves the FEWEST onward moves. Cells near the
  edges and corners get stranded first, so visit them early.
• describe_cell reports the onward move count for any cell.
• Starting in a corner is often strong.
• estimate_tour shows the tour the heuristic itself finds. The estimate is a
  heuristic, not a proven maximum: beating it is possible on some grids.

API USAGE:
- Use bulk_move to play a planned sequence in one call
- bulk_move stops at the first rejected click or at game over
- reset=true on move/bulk_move starts a fresh grid first

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously
- Each session has a unique 4-character ID
- Sessions keep independent grids and configurations`

	return mcp.NewToolResultText(instructions), nil
}

func (c *Client) handleEstimateTour(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	rows, okRows := intArg(args, "rows")
	cols, okCols := intArg(args, "cols")
	if !okRows || !okCols {
		return mcp.NewToolResultError("rows and cols must be integers"), nil
	}

	var plan engine.TourPlan
	path := fmt.Sprintf("/api/tour?rows=%d&cols=%d", rows, cols)
	if err := c.apiCall(ctx, "GET", path, nil, &plan); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatTourPlan(&plan)), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	pos, err := cellArgs(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !state.Grid.InBounds(pos) {
		return mcp.NewToolResultError(fmt.Sprintf("Cell (%d, %d) is out of bounds. Grid is %dx%d (rows 0-%d, cols 0-%d)",
			pos.Row, pos.Col, state.Grid.Rows, state.Grid.Cols, state.Grid.Rows-1, state.Grid.Cols-1)), nil
	}

	return mcp.NewToolResultText(describeCell(&state, pos)), nil
}

// Formatting helpers

func describeCell(state *engine.GameState, pos engine.Position) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Cell (%d, %d):\n", pos.Row, pos.Col)

	value, _ := state.Grid.At(pos)
	if value > 0 {
		fmt.Fprintf(&b, "Number: %d (visited)\n", value)
	} else {
		b.WriteString("Number: none (empty)\n")
	}
	if state.LastClicked != nil && *state.LastClicked == pos {
		b.WriteString("This is the last clicked cell.\n")
	}

	reason := state.CheckMove(pos)
	if reason == engine.Accepted {
		b.WriteString("Legal next click: yes\n")
	} else {
		fmt.Fprintf(&b, "Legal next click: no (%s)\n", reason)
	}

	onward := 0
	for _, n := range engine.KnightNeighbors(pos, state.Grid.Rows, state.Grid.Cols) {
		if state.Grid.IsEmpty(n) {
			onward++
		}
	}
	fmt.Fprintf(&b, "Onward moves from here: %d\n", onward)
	return b.String()
}

func formatSessionInfo(session *service.SessionInfo) string {
	result := fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n",
		session.ID, session.ConfigName, session.CreatedAt.Format(time.RFC3339))
	if session.GameState != nil {
		result += "\n" + formatGameState(session.GameState)
	}
	return result
}

func formatGameState(state *engine.GameState) string {
	var b strings.Builder
	b.WriteString(view.RenderText(state))

	if len(state.Candidates) > 0 {
		b.WriteString("\nCandidates: ")
		b.WriteString(formatPositions(state.Candidates))
		b.WriteString("\n")
	} else if state.LastClicked == nil {
		b.WriteString("\nCandidates: any cell\n")
	}

	if state.Message != "" {
		fmt.Fprintf(&b, "\n%s\n", state.Message)
	}
	return b.String()
}

func formatMoveResult(pos engine.Position, result *service.MoveResult) string {
	var b strings.Builder
	if result.Success {
		value := 0
		if result.Step != nil {
			value = result.Step.Value
		}
		fmt.Fprintf(&b, "✅ Clicked (%d, %d) = %d\n", pos.Row, pos.Col, value)
	} else {
		fmt.Fprintf(&b, "❌ Rejected (%d, %d): %s", pos.Row, pos.Col, result.Reason)
		if result.Message != "" {
			fmt.Fprintf(&b, " - %s", result.Message)
		}
		b.WriteString("\n")
	}

	if result.GameState != nil {
		b.WriteString("\n")
		b.WriteString(formatGameState(result.GameState))
	}
	return b.String()
}

func formatBulkMoveResult(sessionID string, result *service.BulkMoveResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session %s: executed %d of %d moves (counter %d → %d)\n",
		sessionID, result.MovesExecuted, result.RequestedMoves, result.StartCounter, result.EndCounter)

	if result.Truncated {
		fmt.Fprintf(&b, "⚠️ Request truncated to %d moves\n", result.Limit)
	}

	for _, step := range result.Steps {
		b.WriteString(formatStepLine(step))
	}

	if result.StopReasonCode != "" {
		fmt.Fprintf(&b, "Stopped on move %d: %s", result.StoppedOnMove, result.StopReasonCode)
		if result.StoppedReason != "" {
			fmt.Fprintf(&b, " - %s", result.StoppedReason)
		}
		b.WriteString("\n")
	}

	if result.GameState != nil {
		b.WriteString("\n")
		b.WriteString(formatGameState(result.GameState))
	}
	return b.String()
}

func formatStepLine(step service.StepInfo) string {
	if step.Success {
		return fmt.Sprintf("  %d. (%d, %d) = %d\n", step.Idx, step.To.Row, step.To.Col, step.Value)
	}
	return fmt.Sprintf("  %d. (%d, %d) rejected: %s\n", step.Idx, step.To.Row, step.To.Col, step.Reason)
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Move History (page %d of %d, %d total):\n\n", history.Page, history.TotalPages, history.TotalMoves)
	for _, entry := range history.Moves {
		switch {
		case entry.Action == "reset":
			fmt.Fprintf(&b, "#%d reset\n", entry.MoveNumber)
		case entry.Accepted:
			fmt.Fprintf(&b, "#%d (%d, %d) = %d\n", entry.MoveNumber, entry.Position.Row, entry.Position.Col, entry.Value)
		default:
			fmt.Fprintf(&b, "#%d (%d, %d) rejected: %s\n", entry.MoveNumber, entry.Position.Row, entry.Position.Col, entry.Reason)
		}
	}
	return b.String()
}

func formatTourPlan(plan *engine.TourPlan) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Warnsdorff estimate for %dx%d: %d cells\n", plan.Rows, plan.Cols, plan.Length)
	if plan.Length > 0 {
		fmt.Fprintf(&b, "Best start: (%d, %d)\n\n", plan.Start.Row, plan.Start.Col)
		b.WriteString(view.RenderTour(*plan))
	}
	return b.String()
}

func formatPositions(positions []engine.Position) string {
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = fmt.Sprintf("(%d, %d)", p.Row, p.Col)
	}
	return strings.Join(parts, " ")
}
