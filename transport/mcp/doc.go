// Package mcp exposes the Knight Grid game to AI agents over the Model
// Context Protocol.
//
// Client is a thin proxy: every tool call becomes a REST request against the
// api package, so agents and browsers share the same sessions.
//
// MCP Tools:
//   - create_session, list_sessions, get_session: session management
//   - game_state: text grid with visit numbers and "+" for legal next clicks
//   - move: click one cell by row and col
//   - bulk_move: click a sequence of cells, stopping at the first rejection
//   - reset_game: clear the grid
//   - move_history: paginated history including rejected clicks and resets
//   - list_configs, game_instructions: configuration and rules
//   - estimate_tour: the best Warnsdorff tour for any grid size
//   - describe_cell: one cell's number, legality and onward move count
//
// Transport Modes:
//
//	// Stdio
//	client := mcp.NewClient("http://127.0.0.1:8080")
//	server.ServeStdio(client.GetMCPServer())
//
//	// Single-message HTTP endpoint
//	http.Handle("/mcp", client.HTTPHandler())
//
// A rejected click is a normal tool result that names the reason
// (out_of_bounds, occupied, not_knight_move, game_over). Tool errors are
// reserved for transport failures and bad arguments.
package mcp
