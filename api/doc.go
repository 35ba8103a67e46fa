// Package api provides HTTP REST API handlers for the Knight Grid game.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session ({"config_id": "small"}, optional)
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current game state
//   - POST /api/sessions/{id}/move - Click a cell: {"row": 2, "col": 1, "reset": false}
//   - POST /api/sessions/{id}/bulk-move - {"moves": [{"row": 0, "col": 0}, ...], "reset": false}
//   - POST /api/sessions/{id}/reset - Start over
//   - GET /api/sessions/{id}/history - Move history (?page=1&limit=20&order=desc)
//
// Configuration:
//   - GET /api/configs - List available configurations
//   - GET /api/configs/{name} - Get one configuration
//
// Analysis:
//   - GET /api/tour?rows=8&cols=8 - Best Warnsdorff tour for a grid size
//
// Other:
//   - GET /ws?session={id} - WebSocket state updates
//   - GET /health - Liveness check
//   - GET / - Static web client
//
// Rejected clicks are not errors. A move response always has status 200 and
// carries success, reason (out_of_bounds|occupied|not_knight_move|game_over),
// a step record and the enriched game state including candidate cells.
//
// Errors are returned as JSON with an appropriate HTTP status code:
//
//	{"error": "session not found: session not found"}
package api
