// Package websocket provides WebSocket transport for the Knight Grid game.
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is served by a read pump and a
// write pump goroutine; the hub goroutine owns registration and fan-out.
//
// Message Protocol:
//
// The server only pushes. Each frame is one JSON Message:
//
//	{"session_id":"ab12","event":"state_update","game_state":{...}}
//	{"session_id":"ab12","event":"game_over","data":"Moves: 31 | Maximum possible: 50"}
//
// Incoming frames are read and discarded so that pings and close frames are
// handled.
//
// Session Integration:
//
// Clients pass their session ID as a query parameter (?session=ab12) when
// connecting. Updates are delivered only to clients of the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run(ctx)
//
//	hub.ServeWS(w, r, sessionID)
//	hub.BroadcastToSession(sessionID, state)
//
// Broadcasts never block the caller. When the queue is full the message is
// dropped and a warning is logged.
package websocket
