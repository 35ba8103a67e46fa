// Package service provides the business logic layer for the Knight Grid game.
//
// The service package implements:
//   - Multi-session game management
//   - Click processing with rejection reasons and game events
//   - Bulk clicks with a per-call cap
//   - Paginated move history
//   - Tour estimation for arbitrary grid sizes
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages game configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transports (HTTP, WebSocket, MCP) and the
// game engine. It serializes access to each engine and hands out copies of the
// game state, so callers may marshal results after the lock is released.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, "small")
//	if err != nil {
//		return err
//	}
//
//	result, err := gameService.Move(ctx, info.ID, engine.Position{Row: 0, Col: 0}, false)
//
// A rejected click is not an error: Move returns a MoveResult with Success
// false and the engine's RejectReason.
package service
