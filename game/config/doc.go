// Package config provides configuration management for the Knight Grid game.
//
// The config package handles:
//   - Loading game configurations from JSON files
//   - Validation through engine.ValidateGameConfig
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Game configurations are stored as JSON files in the configs directory.
// Each configuration defines:
//   - Grid dimensions (rows, cols; 1 to 20 each)
//   - Cell size in pixels for the desktop window
//   - Messages for welcome, instructions, rejection and game over
//
// Available Configurations:
//   - default: the 10x5 board
//   - classic: a chessboard-sized 8x8 board
//   - small: a 5x5 board
//   - tiny: a 3x4 board that ends quickly
//
// A config named "default" always resolves, falling back to the built-in
// engine.DefaultGameConfig when no default.json exists.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal().Err(err).Msg("config manager")
//	}
//
//	gameConfig, err := manager.LoadConfig("small")
//	configs, err := manager.ListConfigs()
package config
