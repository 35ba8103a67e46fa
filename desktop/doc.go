// Package desktop is the ebiten window for playing Knight Grid locally.
//
// Each frame follows the same order: read one input event (left click or R),
// hand it to the engine, then draw the resulting state. All layout and color
// decisions come from game/view, so this package only translates them into
// ebiten calls.
//
// Usage:
//
//	if err := desktop.Run(cfg); err != nil {
//		log.Fatal().Err(err).Msg("desktop")
//	}
package desktop
