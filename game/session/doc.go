// Package session provides session management for the Knight Grid game.
//
// Each session is an independent single-player game with its own engine
// instance, its own grid and its own move history. Sessions are held in memory
// and are lost when the process exits.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference, generated with
// crypto/rand. Caller-chosen IDs are also accepted. Lookups are
// case-insensitive.
//
// Concurrency:
//
// The manager is safe for concurrent use. It does not serialize access to a
// session's engine; the service layer does that.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", config)
//	if err != nil {
//		return err
//	}
//
//	sess, err = manager.Get(sess.ID)
//
// Cleanup:
//
// CleanupExpiredSessions removes sessions idle for longer than a given age.
// The serve command runs it on a ticker.
package session
