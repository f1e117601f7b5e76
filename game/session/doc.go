// Package session keeps the in-memory set of live puzzle sessions.
//
// Each session owns one engine.GameEngine, the rules it was created with,
// and access timestamps. Identifiers are case-insensitive; when the caller
// does not supply one the manager generates a short hex ID.
//
// The manager is safe for concurrent use. It guards only its own map: the
// engine inside a session is serialized by the session's lock, which the
// service layer takes around every engine call.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", engine.DefaultRules(), engine.NewRandomSelector(42), 42)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//
// Sessions are never written to disk. Idle ones can be dropped with
// CleanupExpiredSessions.
package session
