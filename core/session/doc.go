// Package session tracks per-connection conversational state for a chat
// backend: a bounded message history per session, idle expiry, and a
// disconnect grace period that lets clients reconnect without losing history.
//
// # Lifecycle
//
// Each session moves through a small state machine:
//
//	(none) -> active -> disconnected -> (destroyed)
//
// with a direct active -> destroyed path (idle expiry), a disconnected ->
// active path (reconnect within grace), and a disconnected -> destroyed path
// (grace elapsed or explicit destroy). An active session carries an expiry
// timer, a disconnected session a grace timer; every state change cancels the
// timer it invalidates before arming the next. A periodic sweep additionally
// destroys active sessions whose expiry passed without their timer firing.
//
// Because a session may be destroyed by whichever fires first (explicit
// destroy, expiry timer, grace timer, or sweep), all destruction paths are
// idempotent and operations on missing sessions return sentinel values
// instead of errors.
//
// # Usage
//
//	import "github.com/dmitrymomot/chatkit/core/session"
//
//	mgr, err := session.NewManager(session.Config{
//		TTL:           15 * time.Minute,
//		MaxHistory:    50,
//		SweepInterval: time.Minute,
//		GracePeriod:   30 * time.Second,
//	}, session.WithLogger(logger))
//	if err != nil {
//		log.Fatal(err)
//	}
//	mgr.Start()
//	defer mgr.Stop()
//
//	mgr.Create("conn-1")
//	mgr.AddMessage("conn-1", session.RoleUser, "hi")
//	history := mgr.History("conn-1")
//
// A nil return from AddMessage means the session expired or never existed;
// gateways should answer with a "session expired" notice so the client can
// re-establish, rather than treating it as an internal error.
package session
