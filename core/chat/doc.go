// Package chat connects the transport layer to the session manager and a
// pluggable completion engine.
//
// The transport reports three events — OnConnect, OnDisconnect, OnMessage —
// and the service handles the rest: reconnecting sessions within their grace
// period, appending role-tagged messages to the bounded history, handing the
// history to the engine for context, and appending the reply.
//
// A message against an expired or absent session returns ErrSessionExpired,
// distinct from engine failures, so gateways can tell clients to
// re-establish rather than reporting an internal error.
//
//	engine := myprovider.New(...) // implements chat.Engine
//
//	svc, err := chat.NewService(sessions, engine,
//		chat.WithStorage(store),
//		chat.WithServiceLogger(logger),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	svc.OnConnect("conn-1")
//	reply, err := svc.OnMessage(ctx, "conn-1", "hello")
//
// Engines that implement StreamingEngine can deliver replies incrementally
// through OnMessageStream; the final chunk is flagged Done and the
// accumulated text lands in the session history.
package chat
