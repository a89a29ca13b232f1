// Package gateway adapts WebSocket connections to the chat service's
// connection contract.
//
// Each WebSocket connection is bound to one session id — supplied by the
// client as the connection_id query parameter, or minted server-side. Text
// frames are forwarded to the service; replies, session-expired notices, and
// errors come back as typed JSON envelopes:
//
//	{"type": "message", "content": "..."}
//	{"type": "session_expired"}
//	{"type": "error", "content": "..."}
//
// A session_expired frame tells the client to reconnect (establishing a new
// session) rather than signalling an internal failure.
//
//	gw, err := gateway.New(svc, gateway.WithLogger(logger))
//	if err != nil {
//		log.Fatal(err)
//	}
//	http.Handle("/ws", gw)
package gateway
