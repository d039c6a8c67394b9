// Package ws streams a terminal session over a WebSocket.
//
// One connection drives one session. The client sends key presses or whole
// lines; the server answers each with the resulting scrollback and the new
// input line. When the session closes (exit, logout) the server sends a
// "closed" message and hangs up.
//
// Message Types (Client → Server):
//   - exec: run {"line": "..."}
//   - key: feed {"key": "Tab", "ctrl": false} to the line editor
//   - ping: keep-alive
//
// Message Types (Server → Client):
//   - connected: session info and the initial input line
//   - result: outcome of an exec message
//   - key: outcome of a key message
//   - pong: keep-alive reply
//   - closed: the session ended
//   - error: malformed or unknown message
//
// Example Usage:
//
//	handler := ws.NewHandler(sessions, interp, logger, ws.WithMetrics(metrics))
//	router.GET("/sessions/:id/stream", handler.HandleConnection)
package ws
