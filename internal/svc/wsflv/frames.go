// If you are AI: This file adapts a WebSocket connection to the byte writer the remuxer expects.
// The FLV writer issues one Write per tag, so each tag travels as one binary frame.

package wsflv

import (
	"github.com/gorilla/websocket"
)

// WebSocketConn defines the interface for WebSocket operations.
// This allows for easier testing and abstraction.
type WebSocketConn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// frameWriter sends every Write as one binary message.
type frameWriter struct {
	conn   WebSocketConn
	frames int
}

// Write sends p as a single frame.
func (f *frameWriter) Write(p []byte) (int, error) {
	if err := f.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	f.frames++
	return len(p), nil
}

// closeWith sends a close frame carrying code.
func closeWith(conn WebSocketConn, code int) error {
	return conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(code, ""))
}
