package websocket

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait = 10 * time.Second
	// ReadIdle closes connections that stay silent longer than this.
	ReadIdle = 5 * time.Minute
)

// WriteTyped sends a strongly-typed response payload over the WebSocket.
// gorilla connections allow one concurrent writer; callers serialize.
func WriteTyped(conn *websocket.Conn, v interface{}) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(v)
}

// WriteError sends a typed ErrorResponse over the WebSocket.
func WriteError(conn *websocket.Conn, code, errMsg string) error {
	return WriteTyped(conn, ErrorResponse{
		Event: EventError,
		Code:  code,
		Error: errMsg,
	})
}

// ReadRequest reads one client message, extending the idle deadline.
func ReadRequest(conn *websocket.Conn) (Request, error) {
	var req Request
	conn.SetReadDeadline(time.Now().Add(ReadIdle))
	err := conn.ReadJSON(&req)
	return req, err
}
