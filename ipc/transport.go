package ipc

import (
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// FrameConn moves whole envelopes over some transport.
type FrameConn interface {
	ReadEnvelope() (Envelope, error)
	WriteEnvelope(Envelope) error
	Close() error
}

// socketConn frames envelopes with the 4-byte length prefix.
type socketConn struct {
	conn net.Conn
}

func NewSocketConn(conn net.Conn) FrameConn { return &socketConn{conn: conn} }

func (c *socketConn) ReadEnvelope() (Envelope, error)  { return ReadEnvelope(c.conn) }
func (c *socketConn) WriteEnvelope(env Envelope) error { return WriteEnvelope(c.conn, env) }
func (c *socketConn) Close() error                     { return c.conn.Close() }

// writeWait bounds a single websocket write.
const writeWait = 5 * time.Second

// wsConn carries one envelope per websocket text message.
type wsConn struct {
	conn *websocket.Conn
}

func NewWSConn(conn *websocket.Conn) FrameConn {
	conn.SetReadLimit(MaxMessageSize)
	return &wsConn{conn: conn}
}

func (c *wsConn) ReadEnvelope() (Envelope, error) {
	kind, msg, err := c.conn.ReadMessage()
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		return Envelope{}, io.EOF
	}
	if err != nil {
		return Envelope{}, fmt.Errorf("read message: %w", err)
	}
	if kind != websocket.TextMessage {
		return Envelope{}, fmt.Errorf("unexpected websocket message type %d", kind)
	}
	return decodeEnvelope(msg)
}

func (c *wsConn) WriteEnvelope(env Envelope) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(env); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

func (c *wsConn) Close() error {
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	return c.conn.Close()
}

// NewWSHandler upgrades every request to a websocket and hands the framed
// connection to serve, which owns it until it returns.
func NewWSHandler(serve func(FrameConn)) http.Handler {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  64 * 1024,
		WriteBufferSize: 64 * 1024,
		CheckOrigin:     func(r *http.Request) bool { return true }, // the bridge is local
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
			return
		}
		serve(NewWSConn(conn))
	})
}
