package ipc

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/nstehr/brood/model"
)

// Handler processes a received envelope. Return nil to send no reply.
type Handler func(env Envelope) (*Envelope, error)

// Connection is one bridge talking to the sidecar, one match at a time.
// The read loop calls handlers synchronously, so a handler may send on the
// connection without racing the reply.
type Connection struct {
	conn     FrameConn
	handlers map[string]Handler
	Player   string
}

func NewConnection(conn FrameConn, handlers map[string]Handler) *Connection {
	if handlers == nil {
		handlers = make(map[string]Handler)
	}
	return &Connection{
		conn:     conn,
		handlers: handlers,
	}
}

func (c *Connection) RegisterHandler(msgType string, handler Handler) {
	c.handlers[msgType] = handler
}

func (c *Connection) Send(msgType string, data any) error {
	env, err := NewEnvelope(msgType, data)
	if err != nil {
		return err
	}
	return c.conn.WriteEnvelope(env)
}

// Submit sends one step's orders as a single actions message.
func (c *Connection) Submit(loop, gameStep int, orders []model.Order) error {
	return c.Send(TypeActions, ActionsMessage{Loop: loop, GameStep: gameStep, Orders: orders})
}

// ReadLoop serves the connection until the bridge hangs up or a reply cannot
// be written, then closes it. A clean hang-up returns nil. Handler errors are
// logged and the loop moves on to the next message.
func (c *Connection) ReadLoop() error {
	defer c.conn.Close()

	handled := 0
	for {
		env, err := c.conn.ReadEnvelope()
		if err != nil {
			slog.Info("connection read ended", "player", c.Player, "messages", handled, "error", err)
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil
			}
			return err
		}
		handled++

		handler, ok := c.handlers[env.Type]
		if !ok {
			slog.Warn("no handler for message type", "type", env.Type)
			continue
		}
		resp, err := handler(env)
		if err != nil {
			slog.Error("handler error", "type", env.Type, "player", c.Player, "error", err)
			continue
		}
		if resp == nil {
			continue
		}
		if err := c.conn.WriteEnvelope(*resp); err != nil {
			return fmt.Errorf("send %s: %w", resp.Type, err)
		}
		slog.Debug("sent response", "type", resp.Type, "player", c.Player)
	}
}
