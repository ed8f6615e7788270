package mcclient

import (
	"errors"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

func (c *Client) readLoop() {
	reason := "socketClosed"
	defer func() {
		c.closed.Store(true)
		c.closeConn()
		c.failPendingCallbacks(ErrClosed)
		c.end(reason)
		c.wg.Done()
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if c.closed.Load() {
				reason = "disconnect.quitting"
				return
			}
			var ce *websocket.CloseError
			if errors.As(err, &ce) && ce.Text != "" {
				reason = ce.Text
			} else {
				reason = err.Error()
			}
			c.emitError(err)
			return
		}
		c.touchActivity()

		f, err := decodeFrame(data)
		if err != nil {
			c.emitError(err)
			continue
		}

		switch f.Type {
		case "response":
			c.mu.Lock()
			cb, ok := c.cbs[f.Seq]
			if ok {
				delete(c.cbs, f.Seq)
			}
			c.mu.Unlock()
			if ok {
				cb(f)
			}

		case "end":
			if r := str(f.Payload, "reason"); r != "" {
				reason = r
			}
			return

		case "login":
			if c.ev.OnLogin != nil {
				c.ev.OnLogin(str(f.Payload, "version"))
			}

		case "spawn":
			if c.ev.OnSpawn != nil {
				c.ev.OnSpawn()
			}

		case "chat":
			if c.ev.OnChat != nil {
				c.ev.OnChat(str(f.Payload, "username"), str(f.Payload, "message"))
			}

		case "autoeat_started", "autoeat_stopped":
			if c.ev.OnAutoEat != nil {
				c.ev.OnAutoEat(f.Type == "autoeat_started")
			}

		case "error":
			c.emitError(errors.New(str(f.Payload, "message")))

		case "entity", "entity_gone", "inventory":
			c.world.apply(f)

		default:
			c.log.Debug("unknown bridge frame", zap.String("type", f.Type))
		}
	}
}

func (c *Client) emitError(err error) {
	if c.ev.OnError != nil {
		c.ev.OnError(err)
	}
}

func (c *Client) end(reason string) {
	c.endOnce.Do(func() {
		if c.ev.OnEnd != nil {
			c.ev.OnEnd(reason)
		}
	})
}

// пометить все ожидающие callbacks ошибкой при обрыве/закрытии
func (c *Client) failPendingCallbacks(err error) {
	c.mu.Lock()
	pending := c.cbs
	c.cbs = make(map[uint32]func(Frame))
	c.mu.Unlock()

	for _, cb := range pending {
		cb(Frame{Type: "response", Payload: map[string]any{"error": err.Error()}})
	}
}
