package mcclient

import (
	"context"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// ========================= low-level =========================

// dial с установкой pong-handler'а, дедлайнов и запуском пингов
func (c *Client) dialAndSetup(ctx context.Context) (*websocket.Conn, error) {
	conn, _, err := c.dialer.DialContext(ctx, c.cfg.BridgeURL, nil)
	if err != nil {
		return nil, err
	}
	conn.SetReadLimit(16 << 20)

	_ = conn.SetReadDeadline(time.Now().Add(c.readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(c.readTimeout))
	})

	c.pingStop = make(chan struct{})
	c.wg.Add(1)
	go c.pingLoop(conn, c.pingStop)
	return conn, nil
}

// любой входящий трафик тоже считается признаком жизни
func (c *Client) touchActivity() {
	_ = c.conn.SetReadDeadline(time.Now().Add(c.readTimeout))
}

func (c *Client) pingLoop(conn *websocket.Conn, stop <-chan struct{}) {
	defer c.wg.Done()
	t := time.NewTicker(c.pingEvery)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			c.wmu.Lock()
			err := conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second))
			c.wmu.Unlock()
			if err != nil {
				c.log.Debug("ping failed", zap.Error(err))
			}
		case <-stop:
			return
		}
	}
}

// безопасно закрыть текущее соединение; readLoop после этого получит ошибку и выйдет
func (c *Client) closeConn() {
	c.closeOnce.Do(func() {
		if c.pingStop != nil {
			close(c.pingStop)
		}
		if c.conn == nil {
			return
		}
		c.wmu.Lock()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "closing"),
			time.Now().Add(500*time.Millisecond))
		c.wmu.Unlock()
		_ = c.conn.Close()
	})
}
