package mcclient

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var (
	ErrNotConnected = errors.New("mcclient: not connected")
	ErrClosed       = errors.New("mcclient: connection closed")
)

// Config — куда подключаться (мост) и с какими данными логиниться на игровой сервер.
type Config struct {
	BridgeURL string
	Host      string
	Port      int
	Username  string
	Password  string // пусто — не отправляем
	Version   string // пусто — мост согласует версию сам
}

// Events — колбэки сессии (аналог EventEmitter). Все вызываются из readLoop,
// поэтому обработчики не должны блокироваться.
type Events struct {
	OnLogin   func(version string)
	OnSpawn   func()
	OnChat    func(username, message string)
	OnAutoEat func(started bool)
	OnError   func(error)
	// OnEnd вызывается ровно один раз за соединение.
	OnEnd func(reason string)
}

type Client struct {
	cfg Config
	log *zap.Logger

	dialer         *websocket.Dialer
	pingEvery      time.Duration
	readTimeout    time.Duration
	requestTimeout time.Duration

	conn   *websocket.Conn
	ev     Events
	seq    atomic.Uint32
	mu     sync.Mutex
	cbs    map[uint32]func(Frame)
	closed atomic.Bool

	wmu       sync.Mutex // сериализует запись в websocket
	pingStop  chan struct{}
	closeOnce sync.Once
	endOnce   sync.Once
	wg        sync.WaitGroup

	world *world
}

func New(cfg Config, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		cfg:            cfg,
		log:            log,
		dialer:         websocket.DefaultDialer,
		pingEvery:      10 * time.Second,
		readTimeout:    30 * time.Second,
		requestTimeout: 10 * time.Second,
		cbs:            make(map[uint32]func(Frame)),
		world:          newWorld(),
	}
}

// Connect — устанавливает WebSocket с мостом, отправляет login и запускает readLoop.
// Клиент одноразовый: после OnEnd нужен новый Client.
func (c *Client) Connect(ctx context.Context, ev Events) error {
	if c.conn != nil {
		return errors.New("mcclient: already connected")
	}
	c.ev = ev

	conn, err := c.dialAndSetup(ctx)
	if err != nil {
		return fmt.Errorf("dial bridge %s: %w", c.cfg.BridgeURL, err)
	}
	c.conn = conn

	if err := c.send(Frame{Type: "login", Payload: c.loginPayload()}); err != nil {
		c.closeConn()
		return fmt.Errorf("login: %w", err)
	}

	c.wg.Add(1)
	go c.readLoop()
	return nil
}

func (c *Client) loginPayload() map[string]any {
	p := map[string]any{
		"host":     c.cfg.Host,
		"port":     c.cfg.Port,
		"username": c.cfg.Username,
	}
	if c.cfg.Password != "" {
		p["password"] = c.cfg.Password
	}
	if c.cfg.Version != "" {
		p["version"] = c.cfg.Version
	}
	return p
}

// Close закрывает соединение и дожидается выхода фоновых горутин.
// Повторный вызов ничего не делает.
func (c *Client) Close() {
	c.closed.Store(true)
	c.closeConn()
	c.wg.Wait()
}

func (c *Client) IsConnected() bool {
	return c.conn != nil && !c.closed.Load()
}

// SendRequest — отправляет запрос с очередным seq. Если cb != nil, он будет
// вызван с ответом моста на этот seq (или с ошибкой при обрыве).
func (c *Client) SendRequest(typ string, payload map[string]any, cb func(Frame)) error {
	if !c.IsConnected() {
		return ErrNotConnected
	}
	seq := c.seq.Add(1)

	if cb != nil {
		c.mu.Lock()
		c.cbs[seq] = cb
		c.mu.Unlock()
	}

	if err := c.send(Frame{Type: typ, Seq: seq, Payload: payload}); err != nil {
		// сеть упала между подготовкой и записью — подчищаем cb
		c.mu.Lock()
		delete(c.cbs, seq)
		c.mu.Unlock()
		return err
	}
	return nil
}

// Request — синхронная обёртка над SendRequest: ждёт ответ, отмену ctx или requestTimeout.
func (c *Client) Request(ctx context.Context, typ string, payload map[string]any) error {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	errCh := make(chan error, 1)
	err := c.SendRequest(typ, payload, func(f Frame) {
		if msg := str(f.Payload, "error"); msg != "" {
			errCh <- errors.New(msg)
			return
		}
		errCh <- nil
	})
	if err != nil {
		return err
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", typ, ctx.Err())
	}
}

func (c *Client) send(f Frame) error {
	data, err := encodeFrame(f)
	if err != nil {
		return err
	}
	c.wmu.Lock()
	defer c.wmu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return c.conn.WriteMessage(websocket.BinaryMessage, data)
}
