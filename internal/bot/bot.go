package bot

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/EgorLis/mcbot/internal/config"
	"github.com/EgorLis/mcbot/internal/mcclient"
)

type Status int32

const (
	StatusDisconnected Status = iota
	StatusConnecting
	StatusConnected
)

func (s Status) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Bot — менеджер сессий: держит ровно одну живую сессию и после любого
// отключения через фиксированную паузу собирает новую с нуля.
type Bot struct {
	cfg config.Config
	log *zap.Logger

	newTransport   func() Transport
	reconnectDelay time.Duration
	session        sessionConfig

	status   atomic.Int32
	sessions atomic.Int64

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type Option func(*Bot)

// WithTransport подменяет клиент моста (например, в тестах).
func WithTransport(fn func() Transport) Option {
	return func(b *Bot) { b.newTransport = fn }
}

func New(cfg config.Config, log *zap.Logger, opts ...Option) *Bot {
	if log == nil {
		log = zap.NewNop()
	}
	b := &Bot{
		cfg:            cfg,
		log:            log,
		reconnectDelay: cfg.ReconnectDelay,
		session: sessionConfig{
			owner:       cfg.Owner,
			username:    cfg.Username,
			afkEvery:    cfg.AFKEvery(),
			followEvery: followEvery,
			jumpHold:    jumpHold,
		},
	}
	b.newTransport = func() Transport {
		return mcclient.New(mcclient.Config{
			BridgeURL: cfg.BridgeURL,
			Host:      cfg.Host,
			Port:      cfg.Port,
			Username:  cfg.Username,
			Password:  cfg.Password,
			Version:   cfg.Version,
		}, log.Named("mcclient"))
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.reconnectDelay <= 0 {
		b.reconnectDelay = 5 * time.Second
	}
	return b
}

func (b *Bot) Status() Status { return Status(b.status.Load()) }

// Sessions — сколько сессий было запущено (включая текущую).
func (b *Bot) Sessions() int64 { return b.sessions.Load() }

// Run крутит сессии до отмены ctx. Повторы без лимита, без джиттера и без роста паузы.
func (b *Bot) Run(ctx context.Context) error {
	b.log.Info("starting bot",
		zap.String("host", b.cfg.Host),
		zap.Int("port", b.cfg.Port),
		zap.String("user", b.cfg.Username),
		zap.Bool("owner_set", b.cfg.Owner != ""),
	)
	for {
		b.sessions.Add(1)
		s := newSession(b.session, b.newTransport(), b.log, &b.status)
		reason := s.run(ctx)

		if ctx.Err() != nil {
			b.log.Info("bot stopped")
			return nil
		}
		b.log.Warn("bot disconnected", zap.String("reason", reason), zap.Duration("retry_in", b.reconnectDelay))

		t := time.NewTimer(b.reconnectDelay)
		select {
		case <-ctx.Done():
			t.Stop()
			b.log.Info("bot stopped")
			return nil
		case <-t.C:
		}
		b.log.Info("reconnecting")
	}
}

func (b *Bot) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cancel != nil {
		return errors.New("bot: already running")
	}
	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		_ = b.Run(ctx)
	}()
	return nil
}

// Stop останавливает текущую сессию и ждёт выхода; повторный Stop() ничего не делает.
func (b *Bot) Stop() {
	b.mu.Lock()
	cancel := b.cancel
	b.cancel = nil
	b.mu.Unlock()

	if cancel != nil {
		cancel()
		b.wg.Wait()
	}
}
