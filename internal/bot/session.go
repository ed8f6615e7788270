package bot

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/EgorLis/mcbot/internal/mcclient"
)

// GameClient — всё, чем сессия управляет в игре. Реализуется *mcclient.Client.
type GameClient interface {
	Chat(message string) error
	SetMovements() error
	SetGoal(g mcclient.Goal) error
	ClearGoal() error
	SetControlState(control string, state bool) error
	Look(yaw, pitch float64, force bool) error
	Eat(ctx context.Context) error
	Equip(ctx context.Context, item mcclient.Item, destination string) error

	Self() (mcclient.Entity, bool)
	Player(username string) (mcclient.Entity, bool)
	Items() []mcclient.Item
}

// Transport — одноразовое подключение к серверу: Connect, события, Close.
type Transport interface {
	GameClient
	Connect(ctx context.Context, ev mcclient.Events) error
	Close()
}

type sessionConfig struct {
	owner    string
	username string

	afkEvery    time.Duration // 0 — anti-AFK выключен
	followEvery time.Duration
	jumpHold    time.Duration
}

// session — всё состояние одного подключения. Пересоздаётся целиком при
// каждом реконнекте, поэтому склад, цель слежки и таймеры не переживают обрыв.
//
// Все обработчики выполняются в одной горутине (run), колбэки транспорта
// только ставят замыкания в очередь inbox.
type session struct {
	id     string
	cfg    sessionConfig
	log    *zap.Logger
	client Transport
	status *atomic.Int32

	inbox chan func()
	ended chan string

	shop   *shopLedger
	follow *follower
	idle   *idleDriver

	spawned bool

	followTick *time.Ticker
	idleTick   *time.Ticker
	jumpTimer  *time.Timer

	ctx context.Context
	wg  sync.WaitGroup // eat/equip в полёте
}

func newSession(cfg sessionConfig, client Transport, log *zap.Logger, status *atomic.Int32) *session {
	id := uuid.NewString()
	return &session{
		id:     id,
		cfg:    cfg,
		log:    log.With(zap.String("session", id)),
		client: client,
		status: status,
		inbox:  make(chan func(), 64),
		ended:  make(chan string, 1),
		shop:   newShopLedger(),
		follow: &follower{client: client},
		idle:   newIdleDriver(client),
	}
}

// run подключается и крутит цикл событий до конца сессии. Возвращает причину отключения.
func (s *session) run(ctx context.Context) string {
	ctx, cancel := context.WithCancel(ctx)
	s.ctx = ctx
	defer s.teardown(cancel)

	s.setStatus(StatusConnecting)
	s.log.Info("connecting")
	if err := s.client.Connect(ctx, s.events()); err != nil {
		s.log.Error("bot error", zap.Error(err))
		return err.Error()
	}

	s.followTick = time.NewTicker(s.cfg.followEvery)

	for {
		select {
		case <-ctx.Done():
			return "context cancelled"
		case reason := <-s.ended:
			return reason
		case fn := <-s.inbox:
			fn()
		case <-s.followTick.C:
			s.follow.Refresh()
		case <-tickerC(s.idleTick):
			s.idleMotion()
		case <-timerC(s.jumpTimer):
			s.jumpTimer = nil
			s.idle.Release()
		}
	}
}

// teardown — единая точка остановки для любого пути отключения.
func (s *session) teardown(cancel context.CancelFunc) {
	if s.followTick != nil {
		s.followTick.Stop()
	}
	if s.idleTick != nil {
		s.idleTick.Stop()
	}
	if s.jumpTimer != nil {
		s.jumpTimer.Stop()
	}
	cancel()
	s.client.Close()
	s.wg.Wait()
	s.setStatus(StatusDisconnected)
}

func (s *session) events() mcclient.Events {
	return mcclient.Events{
		OnLogin: func(version string) {
			s.log.Info("logged in", zap.String("version", version))
		},
		OnSpawn: func() { s.post(s.onSpawn) },
		OnChat: func(username, message string) {
			s.post(func() { s.onChat(username, message) })
		},
		OnAutoEat: func(started bool) {
			if started {
				s.log.Info("auto-eat started")
			} else {
				s.log.Info("auto-eat stopped")
			}
		},
		OnError: func(err error) {
			s.log.Warn("bot error", zap.Error(err))
		},
		OnEnd: func(reason string) {
			select {
			case s.ended <- reason:
			default:
			}
		},
	}
}

// post ставит fn в цикл событий; после завершения сессии тихо выбрасывает.
func (s *session) post(fn func()) {
	select {
	case s.inbox <- fn:
	case <-s.ctx.Done():
	}
}

// async выполняет медленный запрос вне цикла, а продолжение done — снова в цикле.
func (s *session) async(work func(ctx context.Context) (done func())) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.post(work(s.ctx))
	}()
}

func (s *session) onSpawn() {
	s.setStatus(StatusConnected)
	s.log.Info("bot spawned")
	if s.spawned {
		return
	}
	s.spawned = true

	if err := s.client.SetMovements(); err != nil {
		s.log.Warn("set movements", zap.Error(err))
	}
	if s.cfg.afkEvery > 0 {
		s.idleTick = time.NewTicker(s.cfg.afkEvery)
	}
}

func (s *session) onChat(username, message string) {
	if message == "" {
		return
	}
	s.log.Info("chat", zap.String("user", username), zap.String("message", message))
	if strings.EqualFold(username, s.cfg.username) {
		return
	}
	inv, ok := ParseInvocation(username, message)
	if !ok {
		return
	}
	s.dispatch(inv)
}

func (s *session) idleMotion() {
	s.idle.Perturb()
	if s.jumpTimer == nil {
		s.jumpTimer = time.NewTimer(s.cfg.jumpHold)
	}
}

func (s *session) reply(msg string) {
	// ошибку уже залогировал клиент
	_ = s.client.Chat(msg)
}

func (s *session) setStatus(st Status) {
	if s.status != nil {
		s.status.Store(int32(st))
	}
}

func tickerC(t *time.Ticker) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

func timerC(t *time.Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}
