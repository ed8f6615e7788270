package bot

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/EgorLis/mcbot/internal/mcclient"
)

type controlCall struct {
	control string
	state   bool
}

type lookCall struct {
	yaw, pitch float64
	force      bool
}

// fakeClient — Transport в памяти: пишет вызовы, отдаёт заранее заданный мир.
type fakeClient struct {
	mu sync.Mutex

	ev         mcclient.Events
	connectErr error
	connected  chan struct{}
	endOnce    sync.Once

	self    *mcclient.Entity
	players map[string]mcclient.Entity
	items   []mcclient.Item

	eatErr   error
	equipErr error
	// если задан, Eat ждёт его закрытия
	eatGate chan struct{}

	replies   chan string
	goals     []mcclient.Goal
	controls  []controlCall
	looks     []lookCall
	equipped  []mcclient.Item
	movements int
	closed    bool
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		connected: make(chan struct{}),
		players:   make(map[string]mcclient.Entity),
		replies:   make(chan string, 128),
	}
}

func (f *fakeClient) Connect(_ context.Context, ev mcclient.Events) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.connectErr != nil {
		return f.connectErr
	}
	f.ev = ev
	close(f.connected)
	return nil
}

func (f *fakeClient) Close() {
	f.mu.Lock()
	f.closed = true
	onEnd := f.ev.OnEnd
	f.mu.Unlock()
	f.end(onEnd, "disconnect.quitting")
}

func (f *fakeClient) end(onEnd func(string), reason string) {
	f.endOnce.Do(func() {
		if onEnd != nil {
			onEnd(reason)
		}
	})
}

func (f *fakeClient) Chat(message string) error {
	f.replies <- message
	return nil
}

func (f *fakeClient) SetMovements() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.movements++
	return nil
}

func (f *fakeClient) SetGoal(g mcclient.Goal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.goals = append(f.goals, g)
	return nil
}

func (f *fakeClient) ClearGoal() error {
	return f.SetGoal(mcclient.Goal{Kind: mcclient.GoalNone})
}

func (f *fakeClient) SetControlState(control string, state bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.controls = append(f.controls, controlCall{control, state})
	return nil
}

func (f *fakeClient) Look(yaw, pitch float64, force bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.looks = append(f.looks, lookCall{yaw, pitch, force})
	return nil
}

func (f *fakeClient) Eat(ctx context.Context) error {
	f.mu.Lock()
	gate, err := f.eatGate, f.eatErr
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func (f *fakeClient) Equip(_ context.Context, item mcclient.Item, destination string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.equipErr != nil {
		return f.equipErr
	}
	if destination == "hand" {
		f.equipped = append(f.equipped, item)
	}
	return nil
}

func (f *fakeClient) Self() (mcclient.Entity, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.self == nil {
		return mcclient.Entity{}, false
	}
	return *f.self, true
}

func (f *fakeClient) Player(username string) (mcclient.Entity, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.players[username]
	return e, ok
}

func (f *fakeClient) Items() []mcclient.Item {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]mcclient.Item(nil), f.items...)
}

// ---------- управление со стороны теста ----------

func (f *fakeClient) setPlayer(name string, pos mcclient.Vec3) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.players[name] = mcclient.Entity{Username: name, Position: pos}
}

func (f *fakeClient) removePlayer(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.players, name)
}

func (f *fakeClient) setSelf(e mcclient.Entity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.self = &e
}

func (f *fakeClient) events() mcclient.Events {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ev
}

func (f *fakeClient) chat(username, message string) {
	f.events().OnChat(username, message)
}

func (f *fakeClient) spawn() {
	f.events().OnSpawn()
}

// drop — сервер оборвал соединение.
func (f *fakeClient) drop(reason string) {
	ev := f.events()
	if ev.OnError != nil {
		ev.OnError(context.DeadlineExceeded)
	}
	f.end(ev.OnEnd, reason)
}

func (f *fakeClient) goalList() []mcclient.Goal {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]mcclient.Goal(nil), f.goals...)
}

func (f *fakeClient) controlList() []controlCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]controlCall(nil), f.controls...)
}

func (f *fakeClient) lookList() []lookCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]lookCall(nil), f.looks...)
}

func (f *fakeClient) waitConnected(t *testing.T) {
	t.Helper()
	select {
	case <-f.connected:
	case <-time.After(2 * time.Second):
		t.Fatal("transport never connected")
	}
}

func (f *fakeClient) nextReply(t *testing.T) string {
	t.Helper()
	select {
	case r := <-f.replies:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("no chat reply")
		return ""
	}
}
