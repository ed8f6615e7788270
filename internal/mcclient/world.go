package mcclient

import "sync"

type Vec3 struct {
	X, Y, Z float64
}

type Entity struct {
	Username string
	Position Vec3
	Yaw      float64
	Pitch    float64
}

type Item struct {
	Slot  int
	Name  string
	Count int
}

// world — то, что бот знает о мире со слов моста: своя сущность,
// видимые игроки и инвентарь.
type world struct {
	mu      sync.RWMutex
	self    *Entity
	players map[string]Entity
	items   []Item
}

func newWorld() *world {
	return &world{players: make(map[string]Entity)}
}

func (w *world) apply(f Frame) {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch f.Type {
	case "entity":
		e := Entity{
			Username: str(f.Payload, "username"),
			Position: Vec3{X: num(f.Payload, "x"), Y: num(f.Payload, "y"), Z: num(f.Payload, "z")},
			Yaw:      num(f.Payload, "yaw"),
			Pitch:    num(f.Payload, "pitch"),
		}
		if boolean(f.Payload, "self") {
			w.self = &e
			return
		}
		if e.Username != "" {
			w.players[e.Username] = e
		}

	case "entity_gone":
		delete(w.players, str(f.Payload, "username"))

	case "inventory":
		raw, _ := f.Payload["items"].([]any)
		items := make([]Item, 0, len(raw))
		for _, r := range raw {
			m, ok := r.(map[string]any)
			if !ok {
				continue
			}
			items = append(items, Item{
				Slot:  int(num(m, "slot")),
				Name:  str(m, "name"),
				Count: int(num(m, "count")),
			})
		}
		w.items = items
	}
}

// Self возвращает собственную сущность бота; false — пока мост её не прислал.
func (c *Client) Self() (Entity, bool) {
	c.world.mu.RLock()
	defer c.world.mu.RUnlock()
	if c.world.self == nil {
		return Entity{}, false
	}
	return *c.world.self, true
}

// Player ищет видимую сущность игрока по точному имени.
func (c *Client) Player(username string) (Entity, bool) {
	c.world.mu.RLock()
	defer c.world.mu.RUnlock()
	e, ok := c.world.players[username]
	return e, ok
}

func (c *Client) Items() []Item {
	c.world.mu.RLock()
	defer c.world.mu.RUnlock()
	out := make([]Item, len(c.world.items))
	copy(out, c.world.items)
	return out
}
