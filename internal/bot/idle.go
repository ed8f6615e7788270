package bot

import (
	"math/rand/v2"
	"time"
)

const (
	jumpHold = 250 * time.Millisecond
	// look сдвигается на величину из [-lookJitter/2, lookJitter/2)
	lookJitter = 0.1
)

// idleDriver — anti-AFK: подпрыгнуть и чуть повернуть голову, не сдвигаясь с места.
type idleDriver struct {
	client  GameClient
	rnd     func() float64
	jumping bool
}

func newIdleDriver(client GameClient) *idleDriver {
	return &idleDriver{client: client, rnd: rand.Float64}
}

// Perturb прыгает всегда; поворот головы только если своя сущность уже известна.
func (d *idleDriver) Perturb() {
	_ = d.client.SetControlState("jump", true)
	d.jumping = true

	self, ok := d.client.Self()
	if !ok {
		return
	}
	dx := (d.rnd() - 0.5) * lookJitter
	dz := (d.rnd() - 0.5) * lookJitter
	_ = d.client.Look(self.Yaw+dx, self.Pitch+dz, true)
}

func (d *idleDriver) Release() {
	if !d.jumping {
		return
	}
	d.jumping = false
	_ = d.client.SetControlState("jump", false)
}
