package bot

import (
	"time"

	"github.com/EgorLis/mcbot/internal/mcclient"
)

const (
	followEvery = 2 * time.Second
	followRange = 1
)

// follower держит не больше одной цели слежки. Pathfinder идёт к цели один
// раз за вызов, поэтому Refresh по таймеру переставляет цель на свежую позицию.
type follower struct {
	client GameClient
	target string
}

func (f *follower) Set(username string, e mcclient.Entity) {
	f.target = username
	_ = f.client.SetGoal(mcclient.NearGoal(e.Position, followRange, true))
}

func (f *follower) Target() (string, bool) {
	return f.target, f.target != ""
}

// Stop сбрасывает цель движения и слежку; повторный вызов безопасен.
func (f *follower) Stop() {
	_ = f.client.ClearGoal()
	f.target = ""
}

// Refresh ничего не делает, если цель не видна: слежка сохраняется до !stop.
func (f *follower) Refresh() {
	if f.target == "" {
		return
	}
	e, ok := f.client.Player(f.target)
	if !ok {
		return
	}
	_ = f.client.SetGoal(mcclient.NearGoal(e.Position, followRange, true))
}
