package mcclient

import (
	"context"

	"go.uber.org/zap"
)

// ========================= high-level API =========================

type GoalKind string

const (
	GoalNone  GoalKind = "none"
	GoalNear  GoalKind = "near"
	GoalBlock GoalKind = "block"
)

// Goal — цель для pathfinder'а на стороне моста. near допускает радиус Range,
// block требует точного прихода в блок.
type Goal struct {
	Kind    GoalKind
	X, Y, Z float64
	Range   float64
	// Dynamic — мост будет перестраивать путь, если цель сдвинется
	Dynamic bool
}

func NearGoal(pos Vec3, rng float64, dynamic bool) Goal {
	return Goal{Kind: GoalNear, X: pos.X, Y: pos.Y, Z: pos.Z, Range: rng, Dynamic: dynamic}
}

func BlockGoal(x, y, z int) Goal {
	return Goal{Kind: GoalBlock, X: float64(x), Y: float64(y), Z: float64(z)}
}

func (c *Client) Chat(message string) error {
	err := c.SendRequest("chat", map[string]any{"message": message}, nil)
	if err != nil {
		c.log.Warn("chat failed", zap.String("message", message), zap.Error(err))
		return err
	}
	c.log.Debug("chat out", zap.String("message", message))
	return nil
}

// SetMovements — разовая настройка pathfinder'а после спавна (дефолтные Movements).
func (c *Client) SetMovements() error {
	return c.SendRequest("set_movements", map[string]any{}, nil)
}

func (c *Client) SetGoal(g Goal) error {
	return c.SendRequest("set_goal", map[string]any{
		"kind":    string(g.Kind),
		"x":       g.X,
		"y":       g.Y,
		"z":       g.Z,
		"range":   g.Range,
		"dynamic": g.Dynamic,
	}, nil)
}

func (c *Client) ClearGoal() error {
	return c.SendRequest("set_goal", map[string]any{"kind": string(GoalNone)}, nil)
}

func (c *Client) SetControlState(control string, state bool) error {
	return c.SendRequest("control", map[string]any{"control": control, "state": state}, nil)
}

func (c *Client) Look(yaw, pitch float64, force bool) error {
	return c.SendRequest("look", map[string]any{"yaw": yaw, "pitch": pitch, "force": force}, nil)
}

// Eat просит auto-eat на стороне моста съесть что-нибудь и ждёт результата.
func (c *Client) Eat(ctx context.Context) error {
	return c.Request(ctx, "eat", map[string]any{})
}

func (c *Client) Equip(ctx context.Context, item Item, destination string) error {
	return c.Request(ctx, "equip", map[string]any{
		"slot":        item.Slot,
		"name":        item.Name,
		"destination": destination,
	})
}
