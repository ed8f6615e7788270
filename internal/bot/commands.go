package bot

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/EgorLis/mcbot/internal/mcclient"
)

const (
	commandPrefix = "!"

	helpText = "Commands: !help, !ping, !pos. Owner: !follow <player>, !stop, !goto x y z, !say msg, !eat, !equip <item>, !shop"
)

type Command int

const (
	cmdUnknown Command = iota
	CmdHelp
	CmdPing
	CmdPos
	CmdFollow
	CmdStop
	CmdGoto
	CmdSay
	CmdEat
	CmdEquip
	CmdShop

	numCommands
)

var commandNames = [numCommands]string{
	cmdUnknown: "",
	CmdHelp:    "help",
	CmdPing:    "ping",
	CmdPos:     "pos",
	CmdFollow:  "follow",
	CmdStop:    "stop",
	CmdGoto:    "goto",
	CmdSay:     "say",
	CmdEat:     "eat",
	CmdEquip:   "equip",
	CmdShop:    "shop",
}

func (c Command) String() string {
	if c < 0 || c >= numCommands {
		return "unknown"
	}
	return commandNames[c]
}

// Public — команды, доступные любому игроку; остальные только владельцу.
func (c Command) Public() bool {
	switch c {
	case CmdHelp, CmdPing, CmdPos:
		return true
	}
	return false
}

func lookupCommand(name string) Command {
	for c := CmdHelp; c < numCommands; c++ {
		if commandNames[c] == name {
			return c
		}
	}
	return cmdUnknown
}

// Invocation — разобранная команда из чата, живёт один dispatch.
type Invocation struct {
	Command Command
	Name    string   // токен команды в нижнем регистре
	Args    []string // как набрано
	Speaker string
	Text    string // сообщение в нижнем регистре
}

// ParseInvocation возвращает false, если сообщение не начинается с "!".
func ParseInvocation(speaker, text string) (Invocation, bool) {
	if !strings.HasPrefix(text, commandPrefix) {
		return Invocation{}, false
	}
	fields := strings.Fields(text[len(commandPrefix):])
	if len(fields) == 0 {
		return Invocation{}, false
	}
	name := strings.ToLower(fields[0])
	return Invocation{
		Command: lookupCommand(name),
		Name:    name,
		Args:    fields[1:],
		Speaker: speaker,
		Text:    strings.ToLower(text),
	}, true
}

type commandHandler func(s *session, inv Invocation)

// handlers индексируется Command; TestEveryCommandHasHandler следит, чтобы дыр не было.
var handlers = [numCommands]commandHandler{
	CmdHelp:   (*session).cmdHelp,
	CmdPing:   (*session).cmdPing,
	CmdPos:    (*session).cmdPos,
	CmdFollow: (*session).cmdFollow,
	CmdStop:   (*session).cmdStop,
	CmdGoto:   (*session).cmdGoto,
	CmdSay:    (*session).cmdSay,
	CmdEat:    (*session).cmdEat,
	CmdEquip:  (*session).cmdEquip,
	CmdShop:   (*session).cmdShop,
}

func (s *session) isOwner(speaker string) bool {
	return s.cfg.owner != "" && strings.EqualFold(speaker, s.cfg.owner)
}

func (s *session) dispatch(inv Invocation) {
	if inv.Command == cmdUnknown {
		return
	}
	// без владельца owner-команды недоступны никому; молча игнорируем
	if !inv.Command.Public() && !s.isOwner(inv.Speaker) {
		s.log.Debug("owner-only command ignored", zap.String("user", inv.Speaker), zap.Stringer("cmd", inv.Command))
		return
	}
	handlers[inv.Command](s, inv)
}

// ---------- public ----------

func (s *session) cmdHelp(Invocation) { s.reply(helpText) }

func (s *session) cmdPing(Invocation) { s.reply("pong") }

func (s *session) cmdPos(Invocation) {
	self, ok := s.client.Self()
	if !ok {
		return
	}
	p := self.Position
	s.reply(fmt.Sprintf("pos: %d, %d, %d", floor(p.X), floor(p.Y), floor(p.Z)))
}

// ---------- owner ----------

func (s *session) cmdFollow(inv Invocation) {
	if len(inv.Args) == 0 {
		s.reply("Usage: !follow <player>")
		return
	}
	target := inv.Args[0]
	e, ok := s.client.Player(target)
	if !ok {
		s.reply(fmt.Sprintf("I can't see %s", target))
		return
	}
	s.reply(fmt.Sprintf("Following %s", target))
	s.follow.Set(target, e)
}

func (s *session) cmdStop(Invocation) {
	s.reply("Stopping movement.")
	s.follow.Stop()
}

// за границей мира (±30 млн блоков) координаты не имеют смысла
const worldLimit = 30_000_000

func (s *session) cmdGoto(inv Invocation) {
	if len(inv.Args) < 3 {
		s.reply("Usage: !goto <x> <y> <z>")
		return
	}
	coords := make([]float64, len(inv.Args))
	for i, a := range inv.Args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil || math.IsNaN(v) || math.Abs(v) > worldLimit {
			s.reply("Invalid coordinates.")
			return
		}
		coords[i] = v
	}
	x, y, z := coords[0], coords[1], coords[2]
	s.reply(fmt.Sprintf("Going to %s %s %s", formatNum(x), formatNum(y), formatNum(z)))
	_ = s.client.SetGoal(mcclient.BlockGoal(floor(x), floor(y), floor(z)))
}

func (s *session) cmdSay(inv Invocation) {
	text := strings.Join(inv.Args, " ")
	if text == "" {
		s.reply("Usage: !say <msg>")
		return
	}
	s.reply(text)
}

func (s *session) cmdEat(Invocation) {
	s.async(func(ctx context.Context) func() {
		err := s.client.Eat(ctx)
		return func() {
			if err != nil {
				s.log.Info("eat failed", zap.Error(err))
				s.reply("Could not eat")
				return
			}
			s.reply("Tried to eat")
		}
	})
}

func (s *session) cmdEquip(inv Invocation) {
	query := strings.Join(inv.Args, " ")
	if query == "" {
		s.reply("Usage: !equip <item>")
		return
	}
	item, ok := findItem(s.client.Items(), query)
	if !ok {
		s.reply("I do not have that item")
		return
	}
	s.async(func(ctx context.Context) func() {
		err := s.client.Equip(ctx, item, "hand")
		return func() {
			if err != nil {
				s.log.Warn("equip failed", zap.String("item", item.Name), zap.Error(err))
				s.reply(fmt.Sprintf("Could not equip %s", item.Name))
				return
			}
			s.reply(fmt.Sprintf("Equipped %s", item.Name))
		}
	})
}

const shopUsage = "Usage: !shop <buy/sell> <item> <amount>"

func (s *session) cmdShop(inv Invocation) {
	if len(inv.Args) < 2 {
		s.reply(shopUsage)
		return
	}
	action, item := strings.ToLower(inv.Args[0]), inv.Args[1]
	amount := 1
	if len(inv.Args) >= 3 {
		n, err := strconv.Atoi(inv.Args[2])
		if err != nil || n < 1 {
			s.reply(shopUsage)
			return
		}
		amount = n
	}

	switch action {
	case "buy":
		total := s.shop.Buy(item, amount)
		s.reply(fmt.Sprintf("Bought %d %s. Total: %d", amount, item, total))
	case "sell":
		left := s.shop.Sell(item, amount)
		s.reply(fmt.Sprintf("Sold %d %s. Remaining: %d", amount, item, left))
	default:
		s.reply("Unknown action. Use buy or sell")
	}
}

// первое совпадение по подстроке имени, с учётом регистра
func findItem(items []mcclient.Item, query string) (mcclient.Item, bool) {
	for _, it := range items {
		if strings.Contains(it.Name, query) {
			return it, true
		}
	}
	return mcclient.Item{}, false
}

func floor(v float64) int { return int(math.Floor(v)) }

func formatNum(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
