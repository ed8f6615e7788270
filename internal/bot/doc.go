// Package bot — чат-бот поверх mcclient. Бот:
//   - держит одну сессию с сервером и после отключения через фиксированную
//     паузу (MC_RECONNECT_DELAY) собирает новую с нуля;
//   - после спавна настраивает pathfinder и запускает anti-AFK (прыжок + лёгкий поворот);
//   - обрабатывает команды из чата с префиксом "!":
//     публичные !help, !ping, !pos; владельца — !follow, !stop, !goto, !say,
//     !eat, !equip, !shop;
//   - ведёт слежку за одним игроком (цель обновляется каждые 2 секунды);
//   - хранит игрушечный склад магазина в памяти сессии.
//
// Всё состояние сессии (склад, цель слежки, таймеры) живёт в одном объекте
// и обрабатывается одной горутиной, так что блокировки не нужны.
//
// Пример:
//
//	cfg, _ := config.Load(".env")
//	b := bot.New(cfg, log)
//	if err := b.Run(ctx); err != nil { log.Fatal(err) }
package bot
