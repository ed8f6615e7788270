// Package mcclient реализует WebSocket-клиент игрового моста. Мост держит
// само подключение к Minecraft-серверу (протокол, физику, pathfinder,
// auto-eat), а клиент:
//
//   - логинится на сервер через мост (host/port/username/password/version);
//   - отправляет запросы: Chat, SetMovements, SetGoal/ClearGoal,
//     SetControlState, Look, Eat, Equip;
//   - принимает события и ведёт локальный вид мира: Self, Player, Items.
//
// Кадры — protobuf google.protobuf.Struct {type, seq, payload}. Ответы
// сопоставляются с запросами по seq; при обрыве ожидающие колбэки получают ошибку.
//
// События (поля Events):
//   - OnLogin, OnSpawn, OnChat, OnAutoEat, OnError, OnEnd.
//
// Клиент одноразовый: реконнект — это новый Client (см. пакет bot).
//
// Пример:
//
//	c := mcclient.New(mcclient.Config{BridgeURL: "ws://127.0.0.1:8765/bot", Host: "mc.example.com", Port: 25565, Username: "MyBot"}, log)
//	err := c.Connect(ctx, mcclient.Events{
//	    OnSpawn: func() { fmt.Println("spawned") },
//	    OnEnd:   func(reason string) { fmt.Println("end:", reason) },
//	})
//	if err != nil { log.Fatal(err) }
//	defer c.Close()
//	_ = c.Chat("hello")
package mcclient
