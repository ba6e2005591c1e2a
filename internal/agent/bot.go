package agent

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/muneebk98/Maze-Adventures/internal/domain"
	"github.com/muneebk98/Maze-Adventures/internal/engine"
	"github.com/muneebk98/Maze-Adventures/pkg/api"
	"github.com/muneebk98/Maze-Adventures/pkg/logger"
)

const arriveEpsilon = 1e-6

// Bot - игрок-компьютер. Подписывается на рассылку как обычный клиент
// и ведет игрока по кратчайшему пути от старта к выходу.
//
// Жизненный цикл:
//  1. NewBot - регистрация в хабе, получение личного канала (Inbox).
//  2. Run - в отдельной горутине слушает Inbox.
//  3. Снимок уровня задает маршрут, каждое PlayerMoved двигает его дальше.
type Bot struct {
	ID    string
	Game  *engine.Game
	Inbox chan api.ServerMessage

	route []domain.Vec3
	next  int // индекс следующей точки маршрута
	sent  int // индекс точки, к которой уже отправлен MOVE
	log   *logrus.Entry
}

func NewBot(id string, game *engine.Game) *Bot {
	b := &Bot{
		ID:    id,
		Game:  game,
		Inbox: game.Hub().Register(id),
		sent:  -1,
		log:   logger.Log.WithFields(logrus.Fields{"component": "bot", "bot_id": id}),
	}
	b.log.Info("Bot created")
	return b
}

// Run обрабатывает сообщения, пока ctx не отменен или канал не закрыт.
func (b *Bot) Run(ctx context.Context) {
	defer b.Game.Hub().Unregister(b.ID)

	for {
		select {
		case <-ctx.Done():
			b.log.Info("Bot stopped")
			return
		case msg, ok := <-b.Inbox:
			if !ok {
				b.log.Info("Bot inbox closed")
				return
			}
			b.handle(msg)
		}
	}
}

func (b *Bot) handle(msg api.ServerMessage) {
	switch msg.Type {
	case api.MsgSnapshot:
		if msg.Snapshot != nil {
			b.plan(msg.Snapshot)
		}
	case api.MsgEvent:
		if msg.Event == nil {
			return
		}
		switch msg.Event.Type {
		case domain.EventPlayerMoved:
			if msg.Event.Pos != nil {
				b.advance(*msg.Event.Pos)
			}
		case domain.EventAllLevelsComplete:
			b.route = nil
			b.log.Info("All levels complete, bot idle")
		}
	}
}

// plan строит маршрут по новому уровню. Маршрут начинается со старта.
func (b *Bot) plan(view *api.LevelView) {
	if view.Phase != "PLAYING" {
		b.route = nil
		return
	}
	b.route = b.Game.Layout().Path
	b.next = 0
	b.sent = -1
	b.log.WithFields(logrus.Fields{"level_index": view.Level, "waypoints": len(b.route)}).Debug("Route planned")
	b.advance(view.Player)
}

// advance пропускает достигнутые точки и отправляет MOVE к следующей.
func (b *Bot) advance(pos domain.Vec3) {
	for b.next < len(b.route) && domain.PlanarDistance(pos, b.route[b.next]) < arriveEpsilon {
		b.next++
	}
	if b.next >= len(b.route) || b.sent == b.next {
		return
	}

	cmd := engine.Command{Type: engine.CommandMove, Target: b.route[b.next], Source: b.ID}
	if !b.Game.Submit(cmd) {
		b.log.Warn("Move dropped, queue full")
		return
	}
	b.sent = b.next
}
