package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/muneebk98/Maze-Adventures/internal/engine"
	"github.com/muneebk98/Maze-Adventures/pkg/api"
	"github.com/muneebk98/Maze-Adventures/pkg/logger"
	"github.com/muneebk98/Maze-Adventures/pkg/utils"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между WebSocket и игровым циклом.
type Client struct {
	Game *engine.Game
	Conn *websocket.Conn
	ID   string
	Send chan api.ServerMessage

	log *logrus.Entry
}

// NewClient подписывает соединение на рассылку и сразу кладет в очередь снимок уровня.
func NewClient(game *engine.Game, conn *websocket.Conn, token string) *Client {
	if token == "" {
		token = utils.GenerateID()
	}
	c := &Client{
		Game: game,
		Conn: conn,
		ID:   token,
		log:  logger.Log.WithFields(logrus.Fields{"component": "client", "client_id": token}),
	}
	c.Send = game.Hub().Register(c.ID)

	view := game.Snapshot()
	game.Hub().SendTo(c.ID, api.ServerMessage{Type: api.MsgSnapshot, Tick: game.Tick(), Snapshot: &view})
	c.log.Info("Client connected")
	return c
}

// readPump читает команды клиента и передает их в цикл.
func (c *Client) readPump() {
	defer func() {
		c.Game.Hub().Unregister(c.ID)
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection")
		}
		c.log.Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var raw api.ClientCommand
		if err := c.Conn.ReadJSON(&raw); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Error("WS read error")
			}
			return
		}

		cmd, err := engine.ParseCommand(c.ID, raw)
		if err != nil {
			c.log.WithError(err).WithField("action", raw.Action).Warn("Invalid command")
			c.Game.Hub().SendTo(c.ID, api.ServerMessage{Type: api.MsgError, Error: err.Error()})
			continue
		}
		if !c.Game.Submit(cmd) {
			c.Game.Hub().SendTo(c.ID, api.ServerMessage{Type: api.MsgError, Error: "server busy"})
		}
	}
}

// writePump отправляет сообщения клиенту и пингует его.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				c.log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
