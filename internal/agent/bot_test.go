package agent

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muneebk98/Maze-Adventures/internal/config"
	"github.com/muneebk98/Maze-Adventures/internal/domain"
	"github.com/muneebk98/Maze-Adventures/internal/engine"
	"github.com/muneebk98/Maze-Adventures/internal/level"
	"github.com/muneebk98/Maze-Adventures/pkg/api"
	"github.com/muneebk98/Maze-Adventures/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestBot_WalksThroughAllLevels(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 3
	cfg.Levels = []domain.LevelSize{{Rows: 3, Columns: 3}, {Rows: 4, Columns: 4}}
	cfg.Hazards.Difficulty = domain.Difficulty{}

	g, err := engine.New(cfg, engine.Options{})
	require.NoError(t, err)

	bot := NewBot("bot", g)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		bot.Run(ctx)
		close(done)
	}()

	require.NoError(t, g.Start(0))

	assert.Eventually(t, func() bool {
		g.Step(100 * time.Millisecond)
		return g.Controller().Phase() == level.PhaseComplete
	}, 5*time.Second, time.Millisecond)
	assert.Equal(t, 1, g.Controller().Index())

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("bot did not stop")
	}
	assert.False(t, g.Hub().HasSubscriber("bot"))
}

func TestBot_IgnoresFinishedGame(t *testing.T) {
	cfg := config.Default()
	cfg.Levels = []domain.LevelSize{{Rows: 2, Columns: 2}}
	g, err := engine.New(cfg, engine.Options{})
	require.NoError(t, err)

	bot := NewBot("bot", g)
	bot.route = []domain.Vec3{{X: 1}}
	bot.handle(apiEvent(domain.EventAllLevelsComplete))
	assert.Nil(t, bot.route)
}

func apiEvent(typ domain.EventType) api.ServerMessage {
	return api.ServerMessage{Type: api.MsgEvent, Event: &domain.Event{Type: typ}}
}
