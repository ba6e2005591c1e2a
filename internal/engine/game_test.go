package engine

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muneebk98/Maze-Adventures/internal/config"
	"github.com/muneebk98/Maze-Adventures/internal/core/types/enums"
	"github.com/muneebk98/Maze-Adventures/internal/domain"
	"github.com/muneebk98/Maze-Adventures/internal/level"
	"github.com/muneebk98/Maze-Adventures/pkg/api"
	"github.com/muneebk98/Maze-Adventures/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Seed = 42
	cfg.Levels = []domain.LevelSize{{Rows: 8, Columns: 8}, {Rows: 9, Columns: 9}}
	return cfg
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g, err := New(testConfig(), Options{})
	require.NoError(t, err)
	return g
}

// drain забирает все сообщения, накопившиеся у подписчика.
func drain(ch chan api.ServerMessage) []api.ServerMessage {
	var out []api.ServerMessage
	for {
		select {
		case msg := <-ch:
			out = append(out, msg)
		default:
			return out
		}
	}
}

func TestGame_StartPopulatesLevel(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.Start(0))

	assert.Equal(t, level.PhasePlaying, g.Controller().Phase())
	assert.Equal(t, 0, g.Controller().Index())
	assert.Equal(t, g.Layout().PlayerStart, g.Player().Pos)

	w := g.World()
	assert.Equal(t, 10, w.Count(enums.EntityTypePickup))
	assert.Equal(t, 2, w.Count(enums.EntityTypeHealing))
	assert.Equal(t, 5, w.Count(enums.EntityTypeHazard))
	assert.Equal(t, w.Count(enums.EntityTypeHazard), g.Field().Len())
}

func TestGame_NewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Levels = nil

	_, err := New(cfg, Options{})
	assert.Error(t, err)
}

func TestGame_SameSeedSameLevel(t *testing.T) {
	a, b := newTestGame(t), newTestGame(t)
	require.NoError(t, a.Start(0))
	require.NoError(t, b.Start(0))

	assert.Equal(t, a.World().All(), b.World().All())
	assert.Equal(t, a.Runtime(), b.Runtime())
}

func TestGame_RuntimeFingerprint(t *testing.T) {
	g := newTestGame(t)
	rt := g.Runtime()
	assert.Equal(t, int64(42), rt.Seed)
	assert.Equal(t, 2, rt.Levels)

	cfg := testConfig()
	cfg.Pickups.Count++
	other, err := New(cfg, Options{})
	require.NoError(t, err)
	assert.NotEqual(t, rt.Fingerprint, other.Runtime().Fingerprint)
}

func TestGame_SnapshotBroadcastAfterGeneration(t *testing.T) {
	g := newTestGame(t)
	ch := g.Hub().Register("viewer")
	require.NoError(t, g.Start(0))

	msgs := drain(ch)
	require.NotEmpty(t, msgs)

	last := msgs[len(msgs)-1]
	require.Equal(t, api.MsgSnapshot, last.Type)
	require.NotNil(t, last.Snapshot)
	assert.Equal(t, 0, last.Snapshot.Level)
	assert.Equal(t, 2, last.Snapshot.LevelCount)
	assert.Equal(t, "PLAYING", last.Snapshot.Phase)
	assert.Len(t, last.Snapshot.Entities, len(g.World().All()))
	assert.Len(t, last.Snapshot.Hazards, g.Field().Len())
	assert.Equal(t, 100, last.Snapshot.Health)

	var generated bool
	for _, msg := range msgs[:len(msgs)-1] {
		require.Equal(t, api.MsgEvent, msg.Type)
		if msg.Event.Type == domain.EventLevelGenerated {
			generated = true
		}
	}
	assert.True(t, generated)
}

func TestGame_HazardVisualsFollowTickEvents(t *testing.T) {
	cfg := testConfig()
	for name, p := range cfg.Hazards.Profiles {
		p.Mode = "timed"
		cfg.Hazards.Profiles[name] = p
	}
	g, err := New(cfg, Options{})
	require.NoError(t, err)
	ch := g.Hub().Register("viewer")
	require.NoError(t, g.Start(0))
	drain(ch)

	g.Step(10 * time.Millisecond)
	for _, msg := range drain(ch) {
		assert.NotEqual(t, api.MsgSnapshot, msg.Type, "no visual change yet")
	}

	g.Step(500 * time.Millisecond)
	msgs := drain(ch)
	require.NotEmpty(t, msgs)

	last := msgs[len(msgs)-1]
	require.Equal(t, api.MsgSnapshot, last.Type)
	require.NotEmpty(t, last.Snapshot.Hazards)
	for _, h := range last.Snapshot.Hazards {
		assert.Equal(t, enums.HazardActive.String(), h.State)
	}
	assert.Equal(t, api.MsgEvent, msgs[0].Type)
	assert.Positive(t, g.cues.plays)
}

func TestGame_ExitAdvancesLevel(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.Start(0))

	g.Player().Pos = g.Layout().Exit
	g.Step(10 * time.Millisecond)

	assert.Equal(t, 1, g.Controller().Index())
	assert.Equal(t, 7, g.World().Count(enums.EntityTypeHazard))
	assert.Equal(t, g.Layout().PlayerStart, g.Player().Pos)
}

func TestGame_ExitCommandCompletesGame(t *testing.T) {
	g := newTestGame(t)
	ch := g.Hub().Register("viewer")
	require.NoError(t, g.Start(1))
	drain(ch)

	require.True(t, g.Submit(Command{Type: CommandExit, Source: "test"}))
	g.Step(10 * time.Millisecond)

	assert.Equal(t, level.PhaseComplete, g.Controller().Phase())

	var complete int
	for _, msg := range drain(ch) {
		if msg.Event != nil && msg.Event.Type == domain.EventAllLevelsComplete {
			complete++
		}
	}
	assert.Equal(t, 1, complete)

	// Повторный выход не рассылает событие еще раз.
	g.Submit(Command{Type: CommandExit})
	g.Step(10 * time.Millisecond)
	for _, msg := range drain(ch) {
		if msg.Event != nil {
			assert.NotEqual(t, domain.EventAllLevelsComplete, msg.Event.Type)
		}
	}
}

func TestGame_DeathSchedulesRestart(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.Start(0))
	gen := g.World().Generation

	g.Board().Damage(1000)
	require.True(t, g.Board().Dead())
	g.Step(10 * time.Millisecond)

	// До истечения задержки уровень не перезапускается.
	g.Step(time.Second)
	assert.True(t, g.Board().Dead())
	assert.Equal(t, gen, g.World().Generation)

	g.Step(time.Second)
	assert.False(t, g.Board().Dead())
	assert.Equal(t, 100, g.Board().Health())
	assert.Equal(t, gen+1, g.World().Generation)
	assert.Equal(t, 0, g.Controller().Index())
}

func TestGame_ManualRestartCancelsPendingRestart(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.Start(0))
	gen := g.World().Generation

	g.Board().Damage(1000)
	g.Step(10 * time.Millisecond)

	g.Submit(Command{Type: CommandRestart})
	g.Step(10 * time.Millisecond)
	assert.Equal(t, gen+1, g.World().Generation)

	g.Step(3 * time.Second)
	assert.Equal(t, gen+1, g.World().Generation, "отмененный рестарт не должен сработать")
}

func TestGame_MoveAlongPath(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.Start(0))

	path := g.Layout().Path
	require.GreaterOrEqual(t, len(path), 2)
	target := path[1]

	g.Submit(Command{Type: CommandMove, Target: target})
	for i := 0; i < 30 && g.Player().Pos != target; i++ {
		g.Step(100 * time.Millisecond)
	}
	assert.Equal(t, target, g.Player().Pos)
}

func TestGame_MoveOutOfBoundsStopsAtEdge(t *testing.T) {
	g := newTestGame(t)
	require.NoError(t, g.Start(0))
	start := g.Player().Pos

	g.Submit(Command{Type: CommandMove, Target: domain.Vec3{X: -50, Z: start.Z}})
	for i := 0; i < 30; i++ {
		g.Step(100 * time.Millisecond)
	}

	assert.Nil(t, g.moveTarget, "заблокированная цель сбрасывается")
	_, _, ok := g.Layout().CellOf(g.Player().Pos)
	assert.True(t, ok)
	assert.Less(t, g.Player().Pos.X, start.X)
}

func TestGame_SubmitDropsWhenQueueFull(t *testing.T) {
	g := newTestGame(t)
	for i := 0; i < cap(g.commands); i++ {
		require.True(t, g.Submit(Command{Type: CommandMove}))
	}
	assert.False(t, g.Submit(Command{Type: CommandMove}))
}

func TestParseCommand(t *testing.T) {
	cmd, err := ParseCommand("c1", api.ClientCommand{Action: "move", Payload: []byte(`{"x":1,"y":0,"z":2}`)})
	require.NoError(t, err)
	assert.Equal(t, CommandMove, cmd.Type)
	assert.Equal(t, domain.Vec3{X: 1, Z: 2}, cmd.Target)
	assert.Equal(t, "c1", cmd.Source)

	cmd, err = ParseCommand("c1", api.ClientCommand{Action: "EXIT"})
	require.NoError(t, err)
	assert.Equal(t, CommandExit, cmd.Type)

	_, err = ParseCommand("c1", api.ClientCommand{Action: "FLY"})
	assert.Error(t, err)
}

func TestOutbox_DrainEmpties(t *testing.T) {
	var o Outbox
	o.Notify(domain.Event{Type: domain.EventHeal})
	o.Notify(domain.Event{Type: domain.EventDamage})
	require.Equal(t, 2, o.Len())

	evs := o.Drain()
	assert.Len(t, evs, 2)
	assert.Equal(t, 0, o.Len())
}
