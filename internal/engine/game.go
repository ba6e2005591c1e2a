package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/muneebk98/Maze-Adventures/internal/clock"
	"github.com/muneebk98/Maze-Adventures/internal/config"
	"github.com/muneebk98/Maze-Adventures/internal/domain"
	"github.com/muneebk98/Maze-Adventures/internal/hazard"
	"github.com/muneebk98/Maze-Adventures/internal/level"
	"github.com/muneebk98/Maze-Adventures/internal/network"
	"github.com/muneebk98/Maze-Adventures/internal/scoreboard"
	"github.com/muneebk98/Maze-Adventures/internal/spawn"
	"github.com/muneebk98/Maze-Adventures/internal/systems"
	"github.com/muneebk98/Maze-Adventures/internal/version"
	"github.com/muneebk98/Maze-Adventures/pkg/api"
	"github.com/muneebk98/Maze-Adventures/pkg/dungeon"
	"github.com/muneebk98/Maze-Adventures/pkg/logger"
	"github.com/muneebk98/Maze-Adventures/pkg/utils"
)

// LevelSink сохраняет снимок каждого сгенерированного уровня.
type LevelSink interface {
	SaveLevel(seed int64, gen level.Generated, records []domain.PlacementRecord) error
}

// Options - необязательные участники.
type Options struct {
	Hub  *network.Broadcaster
	Sink LevelSink
}

// Game - одна игровая сессия: лабиринт, игрок, ловушки и табло.
// Вся симуляция идет в горутине, вызывающей Step. Снаружи доступны
// только Submit и снимки под мьютексом.
type Game struct {
	cfg     config.Config
	seed    int64
	runtime version.Runtime

	mu       sync.RWMutex
	sched    *clock.Scheduler
	world    *domain.World
	player   *domain.Player
	board    *scoreboard.Board
	field    *hazard.Field
	cues     *hazardCues
	topology *dungeon.Generator
	ctrl     *level.Controller
	outbox   *Outbox

	hub      *network.Broadcaster
	sink     LevelSink
	commands chan Command

	tick       uint64
	moveTarget *domain.Vec3
	restart    *clock.Timer
	dirty      bool

	log *logrus.Entry
}

// New собирает игру из конфига. Все зависимости передаются явно.
func New(cfg config.Config, opts Options) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := utils.ResolveSeed(cfg.Seed)
	g := &Game{
		cfg:      cfg,
		seed:     seed,
		sched:    clock.NewScheduler(),
		world:    domain.NewWorld(),
		player:   &domain.Player{},
		outbox:   &Outbox{},
		hub:      opts.Hub,
		sink:     opts.Sink,
		commands: make(chan Command, 256),
		log:      logger.Log.WithFields(logrus.Fields{"component": "engine", "seed": seed}),
	}
	if g.hub == nil {
		g.hub = network.NewBroadcaster()
	}

	doc, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("fingerprint config: %w", err)
	}
	g.runtime = version.Runtime{Seed: seed, Levels: len(cfg.Levels), Fingerprint: version.Fingerprint(seed, doc)}

	g.board = scoreboard.New(cfg.Scoreboard.MaxHealth, config.Seconds(cfg.Scoreboard.TimeLimit), g.outbox)
	g.field = hazard.NewField(g.sched, g.board, g.outbox)
	g.cues = &hazardCues{g: g}
	g.field.Bind(g.cues)
	g.topology = dungeon.NewGenerator(dungeon.Options{
		CellWidth:  cfg.Maze.CellWidth,
		CellHeight: cfg.Maze.CellHeight,
		GapEnabled: cfg.Maze.GapEnabled,
		Braid:      cfg.Maze.Braid,
	}, utils.SubsystemRNG(seed, 0, "maze"))

	selector, err := spawn.NewHazardSelector(cfg.Hazards)
	if err != nil {
		return nil, err
	}
	deps := spawn.Deps{
		World:    g.world,
		Notifier: g.outbox,
		Rng:      utils.SubsystemRNG(seed, 0, "spawn"),
	}
	// Порядок: сборщики, ловушки, лечилки. Лечилки обходят и то, и другое.
	coordinators := []spawn.Coordinator{
		spawn.NewPickups(cfg.Pickups, deps),
		spawn.NewHazards(cfg.Hazards, selector, g.field, cfg.Profile, deps),
		spawn.NewHealing(cfg.Healing, deps),
	}

	g.ctrl = level.NewController(cfg.Levels, level.Deps{
		Topology:     g.topology,
		Scoreboard:   g.board,
		Player:       g.player,
		World:        g.world,
		Notifier:     g.outbox,
		Coordinators: coordinators,
		OnGenerated:  g.onGenerated,
	})
	return g, nil
}

func (g *Game) Seed() int64                   { return g.seed }
func (g *Game) Runtime() version.Runtime      { return g.runtime }
func (g *Game) Hub() *network.Broadcaster     { return g.hub }
func (g *Game) Controller() *level.Controller { return g.ctrl }
func (g *Game) Board() *scoreboard.Board      { return g.board }
func (g *Game) Field() *hazard.Field          { return g.field }
func (g *Game) Player() *domain.Player        { return g.player }
func (g *Game) World() *domain.World          { return g.world }
func (g *Game) Scheduler() *clock.Scheduler   { return g.sched }

// Start генерирует выбранный уровень и рассылает первые события.
func (g *Game) Start(selected int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	err := g.ctrl.Start(selected)
	g.flush()
	return err
}

// Submit ставит команду в очередь цикла. false - очередь переполнена.
func (g *Game) Submit(cmd Command) bool {
	select {
	case g.commands <- cmd:
		return true
	default:
		g.log.WithField("command", cmd.Type).Warn("Command queue full, dropping.")
		return false
	}
}

// Run крутит цикл с частотой TickRate, пока ctx не отменен.
func (g *Game) Run(ctx context.Context) {
	interval := time.Second / time.Duration(g.cfg.TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	g.log.WithField("tick_rate", g.cfg.TickRate).Info("Game loop started")
	for {
		select {
		case <-ctx.Done():
			g.log.Info("Game loop stopped")
			return
		case <-ticker.C:
			g.Step(interval)
		}
	}
}

// Step - один тик симуляции.
//
// Порядок: команды, таймеры, движение, таймер уровня, подбор, ловушки, выход,
// и только потом рассылка накопленных событий.
func (g *Game) Step(dt time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.tick++
	g.drainCommands()
	g.sched.Advance(dt)

	if g.playing() {
		g.move(dt)
		g.board.Tick(dt)

		systems.CollectItems(g.world, g.board, g.player.Pos, systems.CollectRules{
			PickupRadius:  g.cfg.Pickups.CollectRadius,
			HealingRadius: g.cfg.Healing.CollectRadius,
			HealAmount:    g.cfg.Healing.HealAmount,
		}, g.outbox)

		g.field.Tick(g.player.Pos)

		if !g.board.Dead() && systems.ReachedExit(g.ctrl.Layout(), g.player.Pos, g.cfg.Maze.ExitRadius) {
			g.exit()
		}
	}

	g.flush()
}

// playing - уровень идет, игрок жив и время не вышло.
func (g *Game) playing() bool {
	return g.ctrl.Phase() == level.PhasePlaying && !g.board.Dead() && g.board.TimeLeft() > 0
}

func (g *Game) drainCommands() {
	for {
		select {
		case cmd := <-g.commands:
			g.apply(cmd)
		default:
			return
		}
	}
}

func (g *Game) apply(cmd Command) {
	entry := g.log.WithFields(logrus.Fields{"command": cmd.Type, "source": cmd.Source})

	switch cmd.Type {
	case CommandMove:
		target := cmd.Target
		g.moveTarget = &target
	case CommandExit:
		g.exit()
	case CommandRestart:
		if err := g.ctrl.RestartCurrentLevel(); err != nil {
			entry.WithError(err).Warn("Restart rejected.")
		}
	default:
		entry.Warn("Unknown command.")
	}
}

func (g *Game) exit() {
	err := g.ctrl.OnPlayerExit()
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrAllLevelsComplete):
		g.log.Debug("Exit after completion ignored.")
	default:
		g.log.WithError(err).Error("Level transition failed.")
	}
}

func (g *Game) move(dt time.Duration) {
	if g.moveTarget == nil {
		return
	}
	maxDist := g.cfg.Scoreboard.PlayerSpeed * dt.Seconds()
	next := systems.Step(g.player.Pos, *g.moveTarget, maxDist)

	res := systems.CalculateMove(g.ctrl.Layout(), g.player.Pos, next)
	if !res.HasMoved {
		g.log.WithField("target", *g.moveTarget).Debug("Move blocked by wall.")
		g.moveTarget = nil
		return
	}

	g.player.Pos = next
	if next == *g.moveTarget {
		g.moveTarget = nil
	}
	pos := next
	g.outbox.Notify(domain.Event{Type: domain.EventPlayerMoved, Level: g.ctrl.Index(), Pos: &pos})
}

func (g *Game) onGenerated(gen level.Generated) {
	// Новый проход отменяет отложенный рестарт и текущую цель движения.
	g.restart.Cancel()
	g.restart = nil
	g.moveTarget = nil
	g.dirty = true

	if g.sink != nil {
		if err := g.sink.SaveLevel(g.seed, gen, g.world.All()); err != nil {
			g.log.WithError(err).Warn("Failed to save level snapshot.")
		}
	}
}

func (g *Game) scheduleRestart() {
	if g.restart.Active() {
		return
	}
	delay := config.Seconds(g.cfg.Scoreboard.RestartDelay)
	g.restart = g.sched.After(delay, func() {
		g.restart = nil
		if err := g.ctrl.RestartCurrentLevel(); err != nil {
			g.log.WithError(err).Error("Restart after death failed.")
		}
	})
	g.log.WithField("delay", delay).Info("Restart scheduled.")
}

// flush рассылает накопленные события. Смерть и конец времени ведут к рестарту.
func (g *Game) flush() {
	// Переходы по таймерам и при генерации тоже копятся до конца тика.
	g.field.Present()
	for _, ev := range g.outbox.Drain() {
		if ev.Type == domain.EventPlayerDied || ev.Type == domain.EventTimeUp {
			g.scheduleRestart()
		}
		ev := ev
		g.hub.Broadcast(api.ServerMessage{Type: api.MsgEvent, Tick: g.tick, Event: &ev})
	}
	if g.dirty {
		g.dirty = false
		view := g.snapshot()
		g.hub.Broadcast(api.ServerMessage{Type: api.MsgSnapshot, Tick: g.tick, Snapshot: &view})
	}
}

// Snapshot - потокобезопасный снимок уровня.
func (g *Game) Snapshot() api.LevelView {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.snapshot()
}

func (g *Game) snapshot() api.LevelView {
	l := g.ctrl.Layout()
	view := api.LevelView{
		Level:      g.ctrl.Index(),
		LevelCount: g.ctrl.LevelCount(),
		Phase:      g.ctrl.Phase().String(),
		Rows:       l.Rows,
		Columns:    l.Columns,
		CellWidth:  l.CellWidth,
		CellHeight: l.CellHeight,
		Gap:        l.Gap,
		Start:      l.PlayerStart,
		Exit:       l.Exit,
		Player:     g.player.Pos,
		Score:      g.board.Score(),
		Health:     g.board.Health(),
		TimeLeftMs: g.board.TimeLeft().Milliseconds(),
		Entities:   g.world.All(),
	}
	for _, st := range g.field.Statuses() {
		view.Hazards = append(view.Hazards, api.HazardView{
			ID:        st.ID.String(),
			Category:  st.Category.String(),
			State:     st.State,
			CanDamage: st.CanDamage,
		})
	}
	return view
}

// Tick - номер последнего тика.
func (g *Game) Tick() uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.tick
}

func (g *Game) Statuses() []hazard.Status {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.field.Statuses()
}

func (g *Game) Reports() []spawn.Report {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.ctrl.Reports()
}

// Layout - текущий лабиринт (для бота и превью).
func (g *Game) Layout() domain.Layout {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.ctrl.Layout()
}
