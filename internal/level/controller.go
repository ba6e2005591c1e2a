// Package level - прогрессия уровней: генерация, игра, выход.
package level

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/muneebk98/Maze-Adventures/internal/domain"
	"github.com/muneebk98/Maze-Adventures/internal/spawn"
	"github.com/muneebk98/Maze-Adventures/pkg/logger"
)

// Topology - провайдер лабиринта.
type Topology interface {
	Regenerate(rows, cols int) error
	Layout() domain.Layout
}

// Scoreboard - табло, сбрасываемое в начале каждого уровня.
type Scoreboard interface {
	SetLevel(index int)
	ResetScore()
	ResetTimer()
	ResetHealth()
}

// Body - то, что переносится на старт.
type Body interface {
	Reposition(pos domain.Vec3)
}

type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseGenerating
	PhasePlaying
	PhaseExiting
	PhaseComplete
)

var phaseToString = map[Phase]string{
	PhaseIdle:       "IDLE",
	PhaseGenerating: "GENERATING",
	PhasePlaying:    "PLAYING",
	PhaseExiting:    "EXITING",
	PhaseComplete:   "COMPLETE",
}

func (p Phase) String() string {
	if val, ok := phaseToString[p]; ok {
		return val
	}
	return "UNKNOWN"
}

// Generated - итог одного прохода генерации.
type Generated struct {
	Index   int
	Layout  domain.Layout
	Reports []spawn.Report
}

// Deps - все участники передаются явно.
type Deps struct {
	Topology   Topology
	Scoreboard Scoreboard
	Player     Body
	World      *domain.World
	Notifier   domain.Notifier
	// Coordinators вызываются строго по порядку: каждый следующий видит
	// позиции предыдущих через spawn.Context.
	Coordinators []spawn.Coordinator
	// OnGenerated вызывается после успешного прохода генерации.
	OnGenerated func(Generated)
}

type Controller struct {
	levels []domain.LevelSize
	deps   Deps

	index    int
	phase    Phase
	layout   domain.Layout
	reports  []spawn.Report
	complete bool

	log *logrus.Entry
}

func NewController(levels []domain.LevelSize, deps Deps) *Controller {
	if deps.Notifier == nil {
		deps.Notifier = domain.NopNotifier{}
	}
	return &Controller{
		levels: levels,
		deps:   deps,
		log:    logger.Component("level"),
	}
}

func (c *Controller) Index() int              { return c.index }
func (c *Controller) Phase() Phase            { return c.phase }
func (c *Controller) Layout() domain.Layout   { return c.layout }
func (c *Controller) Reports() []spawn.Report { return c.reports }
func (c *Controller) LevelCount() int         { return len(c.levels) }
func (c *Controller) Size() domain.LevelSize  { return c.levels[c.index] }

// Start запускает игру с выбранного уровня. Выбор прижимается к списку уровней.
func (c *Controller) Start(selected int) error {
	if len(c.levels) == 0 {
		return fmt.Errorf("start: empty level list: %w", domain.ErrLevelOutOfRange)
	}
	if selected < 0 {
		selected = 0
	}
	if selected >= len(c.levels) {
		selected = len(c.levels) - 1
	}
	c.complete = false
	return c.generate(selected, false)
}

// OnPlayerExit - игрок дошел до выхода.
// После последнего уровня сигнал AllLevelsComplete отправляется один раз,
// последующие вызовы возвращают ErrAllLevelsComplete.
func (c *Controller) OnPlayerExit() error {
	if c.complete {
		return domain.ErrAllLevelsComplete
	}
	if c.phase != PhasePlaying {
		c.log.WithField("phase", c.phase).Debug("Exit ignored outside of play.")
		return nil
	}

	c.phase = PhaseExiting
	if c.index+1 >= len(c.levels) {
		c.phase = PhaseComplete
		c.complete = true
		c.log.WithField("level_index", c.index).Info("All levels complete.")
		c.deps.Notifier.Notify(domain.Event{Type: domain.EventAllLevelsComplete, Level: c.index})
		return nil
	}

	// Индекс и LevelAdvanced фиксируются только после успешной перегенерации.
	err := c.generate(c.index+1, true)
	if c.phase == PhaseExiting {
		c.phase = PhasePlaying
	}
	return err
}

// RestartCurrentLevel перегенерирует текущий уровень без смены индекса.
func (c *Controller) RestartCurrentLevel() error {
	if c.complete {
		return domain.ErrAllLevelsComplete
	}
	c.log.WithField("level_index", c.index).Info("Restarting level.")
	return c.generate(c.index, false)
}

func (c *Controller) missing() error {
	var names []string
	if c.deps.Topology == nil {
		names = append(names, "topology")
	}
	if c.deps.Scoreboard == nil {
		names = append(names, "scoreboard")
	}
	if c.deps.Player == nil {
		names = append(names, "player")
	}
	if c.deps.World == nil {
		names = append(names, "world")
	}
	if len(names) == 0 {
		return nil
	}
	return fmt.Errorf("level generation: %v: %w", names, domain.ErrMissingCollaborator)
}

// generate строит уровень idx. До успешной перегенерации лабиринта
// состояние контроллера не меняется.
func (c *Controller) generate(idx int, advanced bool) error {
	if err := c.missing(); err != nil {
		c.log.WithError(err).Error("Level generation aborted.")
		return err
	}
	if idx < 0 || idx >= len(c.levels) {
		return fmt.Errorf("level %d of %d: %w", idx, len(c.levels), domain.ErrLevelOutOfRange)
	}

	prev := c.phase
	c.phase = PhaseGenerating
	size := c.levels[idx]

	if err := c.deps.Topology.Regenerate(size.Rows, size.Columns); err != nil {
		c.phase = prev
		c.log.WithError(err).Error("Maze regeneration failed.")
		return fmt.Errorf("regenerate level %d: %w", idx, err)
	}
	c.index = idx
	if advanced {
		c.log.WithField("level_index", c.index).Info("Level advanced.")
		c.deps.Notifier.Notify(domain.Event{Type: domain.EventLevelAdvanced, Level: c.index})
	}
	c.layout = c.deps.Topology.Layout()

	c.deps.Player.Reposition(c.layout.PlayerStart)
	c.deps.Scoreboard.SetLevel(c.index)
	c.deps.Scoreboard.ResetScore()
	c.deps.Scoreboard.ResetTimer()
	c.deps.Scoreboard.ResetHealth()
	c.deps.World.BeginPass(c.index)

	ctx := spawn.NewContext(c.index, c.layout)
	reports := make([]spawn.Report, 0, len(c.deps.Coordinators))
	var errs []error
	for _, coord := range c.deps.Coordinators {
		next, rep, err := coord.Populate(ctx)
		ctx = next
		reports = append(reports, rep)
		if err != nil {
			errs = append(errs, fmt.Errorf("populate %s: %w", coord.Kind(), err))
		}
	}
	c.reports = reports

	c.phase = PhasePlaying
	c.log.WithFields(logrus.Fields{
		"level_index": c.index,
		"rows":        size.Rows,
		"cols":        size.Columns,
		"generation":  c.deps.World.Generation,
	}).Info("Level generated.")
	c.deps.Notifier.Notify(domain.Event{Type: domain.EventLevelGenerated, Level: c.index})

	if c.deps.OnGenerated != nil {
		c.deps.OnGenerated(Generated{Index: c.index, Layout: c.layout, Reports: reports})
	}
	return errors.Join(errs...)
}
