// Package hazard - конечный автомат ловушек: Idle -> Arming -> Active -> Cooling -> Idle.
//
// Переходы выполняются отложенными вызовами clock.Scheduler. Уничтоженная ловушка
// снимает свой таймер, а колбэк дополнительно сверяет ID с реестром живых,
// поэтому переход в уже переиспользованный слот невозможен.
package hazard

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"github.com/muneebk98/Maze-Adventures/internal/clock"
	"github.com/muneebk98/Maze-Adventures/internal/core/types"
	"github.com/muneebk98/Maze-Adventures/internal/core/types/enums"
	"github.com/muneebk98/Maze-Adventures/internal/domain"
	"github.com/muneebk98/Maze-Adventures/pkg/logger"
)

// Health принимает урон от ловушек.
type Health interface {
	Damage(amount int)
}

// Animator - визуальная привязка. Ошибки и отсутствие не влияют на автомат.
type Animator interface {
	Play(id types.EntityID, state enums.HazardState) error
}

// cue - отложенный вызов Animator.Play.
type cue struct {
	id    types.EntityID
	state enums.HazardState
}

// Instance - одна ловушка на уровне.
type Instance struct {
	Record  domain.PlacementRecord
	Profile domain.HazardProfile

	state     enums.HazardState
	canDamage bool
	destroyed bool
	timer     *clock.Timer
	hits      int
}

func (h *Instance) State() enums.HazardState { return h.state }

// CanDamage - защелка урона текущей фазы Active.
func (h *Instance) CanDamage() bool { return h.canDamage }

// Hits - сколько раз ловушка нанесла урон.
func (h *Instance) Hits() int { return h.hits }

// Status - снимок для отладки и клиентов.
type Status struct {
	ID        types.EntityID       `json:"id"`
	Category  enums.HazardCategory `json:"category"`
	State     string               `json:"state"`
	CanDamage bool                 `json:"canDamage"`
	Hits      int                  `json:"hits"`
	Pos       domain.Vec3          `json:"pos"`
}

// Field - все ловушки текущего уровня.
type Field struct {
	sched    *clock.Scheduler
	health   Health
	notifier domain.Notifier
	animator Animator

	hazards map[types.EntityID]*Instance
	live    mapset.Set[types.EntityID]
	order   []types.EntityID
	pending []cue
	log     *logrus.Entry
}

func NewField(sched *clock.Scheduler, health Health, notifier domain.Notifier) *Field {
	if notifier == nil {
		notifier = domain.NopNotifier{}
	}
	return &Field{
		sched:    sched,
		health:   health,
		notifier: notifier,
		hazards:  make(map[types.EntityID]*Instance),
		live:     mapset.New[types.EntityID](),
		log:      logger.Component("hazard"),
	}
}

// Bind подключает визуальную привязку. nil отключает ее.
func (f *Field) Bind(a Animator) {
	f.animator = a
}

// Spawn регистрирует ловушку и запускает ее автомат.
func (f *Field) Spawn(rec domain.PlacementRecord, profile domain.HazardProfile) *Instance {
	inst := &Instance{Record: rec, Profile: profile, state: enums.HazardIdle}
	f.hazards[rec.ID] = inst
	f.live.Put(rec.ID)
	f.order = append(f.order, rec.ID)

	f.enter(inst, enums.HazardIdle)
	return inst
}

func (f *Field) Get(id types.EntityID) (*Instance, bool) {
	inst, ok := f.hazards[id]
	return inst, ok
}

func (f *Field) Len() int {
	return len(f.order)
}

// Destroy снимает ловушку и ее отложенный переход.
func (f *Field) Destroy(id types.EntityID) bool {
	inst, ok := f.hazards[id]
	if !ok {
		return false
	}
	f.kill(inst)
	delete(f.hazards, id)
	for i, other := range f.order {
		if other == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return true
}

// DestroyAll снимает все ловушки. Возвращает число снятых.
func (f *Field) DestroyAll() int {
	n := len(f.order)
	for _, id := range f.order {
		f.kill(f.hazards[id])
	}
	f.hazards = make(map[types.EntityID]*Instance)
	f.order = f.order[:0]
	return n
}

func (f *Field) kill(inst *Instance) {
	inst.destroyed = true
	inst.canDamage = false
	inst.timer.Cancel()
	inst.timer = nil
	f.live.Remove(inst.Record.ID)
}

// Tick проверяет близость и попадания для всех ловушек.
// Возвращает число нанесенных ударов. Визуальные переходы тика уходят
// в Animator только после проверки всех ловушек.
func (f *Field) Tick(player domain.Vec3) int {
	defer f.Present()

	hits := 0
	for _, id := range f.order {
		inst := f.hazards[id]
		dist := domain.PlanarDistance(inst.Record.Pos, player)

		if inst.state == enums.HazardIdle &&
			inst.Profile.Mode == enums.ModeProximityTriggered &&
			dist < inst.Profile.ActivationDistance {
			f.enter(inst, enums.HazardArming)
		}

		if inst.state == enums.HazardActive && inst.canDamage && dist <= inst.Profile.HitRadius {
			// Один удар за фазу Active. Сбрасывается только при новом входе в Active.
			inst.canDamage = false
			inst.hits++
			hits++
			if f.health != nil {
				f.health.Damage(inst.Profile.Damage)
			}
			f.log.WithFields(logrus.Fields{
				"hazard":   id,
				"category": inst.Record.Category,
				"damage":   inst.Profile.Damage,
			}).Info("Hazard hit player.")
		}
	}
	return hits
}

// Statuses - снимок всех ловушек в порядке появления.
func (f *Field) Statuses() []Status {
	out := make([]Status, 0, len(f.order))
	for _, id := range f.order {
		inst := f.hazards[id]
		out = append(out, Status{
			ID:        id,
			Category:  inst.Record.Category,
			State:     inst.state.String(),
			CanDamage: inst.canDamage,
			Hits:      inst.hits,
			Pos:       inst.Record.Pos,
		})
	}
	return out
}

func (f *Field) enter(inst *Instance, state enums.HazardState) {
	inst.state = state
	id := inst.Record.ID

	f.log.WithFields(logrus.Fields{
		"hazard": id,
		"state":  state,
	}).Debug("Hazard state transition.")

	f.notifier.Notify(domain.Event{
		Type:     domain.EventHazardState,
		Level:    int(id.Level()),
		Entity:   id,
		Category: inst.Record.Category.String(),
		State:    state.String(),
	})
	f.pending = append(f.pending, cue{id: id, state: state})

	switch state {
	case enums.HazardIdle:
		inst.canDamage = false
		if inst.Profile.Mode == enums.ModeTimedCycle {
			f.enter(inst, enums.HazardArming)
		}
	case enums.HazardArming:
		f.schedule(inst, inst.Profile.ArmDelay, enums.HazardActive)
	case enums.HazardActive:
		inst.canDamage = true
		f.schedule(inst, inst.Profile.ActiveDuration, enums.HazardCooling)
	case enums.HazardCooling:
		inst.canDamage = false
		f.schedule(inst, inst.Profile.ResetDuration, enums.HazardIdle)
	}
}

func (f *Field) schedule(inst *Instance, d time.Duration, next enums.HazardState) {
	id := inst.Record.ID
	inst.timer = f.sched.After(d, func() {
		if inst.destroyed || !f.live.Has(id) {
			return
		}
		inst.timer = nil
		f.enter(inst, next)
	})
}

// Present отдает накопленные переходы в Animator. Переходы снятых ловушек
// отбрасываются. Возвращает число отданных.
func (f *Field) Present() int {
	if len(f.pending) == 0 {
		return 0
	}
	cues := f.pending
	f.pending = nil

	if f.animator == nil {
		f.log.WithField("cues", len(cues)).Debug("No animator bound, skipping visuals.")
		return 0
	}
	n := 0
	for _, c := range cues {
		if !f.live.Has(c.id) {
			continue
		}
		n++
		if err := f.animator.Play(c.id, c.state); err != nil {
			f.log.WithError(err).WithField("hazard", c.id).Debug("Animator failed, state machine continues.")
		}
	}
	return n
}
