package hazard

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muneebk98/Maze-Adventures/internal/clock"
	"github.com/muneebk98/Maze-Adventures/internal/core/types"
	"github.com/muneebk98/Maze-Adventures/internal/core/types/enums"
	"github.com/muneebk98/Maze-Adventures/internal/domain"
)

type fakeHealth struct {
	hits  []int
	total int
}

func (h *fakeHealth) Damage(amount int) {
	h.hits = append(h.hits, amount)
	h.total += amount
}

type recorder struct {
	events []domain.Event
}

func (r *recorder) Notify(ev domain.Event) { r.events = append(r.events, ev) }

type brokenAnimator struct{ calls int }

func (a *brokenAnimator) Play(types.EntityID, enums.HazardState) error {
	a.calls++
	return errors.New("clip not found")
}

var timed = domain.HazardProfile{
	Damage:         30,
	ArmDelay:       500 * time.Millisecond,
	ActiveDuration: 2 * time.Second,
	ResetDuration:  2 * time.Second,
	Mode:           enums.ModeTimedCycle,
	HitRadius:      1,
}

var proximity = domain.HazardProfile{
	Damage:             15,
	ArmDelay:           500 * time.Millisecond,
	ActiveDuration:     time.Second,
	ResetDuration:      2 * time.Second,
	Mode:               enums.ModeProximityTriggered,
	ActivationDistance: 2,
	HitRadius:          1,
}

func record(gen uint16, idx uint32, pos domain.Vec3) domain.PlacementRecord {
	return domain.PlacementRecord{
		ID:       types.PackEntityID(0, enums.EntityTypeHazard, gen, idx),
		Kind:     enums.EntityTypeHazard,
		Category: enums.HazardGuillotine,
		Pos:      pos,
	}
}

func TestField_TimedCycle(t *testing.T) {
	sched := clock.NewScheduler()
	health := &fakeHealth{}
	f := NewField(sched, health, nil)

	inst := f.Spawn(record(1, 0, domain.Vec3{}), timed)
	assert.Equal(t, enums.HazardArming, inst.State())

	sched.Advance(500 * time.Millisecond)
	assert.Equal(t, enums.HazardActive, inst.State())
	assert.True(t, inst.CanDamage())

	sched.Advance(2 * time.Second)
	assert.Equal(t, enums.HazardCooling, inst.State())

	sched.Advance(2 * time.Second)
	// Idle в таймерном режиме сразу переходит в Arming
	assert.Equal(t, enums.HazardArming, inst.State())

	sched.Advance(500 * time.Millisecond)
	assert.Equal(t, enums.HazardActive, inst.State())
}

func TestField_DamageOncePerActivePhase(t *testing.T) {
	sched := clock.NewScheduler()
	health := &fakeHealth{}
	f := NewField(sched, health, nil)
	inst := f.Spawn(record(1, 0, domain.Vec3{}), timed)

	// Arming: урона нет
	assert.Zero(t, f.Tick(domain.Vec3{}))

	sched.Advance(500 * time.Millisecond)
	assert.Equal(t, 1, f.Tick(domain.Vec3{X: 0.5}))
	assert.Equal(t, 0, f.Tick(domain.Vec3{X: 0.2}))
	assert.Equal(t, enums.HazardActive, inst.State(), "visual state still reads Active")
	assert.False(t, inst.CanDamage())

	sched.Advance(time.Second)
	assert.Equal(t, 0, f.Tick(domain.Vec3{}))
	assert.Equal(t, []int{30}, health.hits)

	// следующий цикл снова может ударить
	sched.Advance(time.Second + 2*time.Second + 500*time.Millisecond)
	require.Equal(t, enums.HazardActive, inst.State())
	assert.Equal(t, 1, f.Tick(domain.Vec3{}))
	assert.Equal(t, 60, health.total)
	assert.Equal(t, 2, inst.Hits())
}

func TestField_NoDamageOutsideHitRadius(t *testing.T) {
	sched := clock.NewScheduler()
	health := &fakeHealth{}
	f := NewField(sched, health, nil)
	inst := f.Spawn(record(1, 0, domain.Vec3{}), timed)

	sched.Advance(500 * time.Millisecond)
	assert.Zero(t, f.Tick(domain.Vec3{X: 3}))
	assert.True(t, inst.CanDamage())
	assert.Zero(t, health.total)
}

func TestField_ProximityTriggered(t *testing.T) {
	sched := clock.NewScheduler()
	health := &fakeHealth{}
	f := NewField(sched, health, nil)
	inst := f.Spawn(record(1, 0, domain.Vec3{}), proximity)

	f.Tick(domain.Vec3{X: 5})
	sched.Advance(10 * time.Second)
	assert.Equal(t, enums.HazardIdle, inst.State())

	f.Tick(domain.Vec3{X: 1.5})
	assert.Equal(t, enums.HazardArming, inst.State())

	sched.Advance(500 * time.Millisecond)
	assert.Equal(t, enums.HazardActive, inst.State())
	assert.Equal(t, 1, f.Tick(domain.Vec3{X: 0.5}))

	sched.Advance(time.Second)
	assert.Equal(t, enums.HazardCooling, inst.State())
	sched.Advance(2 * time.Second)
	assert.Equal(t, enums.HazardIdle, inst.State())

	// ушел далеко - цикл не повторяется
	f.Tick(domain.Vec3{X: 10})
	sched.Advance(10 * time.Second)
	assert.Equal(t, enums.HazardIdle, inst.State())
	assert.Equal(t, []int{15}, health.hits)
}

func TestField_DestroyCancelsTimers(t *testing.T) {
	sched := clock.NewScheduler()
	health := &fakeHealth{}
	rec := &recorder{}
	f := NewField(sched, health, rec)

	for i := uint32(0); i < 3; i++ {
		f.Spawn(record(1, i, domain.Vec3{X: float64(i)}), timed)
	}
	require.Equal(t, 3, sched.Pending())

	assert.Equal(t, 3, f.DestroyAll())
	assert.Zero(t, sched.Pending())

	before := len(rec.events)
	sched.Advance(time.Minute)
	assert.Zero(t, f.Tick(domain.Vec3{}))
	assert.Len(t, rec.events, before)
	assert.Zero(t, health.total)
}

func TestField_NoZombieTransitionsIntoReusedSlot(t *testing.T) {
	sched := clock.NewScheduler()
	rec := &recorder{}
	f := NewField(sched, &fakeHealth{}, rec)

	old := f.Spawn(record(1, 0, domain.Vec3{}), timed)
	f.DestroyAll()

	fresh := f.Spawn(record(2, 0, domain.Vec3{}), timed)
	rec.events = nil

	sched.Advance(500 * time.Millisecond)

	for _, ev := range rec.events {
		assert.Equal(t, fresh.Record.ID, ev.Entity)
	}
	assert.Equal(t, enums.HazardArming, old.State())
	assert.Equal(t, enums.HazardActive, fresh.State())
}

func TestField_MissingAnimatorDoesNotBlock(t *testing.T) {
	sched := clock.NewScheduler()
	f := NewField(sched, &fakeHealth{}, nil)
	anim := &brokenAnimator{}
	f.Bind(anim)

	inst := f.Spawn(record(1, 0, domain.Vec3{}), timed)
	sched.Advance(500 * time.Millisecond)
	assert.Zero(t, anim.calls, "visuals wait for Present")

	assert.Equal(t, 3, f.Present())
	assert.Equal(t, enums.HazardActive, inst.State())
	assert.Equal(t, 3, anim.calls)
}

// journal - общий журнал урона и визуальных переходов.
type journal struct{ entries []string }

func (j *journal) Damage(int) { j.entries = append(j.entries, "damage") }

func (j *journal) Play(_ types.EntityID, state enums.HazardState) error {
	j.entries = append(j.entries, "present:"+state.String())
	return nil
}

func TestField_PresentationAfterDamageInTick(t *testing.T) {
	sched := clock.NewScheduler()
	j := &journal{}
	f := NewField(sched, j, nil)
	f.Bind(j)

	f.Spawn(record(1, 0, domain.Vec3{}), proximity)
	timedHazard := f.Spawn(record(1, 1, domain.Vec3{}), timed)
	sched.Advance(500 * time.Millisecond)
	require.Equal(t, enums.HazardActive, timedHazard.State())
	f.Present()
	j.entries = nil

	assert.Equal(t, 1, f.Tick(domain.Vec3{}))
	require.NotEmpty(t, j.entries)
	assert.Equal(t, "damage", j.entries[0])
	assert.Equal(t, []string{"damage", "present:" + enums.HazardArming.String()}, j.entries)
}

func TestField_PresentSkipsDestroyed(t *testing.T) {
	sched := clock.NewScheduler()
	f := NewField(sched, &fakeHealth{}, nil)
	anim := &brokenAnimator{}
	f.Bind(anim)

	inst := f.Spawn(record(1, 0, domain.Vec3{}), timed)
	require.True(t, f.Destroy(inst.Record.ID))

	assert.Zero(t, f.Present())
	assert.Zero(t, anim.calls)
}

func TestField_Statuses(t *testing.T) {
	sched := clock.NewScheduler()
	f := NewField(sched, &fakeHealth{}, nil)
	f.Spawn(record(1, 0, domain.Vec3{X: 1}), timed)
	f.Spawn(record(1, 1, domain.Vec3{X: 2}), proximity)

	st := f.Statuses()
	require.Len(t, st, 2)
	assert.Equal(t, "ARMING", st[0].State)
	assert.Equal(t, "IDLE", st[1].State)

	assert.True(t, f.Destroy(st[0].ID))
	assert.False(t, f.Destroy(st[0].ID))
	assert.Equal(t, 1, f.Len())
}
