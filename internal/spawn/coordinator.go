package spawn

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/muneebk98/Maze-Adventures/internal/core/types/enums"
	"github.com/muneebk98/Maze-Adventures/internal/domain"
	"github.com/muneebk98/Maze-Adventures/pkg/logger"
	"github.com/muneebk98/Maze-Adventures/pkg/placement"
)

// Coordinator заселяет уровень объектами одного вида.
type Coordinator interface {
	Kind() enums.EntityType
	// Populate удаляет прежние объекты своего вида и размещает новые.
	// Недобор не является ошибкой: он отражается в Report.
	Populate(ctx Context) (Context, Report, error)
}

// Report - итог одного вызова координатора.
type Report struct {
	Kind      enums.EntityType `json:"kind"`
	Removed   int              `json:"removed"`
	Requested int              `json:"requested"`
	Placed    int              `json:"placed"`
	Skipped   int              `json:"skipped"`
	Attempts  int              `json:"attempts"`
}

func (r Report) Shortfall() bool {
	return r.Placed < r.Requested
}

// Deps - общие зависимости координаторов.
type Deps struct {
	World    *domain.World
	Notifier domain.Notifier
	Rng      *rand.Rand
}

type base struct {
	kind     enums.EntityType
	world    *domain.World
	notifier domain.Notifier
	rng      *rand.Rand
	log      *logrus.Entry
}

func newBase(kind enums.EntityType, deps Deps) base {
	n := deps.Notifier
	if n == nil {
		n = domain.NopNotifier{}
	}
	return base{
		kind:     kind,
		world:    deps.World,
		notifier: n,
		rng:      deps.Rng,
		log: logger.Log.WithFields(logrus.Fields{
			"component": "spawn",
			"kind":      kind,
		}),
	}
}

func (b *base) Kind() enums.EntityType { return b.kind }

// clear удаляет все объекты своего вида по индексу мира.
func (b *base) clear(level int) int {
	ids := b.world.RemoveKind(b.kind)
	for _, id := range ids {
		b.notifier.Notify(domain.Event{
			Type:   domain.EventEntityRemoved,
			Level:  level,
			Entity: id,
			Kind:   b.kind.String(),
		})
	}
	return len(ids)
}

func (b *base) place(req placement.Request) placement.Result {
	return placement.Place(req, b.rng)
}

func (b *base) commit(level int, pos domain.Vec3, cat enums.HazardCategory, item string, yaw float64) domain.PlacementRecord {
	rec := domain.PlacementRecord{
		ID:       b.world.NextID(b.kind),
		Kind:     b.kind,
		Category: cat,
		Item:     item,
		Pos:      pos,
		Yaw:      yaw,
	}
	b.world.Add(rec)

	ev := domain.Event{
		Type:   domain.EventEntitySpawned,
		Level:  level,
		Entity: rec.ID,
		Kind:   b.kind.String(),
		Pos:    &rec.Pos,
	}
	if b.kind == enums.EntityTypeHazard {
		ev.Category = cat.String()
	}
	b.notifier.Notify(ev)
	return rec
}

// finish сообщает о недоборе.
func (b *base) finish(level int, rep Report) {
	fields := logrus.Fields{
		"level_index": level,
		"requested":   rep.Requested,
		"placed":      rep.Placed,
		"attempts":    rep.Attempts,
	}
	if !rep.Shortfall() {
		b.log.WithFields(fields).Debug("Population complete.")
		return
	}

	b.log.WithFields(fields).Warn("Placement shortfall.")
	b.notifier.Notify(domain.Event{
		Type:      domain.EventPlacementShortfall,
		Level:     level,
		Kind:      b.kind.String(),
		Requested: rep.Requested,
		Actual:    rep.Placed,
	})
}
