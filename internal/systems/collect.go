package systems

import (
	"github.com/sirupsen/logrus"

	"github.com/muneebk98/Maze-Adventures/internal/core/types/enums"
	"github.com/muneebk98/Maze-Adventures/internal/domain"
	"github.com/muneebk98/Maze-Adventures/pkg/logger"
)

// Scorer - табло, которому сообщаются очки и лечение.
type Scorer interface {
	AddScore(delta int)
	Heal(amount int) bool
}

// CollectRules - радиусы подбора и сила лечения.
type CollectRules struct {
	PickupRadius  float64
	HealingRadius float64
	HealAmount    int
}

// CollectResult - что игрок подобрал за тик.
type CollectResult struct {
	Pickups int
	Healed  int
}

// CollectItems подбирает всё, что пересекается с игроком.
// Сборщик дает +1 очко и исчезает. Лечилка исчезает, только если вылечила.
func CollectItems(w *domain.World, s Scorer, player domain.Vec3, rules CollectRules, n domain.Notifier) CollectResult {
	var res CollectResult

	for _, rec := range w.ByKind(enums.EntityTypePickup) {
		if domain.PlanarDistance(rec.Pos, player) > rules.PickupRadius {
			continue
		}
		w.Remove(rec.ID)
		s.AddScore(1)
		res.Pickups++
		notifyRemoved(n, w.Level, rec)
	}

	for _, rec := range w.ByKind(enums.EntityTypeHealing) {
		if domain.PlanarDistance(rec.Pos, player) > rules.HealingRadius {
			continue
		}
		if !s.Heal(rules.HealAmount) {
			// Здоровье полное: лечилка остается на месте.
			continue
		}
		w.Remove(rec.ID)
		res.Healed++
		notifyRemoved(n, w.Level, rec)
	}

	if res.Pickups > 0 || res.Healed > 0 {
		logger.Log.WithFields(logrus.Fields{
			"component":   "collect_system",
			"level_index": w.Level,
			"pickups":     res.Pickups,
			"healed":      res.Healed,
		}).Debug("Items collected.")
	}
	return res
}

// ReachedExit - игрок в радиусе выхода.
func ReachedExit(l domain.Layout, player domain.Vec3, radius float64) bool {
	return domain.PlanarDistance(l.Exit, player) <= radius
}

func notifyRemoved(n domain.Notifier, level int, rec domain.PlacementRecord) {
	if n == nil {
		return
	}
	n.Notify(domain.Event{
		Type:   domain.EventEntityRemoved,
		Level:  level,
		Entity: rec.ID,
		Kind:   rec.Kind.String(),
	})
}
