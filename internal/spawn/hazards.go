package spawn

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/muneebk98/Maze-Adventures/internal/config"
	"github.com/muneebk98/Maze-Adventures/internal/core/types/enums"
	"github.com/muneebk98/Maze-Adventures/internal/domain"
	"github.com/muneebk98/Maze-Adventures/internal/hazard"
	"github.com/muneebk98/Maze-Adventures/pkg/placement"
	"github.com/muneebk98/Maze-Adventures/pkg/weighted"
)

// HazardSelector - выбор конкретной ловушки по весам категорий.
type HazardSelector = weighted.Selector[enums.HazardCategory, string]

// HazardField - то, что координатору нужно от автомата ловушек.
type HazardField interface {
	Spawn(rec domain.PlacementRecord, profile domain.HazardProfile) *hazard.Instance
	DestroyAll() int
}

// NewHazardSelector раскладывает шаблоны по категориям и проверяет веса.
func NewHazardSelector(cfg config.HazardConfig) (*HazardSelector, error) {
	rules := make([]weighted.Rule[enums.HazardCategory], 0, len(cfg.Rules))
	for _, cat := range enums.HazardCategories {
		if subs, ok := cfg.Rules[cat.String()]; ok {
			rules = append(rules, weighted.Rule[enums.HazardCategory]{Category: cat, Substrings: subs})
		}
	}

	weights := make([]weighted.Weight[enums.HazardCategory], 0, len(cfg.Weights))
	for _, w := range cfg.Weights {
		cat, err := enums.ParseHazardCategory(w.Category)
		if err != nil {
			return nil, fmt.Errorf("hazard weights: %w", err)
		}
		weights = append(weights, weighted.Weight[enums.HazardCategory]{Category: cat, Weight: w.Weight})
	}

	groups := weighted.Partition(cfg.Templates, func(s string) string { return s }, rules, enums.HazardOther)
	return weighted.NewSelector(weights, groups)
}

// Hazards расставляет ловушки; их число растет с номером уровня.
type Hazards struct {
	base
	cfg      config.HazardConfig
	selector *HazardSelector
	field    HazardField
	profile  func(enums.HazardCategory) domain.HazardProfile
}

func NewHazards(
	cfg config.HazardConfig,
	selector *HazardSelector,
	field HazardField,
	profile func(enums.HazardCategory) domain.HazardProfile,
	deps Deps,
) *Hazards {
	return &Hazards{
		base:     newBase(enums.EntityTypeHazard, deps),
		cfg:      cfg,
		selector: selector,
		field:    field,
		profile:  profile,
	}
}

func (h *Hazards) Populate(ctx Context) (Context, Report, error) {
	count := h.cfg.Difficulty.HazardCount(ctx.Level)
	rep := Report{Kind: h.kind, Requested: count}

	rep.Removed = h.clear(ctx.Level)
	h.field.DestroyAll()

	anchors := []domain.ExclusionAnchor{
		ctx.StartAnchor(h.cfg.SafeRadius),
		ctx.ExitAnchor(h.cfg.MinDistance),
	}
	anchors = append(anchors, ctx.Anchors(enums.EntityTypePickup, h.cfg.PickupClearance)...)

	res := h.place(placement.Request{
		Candidates:  ctx.Layout.FloorPoints,
		Count:       count,
		Anchors:     anchors,
		MinDistance: h.cfg.MinDistance,
	})
	rep.Attempts = res.Attempts

	var errs []error
	committed := make([]domain.Vec3, 0, len(res.Positions))
	for i, pos := range res.Positions {
		item, cat, err := h.selector.Pick(h.rng)
		if err != nil {
			rep.Skipped++
			errs = append(errs, fmt.Errorf("hazard slot %d: %w", i, err))
			continue
		}

		yaw := float64(h.rng.Intn(4)) * 90
		rec := h.commit(ctx.Level, pos, cat, item, yaw)
		h.field.Spawn(rec, h.profile(cat))
		committed = append(committed, pos)
	}
	rep.Placed = len(committed)

	err := errors.Join(errs...)
	if err != nil {
		h.log.WithError(err).WithFields(logrus.Fields{
			"level_index": ctx.Level,
			"skipped":     rep.Skipped,
		}).Error("Hazard slots skipped.")
	}

	h.finish(ctx.Level, rep)
	return ctx.With(h.kind, committed), rep, err
}
