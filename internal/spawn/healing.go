package spawn

import (
	"github.com/muneebk98/Maze-Adventures/internal/config"
	"github.com/muneebk98/Maze-Adventures/internal/core/types/enums"
	"github.com/muneebk98/Maze-Adventures/internal/domain"
	"github.com/muneebk98/Maze-Adventures/pkg/placement"
)

// Healing раскладывает лечилки подальше от старта, выхода и уже размещенного.
type Healing struct {
	base
	cfg config.HealingConfig
}

func NewHealing(cfg config.HealingConfig, deps Deps) *Healing {
	return &Healing{base: newBase(enums.EntityTypeHealing, deps), cfg: cfg}
}

func (h *Healing) Populate(ctx Context) (Context, Report, error) {
	rep := Report{Kind: h.kind, Requested: h.cfg.Count}
	rep.Removed = h.clear(ctx.Level)

	anchors := []domain.ExclusionAnchor{
		ctx.StartAnchor(h.cfg.StartClearance),
		ctx.ExitAnchor(h.cfg.ExitClearance),
	}
	anchors = append(anchors, ctx.Anchors(enums.EntityTypeHazard, h.cfg.HazardClearance)...)
	anchors = append(anchors, ctx.Anchors(enums.EntityTypePickup, h.cfg.PickupClearance)...)

	res := h.place(placement.Request{
		Candidates:  ctx.Layout.FloorPoints,
		Count:       h.cfg.Count,
		Anchors:     anchors,
		MinDistance: h.cfg.MinDistance,
	})
	rep.Attempts = res.Attempts

	for _, pos := range res.Positions {
		h.commit(ctx.Level, pos, enums.HazardOther, h.cfg.Item, 0)
	}
	rep.Placed = res.Placed()

	h.finish(ctx.Level, rep)
	return ctx.With(h.kind, res.Positions), rep, nil
}
