package spawn

import (
	"github.com/muneebk98/Maze-Adventures/internal/config"
	"github.com/muneebk98/Maze-Adventures/internal/core/types/enums"
	"github.com/muneebk98/Maze-Adventures/internal/domain"
	"github.com/muneebk98/Maze-Adventures/pkg/placement"
)

// Pickups раскладывает собираемые предметы (+1 к очкам).
type Pickups struct {
	base
	cfg config.PickupConfig
}

func NewPickups(cfg config.PickupConfig, deps Deps) *Pickups {
	return &Pickups{base: newBase(enums.EntityTypePickup, deps), cfg: cfg}
}

func (p *Pickups) Populate(ctx Context) (Context, Report, error) {
	rep := Report{Kind: p.kind, Requested: p.cfg.Count}
	rep.Removed = p.clear(ctx.Level)

	res := p.place(placement.Request{
		Candidates: ctx.Layout.FloorPoints,
		Count:      p.cfg.Count,
		Anchors: []domain.ExclusionAnchor{
			ctx.StartAnchor(p.cfg.StartClearance),
			ctx.ExitAnchor(p.cfg.ExitClearance),
		},
		MinDistance: p.cfg.MinDistance,
	})
	rep.Attempts = res.Attempts

	for _, pos := range res.Positions {
		p.commit(ctx.Level, pos, enums.HazardOther, p.cfg.Item, 0)
	}
	rep.Placed = res.Placed()

	p.finish(ctx.Level, rep)
	return ctx.With(p.kind, res.Positions), rep, nil
}
