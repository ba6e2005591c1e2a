package domain

import (
	"github.com/muneebk98/Maze-Adventures/internal/core/types"
	"github.com/muneebk98/Maze-Adventures/internal/core/types/enums"
)

// CandidatePoint - проходимая точка, на которую можно что-то поставить.
type CandidatePoint struct {
	Pos   Vec3             `json:"pos"`
	Label enums.EntityType `json:"label"`
}

// ExclusionAnchor - точка и радиус, внутри которого размещение запрещено.
type ExclusionAnchor struct {
	Pos    Vec3    `json:"pos"`
	Radius float64 `json:"radius"`
}

// Rejects возвращает true, если точка p не дальше радиуса якоря.
func (a ExclusionAnchor) Rejects(p Vec3) bool {
	return PlanarDistance(a.Pos, p) <= a.Radius
}

// PlacementRecord - итоговая позиция одного заспавненного объекта.
// Живет до следующей перегенерации уровня.
type PlacementRecord struct {
	ID       types.EntityID       `json:"id"`
	Kind     enums.EntityType     `json:"kind"`
	Category enums.HazardCategory `json:"category,omitempty"`
	Item     string               `json:"item,omitempty"`
	Pos      Vec3                 `json:"pos"`
	Yaw      float64              `json:"yaw"`
}
