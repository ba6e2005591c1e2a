// Package spawn - координаторы заселения уровня: сборщики, лечилки, ловушки.
//
// Каждый координатор получает Context с тем, что уже разместили предыдущие,
// и возвращает новый Context со своими позициями. Порядок вызова задает
// контроллер уровня.
package spawn

import (
	"github.com/muneebk98/Maze-Adventures/internal/core/types/enums"
	"github.com/muneebk98/Maze-Adventures/internal/domain"
)

// Context - неизменяемый контекст размещения одного прохода генерации.
type Context struct {
	Level  int
	Layout domain.Layout

	placed map[enums.EntityType][]domain.Vec3
}

func NewContext(level int, layout domain.Layout) Context {
	return Context{Level: level, Layout: layout}
}

// With возвращает копию контекста с позициями вида kind.
func (c Context) With(kind enums.EntityType, positions []domain.Vec3) Context {
	next := make(map[enums.EntityType][]domain.Vec3, len(c.placed)+1)
	for k, v := range c.placed {
		next[k] = v
	}
	next[kind] = append([]domain.Vec3(nil), positions...)
	c.placed = next
	return c
}

// Placed - позиции вида kind, размещенные в этом проходе.
func (c Context) Placed(kind enums.EntityType) []domain.Vec3 {
	return c.placed[kind]
}

// Anchors - якоря исключения вокруг размещенных объектов вида kind.
func (c Context) Anchors(kind enums.EntityType, radius float64) []domain.ExclusionAnchor {
	pos := c.placed[kind]
	out := make([]domain.ExclusionAnchor, 0, len(pos))
	for _, p := range pos {
		out = append(out, domain.ExclusionAnchor{Pos: p, Radius: radius})
	}
	return out
}

func (c Context) StartAnchor(radius float64) domain.ExclusionAnchor {
	return domain.ExclusionAnchor{Pos: c.Layout.PlayerStart, Radius: radius}
}

func (c Context) ExitAnchor(radius float64) domain.ExclusionAnchor {
	return domain.ExclusionAnchor{Pos: c.Layout.Exit, Radius: radius}
}
