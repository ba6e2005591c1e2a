package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/muneebk98/Maze-Adventures/internal/core/types"
	"github.com/muneebk98/Maze-Adventures/internal/core/types/enums"
)

// hazardCues - визуальная привязка ловушек для клиентов. Смена вида ловушки
// помечает снимок устаревшим, и flush рассылает его после событий тика.
type hazardCues struct {
	g     *Game
	plays int
}

func (c *hazardCues) Play(id types.EntityID, state enums.HazardState) error {
	c.plays++
	c.g.dirty = true
	c.g.log.WithFields(logrus.Fields{"hazard": id, "state": state}).Debug("Hazard visual changed.")
	return nil
}
