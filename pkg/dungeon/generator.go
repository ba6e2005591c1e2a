// Package dungeon - провайдер топологии лабиринта.
package dungeon

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/muneebk98/Maze-Adventures/internal/domain"
	"github.com/muneebk98/Maze-Adventures/pkg/logger"
)

// Options - параметры клеток, общие для всех уровней.
type Options struct {
	CellWidth  float64
	CellHeight float64
	GapEnabled bool
	Braid      float64
}

// Generator хранит последний сгенерированный лабиринт.
type Generator struct {
	opts   Options
	rng    *rand.Rand
	layout domain.Layout
	passes int
}

func NewGenerator(opts Options, rng *rand.Rand) *Generator {
	return &Generator{opts: opts, rng: rng}
}

// Regenerate строит новый лабиринт rows x cols.
func (g *Generator) Regenerate(rows, cols int) error {
	if rows < 1 || cols < 1 {
		return fmt.Errorf("maze size %dx%d: %w", rows, cols, domain.ErrLevelOutOfRange)
	}

	g.layout = NewMaze(rows, cols, g.rng).
		WithCellSize(g.opts.CellWidth, g.opts.CellHeight).
		WithGap(g.opts.GapEnabled).
		WithBraid(g.opts.Braid).
		Carve().
		Build()
	g.passes++

	logger.Log.WithFields(logrus.Fields{
		"component": "dungeon",
		"rows":      rows,
		"cols":      cols,
		"floor":     len(g.layout.FloorPoints),
		"path":      len(g.layout.Path),
	}).Debug("Maze regenerated.")
	return nil
}

// Layout - последний сгенерированный лабиринт.
func (g *Generator) Layout() domain.Layout {
	return g.layout
}

// Passes - сколько раз вызывался Regenerate.
func (g *Generator) Passes() int {
	return g.passes
}
