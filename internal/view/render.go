// Package view рисует уровень в терминале: стены, предметы, ловушки и HUD.
package view

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/muneebk98/Maze-Adventures/internal/core/types/enums"
	"github.com/muneebk98/Maze-Adventures/internal/domain"
	"github.com/muneebk98/Maze-Adventures/pkg/api"
)

const (
	GlyphWall    = '#'
	GlyphFloor   = ' '
	GlyphPlayer  = '@'
	GlyphStart   = 'S'
	GlyphExit    = 'E'
	GlyphPickup  = 'o'
	GlyphHealing = '+'
)

var hazardGlyphs = map[enums.HazardCategory]rune{
	enums.HazardSpike:      '^',
	enums.HazardGuillotine: '|',
	enums.HazardSwing:      '~',
	enums.HazardOther:      '*',
}

var (
	styleWall    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePlayer  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleExit    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleStart   = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	stylePickup  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleHealing = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleHazard  = tcell.StyleDefault.Foreground(tcell.ColorPurple)
	styleHUD     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// Glyph - символ объекта на карте.
func Glyph(rec domain.PlacementRecord) rune {
	switch rec.Kind {
	case enums.EntityTypePickup:
		return GlyphPickup
	case enums.EntityTypeHealing:
		return GlyphHealing
	case enums.EntityTypeHazard:
		if g, ok := hazardGlyphs[rec.Category]; ok {
			return g
		}
		return hazardGlyphs[enums.HazardOther]
	}
	return '?'
}

func styleOf(kind enums.EntityType) tcell.Style {
	switch kind {
	case enums.EntityTypePickup:
		return stylePickup
	case enums.EntityTypeHealing:
		return styleHealing
	case enums.EntityTypeHazard:
		return styleHazard
	}
	return tcell.StyleDefault
}

// cellPos - экранная позиция центра клетки (сетка стен 2R+1 x 2C+1).
func cellPos(l domain.Layout, p domain.Vec3) (x, y int, ok bool) {
	row, col, ok := l.CellOf(p)
	if !ok {
		return 0, 0, false
	}
	return 2*col + 1, 2*row + 1, true
}

// Render рисует уровень в левом верхнем углу экрана. Show вызывает вызывающий.
func Render(s tcell.Screen, l domain.Layout, v api.LevelView) {
	s.Clear()

	for y, row := range l.Walls {
		for x, wall := range row {
			if wall {
				s.SetContent(x, y, GlyphWall, nil, styleWall)
			} else {
				s.SetContent(x, y, GlyphFloor, nil, tcell.StyleDefault)
			}
		}
	}

	put := func(p domain.Vec3, r rune, st tcell.Style) {
		if x, y, ok := cellPos(l, p); ok {
			s.SetContent(x, y, r, nil, st)
		}
	}

	put(l.PlayerStart, GlyphStart, styleStart)
	put(l.Exit, GlyphExit, styleExit)
	for _, rec := range v.Entities {
		put(rec.Pos, Glyph(rec), styleOf(rec.Kind))
	}
	// Активные ловушки подсвечиваются.
	for _, h := range v.Hazards {
		if !h.CanDamage {
			continue
		}
		for _, rec := range v.Entities {
			if rec.ID.String() == h.ID {
				put(rec.Pos, Glyph(rec), styleHazard.Reverse(true))
			}
		}
	}
	put(v.Player, GlyphPlayer, stylePlayer)

	drawText(s, 0, len(l.Walls)+1, styleHUD, HUD(v))
}

// HUD - строка состояния под картой.
func HUD(v api.LevelView) string {
	return fmt.Sprintf("LVL %d/%d  HP %3d  SCORE %3d  TIME %2ds  %s",
		v.Level+1, v.LevelCount, v.Health, v.Score, v.TimeLeftMs/1000, v.Phase)
}

func drawText(s tcell.Screen, x, y int, st tcell.Style, text string) {
	for i, r := range text {
		s.SetContent(x+i, y, r, nil, st)
	}
}
