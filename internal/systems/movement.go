package systems

import (
	"github.com/muneebk98/Maze-Adventures/internal/domain"
)

// MovementResult - результат вычисления движения
type MovementResult struct {
	Target   domain.Vec3
	HasMoved bool
	IsWall   bool // Если врезались в стену или вышли за границы
}

// CalculateMove проверяет перемещение игрока из from в to. Не меняет состояние мира!
// Разрешено движение внутри клетки и в соседнюю клетку через открытый проход.
func CalculateMove(l domain.Layout, from, to domain.Vec3) MovementResult {
	res := MovementResult{Target: to}

	// 1. Проверка границ
	tr, tc, ok := l.CellOf(to)
	if !ok {
		res.IsWall = true
		return res
	}
	fr, fc, ok := l.CellOf(from)
	if !ok {
		// Игрок вне лабиринта (например, после телепорта): пускаем в любую клетку.
		res.HasMoved = true
		return res
	}

	// 2. Проверка стен
	dr, dc := tr-fr, tc-fc
	switch {
	case dr == 0 && dc == 0:
	case abs(dr)+abs(dc) == 1:
		if l.Walls != nil && l.Walls[2*fr+1+dr][2*fc+1+dc] {
			res.IsWall = true
			return res
		}
	default:
		res.IsWall = true
		return res
	}

	res.HasMoved = true
	return res
}

// Step сдвигает точку к цели не дальше чем на maxDist.
func Step(from, to domain.Vec3, maxDist float64) domain.Vec3 {
	d := to.Sub(from)
	dist := d.PlanarLen()
	if dist <= maxDist || dist == 0 {
		return to
	}
	return from.Add(d.Scale(maxDist / dist))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
