package domain

import (
	"math"
	"time"
)

// LevelSize - размеры лабиринта одного уровня в клетках.
type LevelSize struct {
	Rows    int `yaml:"rows" json:"rows"`
	Columns int `yaml:"columns" json:"columns"`
}

// Difficulty - рост числа ловушек от уровня к уровню.
type Difficulty struct {
	Base     int `yaml:"base" json:"base"`
	PerLevel int `yaml:"per_level" json:"per_level"`
}

// HazardCount - целевое число ловушек для уровня (индекс с нуля).
func (d Difficulty) HazardCount(levelIndex int) int {
	if levelIndex < 0 {
		levelIndex = 0
	}
	n := d.Base + levelIndex*d.PerLevel
	if n < 0 {
		return 0
	}
	return n
}

// LevelState - снимок прогресса игрока на текущем уровне.
type LevelState struct {
	Index    int           `json:"index"`
	Score    int           `json:"score"`
	Health   int           `json:"health"`
	TimeLeft time.Duration `json:"timeLeft"`
}

// Layout - то, что отдает провайдер топологии после генерации.
//
// Walls - сетка (2*Rows+1) x (2*Columns+1): клетка (r, c) лежит в Walls[2r+1][2c+1],
// нечетные/четные позиции между ними - стены или проходы.
type Layout struct {
	Rows        int              `json:"rows"`
	Columns     int              `json:"columns"`
	CellWidth   float64          `json:"cellWidth"`
	CellHeight  float64          `json:"cellHeight"`
	GapEnabled  bool             `json:"gapEnabled"`
	Gap         float64          `json:"gap"`
	FloorPoints []CandidatePoint `json:"floorPoints"`
	PlayerStart Vec3             `json:"playerStart"`
	Exit        Vec3             `json:"exit"`
	Path        []Vec3           `json:"path,omitempty"`
	Walls       [][]bool         `json:"-"`
}

// CellCenter - мировая точка центра клетки.
func (l Layout) CellCenter(row, col int) Vec3 {
	return Vec3{
		X: float64(col)*(l.CellWidth+l.Gap) + l.CellWidth/2,
		Z: float64(row)*(l.CellHeight+l.Gap) + l.CellHeight/2,
	}
}

// CellOf - клетка, в которую попадает точка. ok=false за пределами лабиринта.
func (l Layout) CellOf(p Vec3) (row, col int, ok bool) {
	if l.CellWidth <= 0 || l.CellHeight <= 0 {
		return 0, 0, false
	}
	col = int(math.Floor(p.X / (l.CellWidth + l.Gap)))
	row = int(math.Floor(p.Z / (l.CellHeight + l.Gap)))
	if row < 0 || col < 0 || row >= l.Rows || col >= l.Columns {
		return row, col, false
	}
	return row, col, true
}
