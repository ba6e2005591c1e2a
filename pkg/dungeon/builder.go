package dungeon

import (
	"math/rand"

	"github.com/muneebk98/Maze-Adventures/internal/core/types/enums"
	"github.com/muneebk98/Maze-Adventures/internal/domain"
)

// GapSize - зазор между клетками, если он включен.
const GapSize = 0.2

// point - координата в сетке стен (x - столбец, y - строка).
type point struct {
	X, Y int
}

// MazeBuilder предоставляет fluent API для создания лабиринта
type MazeBuilder struct {
	rows, cols int
	cellWidth  float64
	cellHeight float64
	gapEnabled bool
	braid      float64
	walls      [][]bool
	rng        *rand.Rand
}

// NewMaze создает builder для лабиринта rows x cols клеток.
func NewMaze(rows, cols int, rng *rand.Rand) *MazeBuilder {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	return &MazeBuilder{
		rows:       rows,
		cols:       cols,
		cellWidth:  1,
		cellHeight: 1,
		rng:        rng,
	}
}

// WithCellSize задает размер клетки в мировых единицах.
func (b *MazeBuilder) WithCellSize(width, height float64) *MazeBuilder {
	b.cellWidth = width
	b.cellHeight = height
	return b
}

// WithGap включает зазор GapSize между клетками.
func (b *MazeBuilder) WithGap(enabled bool) *MazeBuilder {
	b.gapEnabled = enabled
	return b
}

// WithBraid задает долю тупиков, которые будут пробиты.
func (b *MazeBuilder) WithBraid(p float64) *MazeBuilder {
	b.braid = p
	return b
}

// Carve прорубает идеальный лабиринт рекурсивным бэктрекингом, затем пробивает часть тупиков.
func (b *MazeBuilder) Carve() *MazeBuilder {
	h, w := 2*b.rows+1, 2*b.cols+1
	b.walls = make([][]bool, h)
	for y := range b.walls {
		row := make([]bool, w)
		for x := range row {
			row[x] = true
		}
		b.walls[y] = row
	}

	backtrack(b.walls, point{1, 1}, b.rng)
	if b.braid > 0 {
		braid(b.walls, b.braid, b.rng)
	}
	return b
}

// Build собирает Layout: точки пола в центрах клеток, старт в (0,0), выход в дальнем углу.
func (b *MazeBuilder) Build() domain.Layout {
	if b.walls == nil {
		b.Carve()
	}

	l := domain.Layout{
		Rows:       b.rows,
		Columns:    b.cols,
		CellWidth:  b.cellWidth,
		CellHeight: b.cellHeight,
		GapEnabled: b.gapEnabled,
		Walls:      b.walls,
	}
	if b.gapEnabled {
		l.Gap = GapSize
	}

	l.FloorPoints = make([]domain.CandidatePoint, 0, b.rows*b.cols)
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			l.FloorPoints = append(l.FloorPoints, domain.CandidatePoint{
				Pos:   l.CellCenter(r, c),
				Label: enums.EntityTypeFloor,
			})
		}
	}

	l.PlayerStart = l.CellCenter(0, 0)
	l.Exit = l.CellCenter(b.rows-1, b.cols-1)

	start := point{1, 1}
	end := point{2*b.cols - 1, 2*b.rows - 1}
	for _, p := range solve(b.walls, start, end) {
		// Только центры клеток: проходы между ними лежат на отрезке.
		if p.X%2 == 1 && p.Y%2 == 1 {
			l.Path = append(l.Path, l.CellCenter(p.Y/2, p.X/2))
		}
	}
	return l
}

// --- Helper functions ---

func backtrack(grid [][]bool, start point, rng *rand.Rand) {
	rows, cols := len(grid), len(grid[0])
	stack := []point{start}
	grid[start.Y][start.X] = false

	dirs := []point{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		candidates := make([]point, 0, 4)

		for _, d := range dirs {
			nx, ny := curr.X+d.X, curr.Y+d.Y
			if nx > 0 && nx < cols-1 && ny > 0 && ny < rows-1 && grid[ny][nx] {
				candidates = append(candidates, d)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := candidates[rng.Intn(len(candidates))]
		grid[curr.Y+d.Y/2][curr.X+d.X/2] = false
		next := point{curr.X + d.X, curr.Y + d.Y}
		grid[next.Y][next.X] = false
		stack = append(stack, next)
	}
}

// braid пробивает стену из тупика в соседнюю клетку с вероятностью p.
func braid(grid [][]bool, p float64, rng *rand.Rand) {
	rows, cols := len(grid), len(grid[0])
	dirs := []point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

	for y := 1; y < rows-1; y += 2 {
		for x := 1; x < cols-1; x += 2 {
			closed := make([]point, 0, 4)
			for _, d := range dirs {
				wx, wy := x+d.X, y+d.Y
				// стена должна вести к клетке внутри лабиринта
				if wx > 0 && wx < cols-1 && wy > 0 && wy < rows-1 && grid[wy][wx] {
					closed = append(closed, d)
				}
			}
			open := 0
			for _, d := range dirs {
				if !grid[y+d.Y][x+d.X] {
					open++
				}
			}
			if open != 1 || len(closed) == 0 || rng.Float64() >= p {
				continue
			}
			d := closed[rng.Intn(len(closed))]
			grid[y+d.Y][x+d.X] = false
		}
	}
}

func solve(grid [][]bool, start, end point) []point {
	rows, cols := len(grid), len(grid[0])
	if grid[start.Y][start.X] || grid[end.Y][end.X] {
		return nil
	}

	queue := []point{start}
	cameFrom := make(map[point]point)
	visited := map[point]bool{start: true}
	dirs := []point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		if curr == end {
			path := []point{curr}
			for curr != start {
				curr = cameFrom[curr]
				path = append(path, curr)
			}
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path
		}

		for _, d := range dirs {
			next := point{curr.X + d.X, curr.Y + d.Y}
			if next.X < 0 || next.X >= cols || next.Y < 0 || next.Y >= rows {
				continue
			}
			if !grid[next.Y][next.X] && !visited[next] {
				visited[next] = true
				cameFrom[next] = curr
				queue = append(queue, next)
			}
		}
	}
	return nil
}
