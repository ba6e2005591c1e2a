// Package placement - размещение объектов на множестве точек пола
// с ограничениями по якорям исключения и минимальной дистанции.
package placement

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/muneebk98/Maze-Adventures/internal/domain"
)

// AttemptsPerItem - сколько попыток выборки приходится на один запрошенный объект.
const AttemptsPerItem = 10

// Rand - источник случайности. *rand.Rand подходит.
type Rand interface {
	Intn(n int) int
}

// Request - что и куда размещать.
type Request struct {
	Candidates  []domain.CandidatePoint
	Count       int
	Anchors     []domain.ExclusionAnchor
	MinDistance float64
}

// Result - выбранные позиции. Недобор не является ошибкой.
type Result struct {
	Positions []domain.Vec3
	Requested int
	// Target - цель после отсечения пула якорями.
	Target   int
	Attempts int
}

func (r Result) Placed() int {
	return len(r.Positions)
}

// Shortfall - размещено меньше, чем просили.
func (r Result) Shortfall() bool {
	return len(r.Positions) < r.Requested
}

// Place выбирает до req.Count позиций выборкой с отклонением без возвращения.
//
// Каждая позиция дальше радиуса от каждого якоря и не ближе MinDistance к уже выбранным.
// Всего попыток не больше AttemptsPerItem * Count.
func Place(req Request, rng Rand) Result {
	res := Result{Requested: req.Count}
	if req.Count <= 0 {
		return res
	}

	pool := eligible(req.Candidates, req.Anchors)
	res.Target = min(req.Count, len(pool))
	if res.Target == 0 {
		return res
	}

	res.Positions = make([]domain.Vec3, 0, res.Target)
	maxAttempts := req.Count * AttemptsPerItem

	for res.Attempts < maxAttempts && len(res.Positions) < res.Target && len(pool) > 0 {
		res.Attempts++
		i := rng.Intn(len(pool))
		p := pool[i]

		if !farFromAll(p, res.Positions, req.MinDistance) {
			continue
		}

		res.Positions = append(res.Positions, p)
		// Убираем выбранную точку из пула: swap-remove.
		last := len(pool) - 1
		pool[i] = pool[last]
		pool = pool[:last]
	}

	return res
}

// eligible убирает дубликаты и точки, запрещенные якорями. Порядок входа сохраняется.
func eligible(candidates []domain.CandidatePoint, anchors []domain.ExclusionAnchor) []domain.Vec3 {
	seen := mapset.New[domain.Vec3]()
	pool := make([]domain.Vec3, 0, len(candidates))

	for _, c := range candidates {
		if seen.Has(c.Pos) {
			continue
		}
		seen.Put(c.Pos)
		if rejected(c.Pos, anchors) {
			continue
		}
		pool = append(pool, c.Pos)
	}
	return pool
}

func rejected(p domain.Vec3, anchors []domain.ExclusionAnchor) bool {
	for _, a := range anchors {
		if a.Rejects(p) {
			return true
		}
	}
	return false
}

func farFromAll(p domain.Vec3, chosen []domain.Vec3, minDistance float64) bool {
	for _, q := range chosen {
		if domain.PlanarDistance(p, q) < minDistance {
			return false
		}
	}
	return true
}
