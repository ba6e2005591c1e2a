package placement

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muneebk98/Maze-Adventures/internal/core/types/enums"
	"github.com/muneebk98/Maze-Adventures/internal/domain"
)

func grid(rows, cols int, step float64) []domain.CandidatePoint {
	out := make([]domain.CandidatePoint, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out = append(out, domain.CandidatePoint{
				Pos:   domain.Vec3{X: float64(c) * step, Z: float64(r) * step},
				Label: enums.EntityTypeFloor,
			})
		}
	}
	return out
}

func TestPlace_RespectsConstraints(t *testing.T) {
	anchors := []domain.ExclusionAnchor{
		{Pos: domain.Vec3{}, Radius: 5},
		{Pos: domain.Vec3{X: 18, Z: 18}, Radius: 2},
	}

	for seed := int64(1); seed <= 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		res := Place(Request{
			Candidates:  grid(10, 10, 2),
			Count:       12,
			Anchors:     anchors,
			MinDistance: 3,
		}, rng)

		for i, p := range res.Positions {
			for _, a := range anchors {
				assert.Greater(t, domain.PlanarDistance(a.Pos, p), a.Radius, "seed %d: anchor violated", seed)
			}
			for j := i + 1; j < len(res.Positions); j++ {
				assert.GreaterOrEqual(t, domain.PlanarDistance(p, res.Positions[j]), 3.0, "seed %d: pair too close", seed)
			}
		}
		assert.LessOrEqual(t, res.Attempts, 12*AttemptsPerItem)
	}
}

func TestPlace_ClampsToPool(t *testing.T) {
	candidates := grid(2, 2, 10)

	res := Place(Request{Candidates: candidates, Count: 10, MinDistance: 1}, rand.New(rand.NewSource(7)))

	assert.Equal(t, 4, res.Placed())
	assert.Equal(t, 4, res.Target)
	assert.Equal(t, 10, res.Requested)
	assert.True(t, res.Shortfall())
}

func TestPlace_AnchorsFilterBeforeClamp(t *testing.T) {
	candidates := grid(1, 5, 1)
	anchors := []domain.ExclusionAnchor{{Pos: domain.Vec3{}, Radius: 1.5}}

	res := Place(Request{Candidates: candidates, Count: 5, Anchors: anchors}, rand.New(rand.NewSource(1)))

	assert.Equal(t, 3, res.Target)
	assert.Equal(t, 3, res.Placed())
	for _, p := range res.Positions {
		assert.Greater(t, p.X, 1.5)
	}
}

func TestPlace_EmptyPool(t *testing.T) {
	res := Place(Request{Count: 3}, rand.New(rand.NewSource(1)))

	assert.Zero(t, res.Placed())
	assert.Zero(t, res.Attempts)
	assert.True(t, res.Shortfall())
}

func TestPlace_ZeroCount(t *testing.T) {
	res := Place(Request{Candidates: grid(3, 3, 1), Count: 0}, rand.New(rand.NewSource(1)))

	assert.Zero(t, res.Placed())
	assert.False(t, res.Shortfall())
}

func TestPlace_NoAnchorsSamplesWithoutReplacement(t *testing.T) {
	candidates := grid(4, 4, 1)

	res := Place(Request{Candidates: candidates, Count: 16}, rand.New(rand.NewSource(3)))

	require.Equal(t, 16, res.Placed())
	seen := map[domain.Vec3]bool{}
	for _, p := range res.Positions {
		assert.False(t, seen[p], "duplicate %v", p)
		seen[p] = true
	}
}

func TestPlace_DuplicateCandidatesCountOnce(t *testing.T) {
	p := domain.CandidatePoint{Pos: domain.Vec3{X: 1, Z: 1}}
	res := Place(Request{Candidates: []domain.CandidatePoint{p, p, p}, Count: 3}, rand.New(rand.NewSource(1)))

	assert.Equal(t, 1, res.Placed())
}

func TestPlace_AttemptBound(t *testing.T) {
	// Все точки в одной клетке: после первой остальные отклоняются.
	candidates := grid(3, 3, 0.1)

	res := Place(Request{Candidates: candidates, Count: 5, MinDistance: 10}, rand.New(rand.NewSource(5)))

	assert.Equal(t, 1, res.Placed())
	assert.Equal(t, 5*AttemptsPerItem, res.Attempts)
	assert.True(t, res.Shortfall())
}

func TestPlace_Deterministic(t *testing.T) {
	req := Request{Candidates: grid(6, 6, 2), Count: 8, MinDistance: 2.5}

	a := Place(req, rand.New(rand.NewSource(99)))
	b := Place(req, rand.New(rand.NewSource(99)))

	assert.Equal(t, a.Positions, b.Positions)
}
