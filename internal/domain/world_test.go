package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muneebk98/Maze-Adventures/internal/core/types/enums"
)

func TestWorld_AddRemoveEntity(t *testing.T) {
	w := NewWorld()
	w.BeginPass(0)

	id := w.NextID(enums.EntityTypePickup)
	w.Add(PlacementRecord{ID: id, Kind: enums.EntityTypePickup, Pos: Vec3{X: 1}})

	rec, ok := w.Get(id)
	require.True(t, ok)
	assert.Equal(t, Vec3{X: 1}, rec.Pos)
	assert.Equal(t, 1, w.Count(enums.EntityTypePickup))

	assert.True(t, w.Remove(id))
	assert.False(t, w.Remove(id))
	assert.False(t, w.Has(id))
	assert.Equal(t, 0, w.Count(enums.EntityTypePickup))
}

func TestWorld_RemoveKindIsIdempotent(t *testing.T) {
	w := NewWorld()
	w.BeginPass(1)

	for i := 0; i < 3; i++ {
		w.Add(PlacementRecord{ID: w.NextID(enums.EntityTypeHazard), Kind: enums.EntityTypeHazard})
	}
	w.Add(PlacementRecord{ID: w.NextID(enums.EntityTypeHealing), Kind: enums.EntityTypeHealing})

	removed := w.RemoveKind(enums.EntityTypeHazard)
	assert.Len(t, removed, 3)
	assert.Empty(t, w.RemoveKind(enums.EntityTypeHazard))
	assert.Equal(t, 1, w.Count(enums.EntityTypeHealing))
	assert.Len(t, w.All(), 1)
}

func TestWorld_GenerationChangesIDs(t *testing.T) {
	w := NewWorld()
	w.BeginPass(2)
	first := w.NextID(enums.EntityTypeHazard)

	w.BeginPass(2)
	second := w.NextID(enums.EntityTypeHazard)

	assert.Equal(t, first.Index(), second.Index())
	assert.NotEqual(t, first, second)
	assert.Equal(t, uint8(2), second.Level())
}

func TestDifficulty_HazardCount(t *testing.T) {
	d := Difficulty{Base: 5, PerLevel: 2}

	assert.Equal(t, 5, d.HazardCount(0))
	assert.Equal(t, 7, d.HazardCount(1))
	assert.Equal(t, 11, d.HazardCount(3))
	assert.Equal(t, 5, d.HazardCount(-1))
}

func TestExclusionAnchor_Rejects(t *testing.T) {
	a := ExclusionAnchor{Pos: Vec3{}, Radius: 2}

	assert.True(t, a.Rejects(Vec3{X: 1}))
	assert.True(t, a.Rejects(Vec3{X: 2}))
	assert.False(t, a.Rejects(Vec3{X: 2.01}))
	// высота не учитывается
	assert.True(t, a.Rejects(Vec3{Y: 10}))
}

func TestLayout_CellRoundTrip(t *testing.T) {
	l := Layout{Rows: 3, Columns: 4, CellWidth: 2, CellHeight: 2, Gap: 0.2}

	for r := 0; r < l.Rows; r++ {
		for c := 0; c < l.Columns; c++ {
			row, col, ok := l.CellOf(l.CellCenter(r, c))
			require.True(t, ok)
			assert.Equal(t, r, row)
			assert.Equal(t, c, col)
		}
	}

	_, _, ok := l.CellOf(Vec3{X: -1})
	assert.False(t, ok)
}
