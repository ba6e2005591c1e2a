package domain

import (
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/muneebk98/Maze-Adventures/internal/core/types"
	"github.com/muneebk98/Maze-Adventures/internal/core/types/enums"
)

// World - реестр заспавненных объектов уровня.
// Индекс по виду позволяет координаторам удалять "свое" по категории,
// не храня ссылок между проходами генерации.
type World struct {
	Level      int
	Generation uint16

	registry map[types.EntityID]PlacementRecord
	byKind   map[enums.EntityType]mapset.Set[types.EntityID]
	next     map[enums.EntityType]uint32
}

func NewWorld() *World {
	return &World{
		registry: make(map[types.EntityID]PlacementRecord),
		byKind:   make(map[enums.EntityType]mapset.Set[types.EntityID]),
		next:     make(map[enums.EntityType]uint32),
	}
}

// NextID выдает новый ID для вида kind в текущем поколении.
func (w *World) NextID(kind enums.EntityType) types.EntityID {
	idx := w.next[kind]
	w.next[kind] = idx + 1
	return types.PackEntityID(uint8(w.Level), kind, w.Generation, idx)
}

// BeginPass начинает новый проход генерации для уровня level.
// Существующие объекты не трогает: их удаляет каждый координатор сам.
func (w *World) BeginPass(level int) {
	w.Level = level
	w.Generation++
	for k := range w.next {
		w.next[k] = 0
	}
}

func (w *World) Add(rec PlacementRecord) {
	w.registry[rec.ID] = rec
	set, ok := w.byKind[rec.Kind]
	if !ok {
		set = mapset.New[types.EntityID]()
		w.byKind[rec.Kind] = set
	}
	set.Put(rec.ID)
}

func (w *World) Get(id types.EntityID) (PlacementRecord, bool) {
	rec, ok := w.registry[id]
	return rec, ok
}

func (w *World) Has(id types.EntityID) bool {
	_, ok := w.registry[id]
	return ok
}

// Remove удаляет объект. Возвращает false, если его уже нет.
func (w *World) Remove(id types.EntityID) bool {
	rec, ok := w.registry[id]
	if !ok {
		return false
	}
	delete(w.registry, id)
	if set, ok := w.byKind[rec.Kind]; ok {
		set.Remove(id)
	}
	return true
}

// RemoveKind удаляет все объекты вида kind и возвращает их ID.
// Повторный вызов ничего не делает.
func (w *World) RemoveKind(kind enums.EntityType) []types.EntityID {
	set, ok := w.byKind[kind]
	if !ok {
		return nil
	}
	ids := make([]types.EntityID, 0, set.Size())
	set.Each(func(id types.EntityID) {
		ids = append(ids, id)
	})
	for _, id := range ids {
		delete(w.registry, id)
	}
	delete(w.byKind, kind)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (w *World) Count(kind enums.EntityType) int {
	if set, ok := w.byKind[kind]; ok {
		return set.Size()
	}
	return 0
}

// ByKind возвращает записи вида kind, отсортированные по ID.
func (w *World) ByKind(kind enums.EntityType) []PlacementRecord {
	set, ok := w.byKind[kind]
	if !ok {
		return nil
	}
	out := make([]PlacementRecord, 0, set.Size())
	set.Each(func(id types.EntityID) {
		out = append(out, w.registry[id])
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// All возвращает все записи, отсортированные по ID.
func (w *World) All() []PlacementRecord {
	out := make([]PlacementRecord, 0, len(w.registry))
	for _, rec := range w.registry {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
