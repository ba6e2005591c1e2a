// Package weighted - выбор категории по таблице весов с откатом на общий пул.
package weighted

import (
	"fmt"
	"strings"

	"github.com/muneebk98/Maze-Adventures/internal/domain"
)

// Rand - источник случайности. *rand.Rand подходит.
type Rand interface {
	Intn(n int) int
}

// Weight - вес категории. Порядок в таблице важен: по нему идет накопление.
type Weight[K comparable] struct {
	Category K
	Weight   int
}

// Rule - правило классификации: имя, содержащее любую из подстрок, попадает в Category.
type Rule[K comparable] struct {
	Category   K
	Substrings []string
}

// Group - пул конкретных предметов одной категории.
type Group[K comparable, T any] struct {
	Category K
	Items    []T
}

// Classify относит имя к первой подходящей категории. Регистр не важен.
// Имя без совпадений попадает в fallback.
func Classify[K comparable](name string, rules []Rule[K], fallback K) K {
	lower := strings.ToLower(name)
	for _, r := range rules {
		for _, sub := range r.Substrings {
			if sub != "" && strings.Contains(lower, strings.ToLower(sub)) {
				return r.Category
			}
		}
	}
	return fallback
}

// Partition раскладывает предметы по категориям один раз при загрузке.
// Группы идут в порядке правил, fallback - последней. Пустые группы тоже возвращаются.
func Partition[K comparable, T any](items []T, name func(T) string, rules []Rule[K], fallback K) []Group[K, T] {
	groups := make([]Group[K, T], 0, len(rules)+1)
	index := make(map[K]int, len(rules)+1)

	add := func(k K) {
		if _, ok := index[k]; ok {
			return
		}
		index[k] = len(groups)
		groups = append(groups, Group[K, T]{Category: k})
	}
	for _, r := range rules {
		add(r.Category)
	}
	add(fallback)

	for _, it := range items {
		k := Classify(name(it), rules, fallback)
		g := &groups[index[k]]
		g.Items = append(g.Items, it)
	}
	return groups
}

// Selector выбирает предмет: сначала категорию по весу, затем предмет в ней.
type Selector[K comparable, T any] struct {
	weights []Weight[K]
	total   int
	groups  []Group[K, T]
	pools   map[K][]T
}

// NewSelector проверяет таблицу весов. Отрицательный вес или нулевая сумма - ErrInvalidWeights.
func NewSelector[K comparable, T any](weights []Weight[K], groups []Group[K, T]) (*Selector[K, T], error) {
	total := 0
	for _, w := range weights {
		if w.Weight < 0 {
			return nil, fmt.Errorf("category %v has weight %d: %w", w.Category, w.Weight, domain.ErrInvalidWeights)
		}
		total += w.Weight
	}
	if total <= 0 {
		return nil, fmt.Errorf("total weight is %d: %w", total, domain.ErrInvalidWeights)
	}

	pools := make(map[K][]T, len(groups))
	for _, g := range groups {
		pools[g.Category] = append(pools[g.Category], g.Items...)
	}

	return &Selector[K, T]{
		weights: append([]Weight[K](nil), weights...),
		total:   total,
		groups:  groups,
		pools:   pools,
	}, nil
}

// Total - сумма весов.
func (s *Selector[K, T]) Total() int {
	return s.total
}

// PickCategory - категория по весу, без учета наполненности пулов.
func (s *Selector[K, T]) PickCategory(rng Rand) K {
	draw := rng.Intn(s.total)
	acc := 0
	for _, w := range s.weights {
		acc += w.Weight
		if draw < acc {
			return w.Category
		}
	}
	// недостижимо при total > 0
	return s.weights[len(s.weights)-1].Category
}

// Pick возвращает предмет и его фактическую категорию.
// Если пул выпавшей категории пуст, берется случайный предмет из объединения всех пулов.
// Если пусто везде - ErrNoItemsAvailable.
func (s *Selector[K, T]) Pick(rng Rand) (T, K, error) {
	k := s.PickCategory(rng)
	if pool := s.pools[k]; len(pool) > 0 {
		return pool[rng.Intn(len(pool))], k, nil
	}

	size := 0
	for _, g := range s.groups {
		size += len(g.Items)
	}
	if size == 0 {
		var zero T
		return zero, k, domain.ErrNoItemsAvailable
	}

	n := rng.Intn(size)
	for _, g := range s.groups {
		if n < len(g.Items) {
			return g.Items[n], g.Category, nil
		}
		n -= len(g.Items)
	}

	var zero T
	return zero, k, domain.ErrNoItemsAvailable
}
