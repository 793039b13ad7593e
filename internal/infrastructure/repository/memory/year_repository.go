package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/aoc-leaderboard/internal/domain/year"
)

type YearRepository struct {
	mu    sync.RWMutex
	items map[int]year.Year
}

func NewYearRepository(years []year.Year) *YearRepository {
	items := make(map[int]year.Year, len(years))
	for _, y := range years {
		items[y.Year] = y
	}
	return &YearRepository{items: items}
}

func (r *YearRepository) List(_ context.Context) ([]year.Year, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]year.Year, 0, len(r.items))
	for _, y := range r.items {
		out = append(out, y)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out, nil
}

func (r *YearRepository) GetByYear(_ context.Context, y int) (year.Year, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[y]
	return item, ok, nil
}

func (r *YearRepository) Upsert(_ context.Context, y year.Year) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[y.Year] = y
	return nil
}

func (r *YearRepository) Delete(_ context.Context, y int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[y]; !ok {
		return false, nil
	}
	delete(r.items, y)
	return true, nil
}
