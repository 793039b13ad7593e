// Package cache decorates repositories with a shared cache.Store.
package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/aoc-leaderboard/internal/domain/year"
	basecache "github.com/riskibarqy/aoc-leaderboard/internal/platform/cache"
	"github.com/riskibarqy/aoc-leaderboard/internal/platform/logging"
)

const yearKeyPrefix = "years:"

type cachedYear struct {
	Year          int    `json:"year"`
	LeaderboardID string `json:"leaderboard"`
}

// YearRepository serves GetByYear from the store. Every leaderboard request
// resolves its year first, so this keeps the database off the hot path.
// Store failures fall through to the wrapped repository.
type YearRepository struct {
	next   year.Repository
	store  basecache.Store
	ttl    time.Duration
	logger *logging.Logger
}

func NewYearRepository(next year.Repository, store basecache.Store, ttl time.Duration, logger *logging.Logger) *YearRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &YearRepository{next: next, store: store, ttl: ttl, logger: logger.Named("year_cache")}
}

func (r *YearRepository) List(ctx context.Context) ([]year.Year, error) {
	return r.next.List(ctx)
}

func (r *YearRepository) GetByYear(ctx context.Context, y int) (year.Year, bool, error) {
	key := yearKey(y)
	if payload, _, found, err := r.store.Get(ctx, key); err != nil {
		r.logger.WarnContext(ctx, "year cache get failed", "key", key, "error", err)
	} else if found {
		var item cachedYear
		if err := sonic.Unmarshal(payload, &item); err == nil {
			return year.Year{Year: item.Year, LeaderboardID: item.LeaderboardID}, true, nil
		}
		r.logger.WarnContext(ctx, "year cache payload undecodable", "key", key)
	}

	item, exists, err := r.next.GetByYear(ctx, y)
	if err != nil || !exists {
		return item, exists, err
	}

	payload, err := sonic.Marshal(cachedYear{Year: item.Year, LeaderboardID: item.LeaderboardID})
	if err == nil {
		err = r.store.Set(ctx, key, payload, r.ttl)
	}
	if err != nil {
		r.logger.WarnContext(ctx, "year cache set failed", "key", key, "error", err)
	}
	return item, true, nil
}

func (r *YearRepository) Upsert(ctx context.Context, y year.Year) error {
	if err := r.next.Upsert(ctx, y); err != nil {
		return err
	}
	r.invalidate(ctx, y.Year)
	return nil
}

func (r *YearRepository) Delete(ctx context.Context, y int) (bool, error) {
	removed, err := r.next.Delete(ctx, y)
	if err != nil {
		return false, err
	}
	r.invalidate(ctx, y)
	return removed, nil
}

func (r *YearRepository) invalidate(ctx context.Context, y int) {
	if err := r.store.Delete(ctx, yearKey(y)); err != nil {
		r.logger.WarnContext(ctx, "year cache invalidate failed", "year", y, "error", err)
	}
}

func yearKey(y int) string {
	return yearKeyPrefix + strconv.Itoa(y)
}
