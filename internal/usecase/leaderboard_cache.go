package usecase

import (
	"context"
	"time"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/aoc-leaderboard/internal/domain/leaderboard"
)

// loadCached reads a ranked list from the store. Every failure is reported
// as a miss so callers recompute.
func loadCached[T any](ctx context.Context, s *LeaderboardService, variant leaderboard.Variant, key string) ([]T, time.Duration, bool) {
	payload, remaining, found, err := s.store.Get(ctx, key)
	if err != nil {
		s.metrics.CacheError("get")
		s.logger.WarnContext(ctx, "leaderboard cache get failed", "key", key, "error", err)
		return nil, 0, false
	}
	if !found {
		return nil, 0, false
	}

	var entries []T
	if err := sonic.Unmarshal(payload, &entries); err != nil {
		s.metrics.CacheError("decode")
		s.logger.WarnContext(ctx, "leaderboard cache payload undecodable", "key", key, "variant", string(variant), "error", err)
		return nil, 0, false
	}
	if entries == nil {
		entries = []T{}
	}
	return entries, remaining, true
}

func storeCached[T any](ctx context.Context, s *LeaderboardService, key string, entries []T, ttl time.Duration) {
	payload, err := sonic.Marshal(entries)
	if err != nil {
		s.metrics.CacheError("encode")
		s.logger.WarnContext(ctx, "leaderboard cache encode failed", "key", key, "error", err)
		return
	}
	if err := s.store.Set(ctx, key, payload, ttl); err != nil {
		s.metrics.CacheError("set")
		s.logger.WarnContext(ctx, "leaderboard cache set failed", "key", key, "error", err)
	}
}
