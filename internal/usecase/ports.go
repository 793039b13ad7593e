package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/aoc-leaderboard/internal/domain/leaderboard"
	"github.com/riskibarqy/aoc-leaderboard/internal/domain/user"
)

// BoardSource reads a private leaderboard from the puzzle site.
type BoardSource interface {
	GetLeaderboard(ctx context.Context, year int, boardID string) (leaderboard.Board, error)
}

// ProfileSource resolves local ids to identity-provider profiles.
type ProfileSource interface {
	GetProfileByID(ctx context.Context, localID string) (user.Principal, error)
}

// LanguageSource reports bytes of code per language for an "owner/repo" slug.
type LanguageSource interface {
	GetLanguages(ctx context.Context, repoSlug string) (map[string]int, error)
}

// LeaderboardMetrics is satisfied by *observability.Metrics.
type LeaderboardMetrics interface {
	CacheHit(variant string)
	CacheMiss(variant string)
	CacheError(operation string)
	ObserveCompute(variant string, d time.Duration)
	EnrichmentDropped(variant, source string)
}

type noopLeaderboardMetrics struct{}

func (noopLeaderboardMetrics) CacheHit(string)                      {}
func (noopLeaderboardMetrics) CacheMiss(string)                     {}
func (noopLeaderboardMetrics) CacheError(string)                    {}
func (noopLeaderboardMetrics) ObserveCompute(string, time.Duration) {}
func (noopLeaderboardMetrics) EnrichmentDropped(string, string)     {}
