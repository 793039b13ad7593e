package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/aoc-leaderboard/internal/domain/leaderboard"
	"github.com/riskibarqy/aoc-leaderboard/internal/domain/participation"
	"github.com/riskibarqy/aoc-leaderboard/internal/domain/user"
	"github.com/riskibarqy/aoc-leaderboard/internal/domain/year"
	"github.com/riskibarqy/aoc-leaderboard/internal/platform/cache"
	"github.com/riskibarqy/aoc-leaderboard/internal/platform/fanout"
	"github.com/riskibarqy/aoc-leaderboard/internal/platform/logging"
)

const defaultLeaderboardTTL = 60 * time.Second

type LeaderboardConfig struct {
	ScoreTTL    time.Duration
	SplitsTTL   time.Duration
	LanguageTTL time.Duration
}

func (c LeaderboardConfig) ttl(v leaderboard.Variant) time.Duration {
	var ttl time.Duration
	switch v {
	case leaderboard.VariantScore:
		ttl = c.ScoreTTL
	case leaderboard.VariantSplits:
		ttl = c.SplitsTTL
	case leaderboard.VariantLanguages:
		ttl = c.LanguageTTL
	}
	if ttl <= 0 {
		return defaultLeaderboardTTL
	}
	return ttl
}

// View is one ranked leaderboard. Entries holds []leaderboard.ScoreEntry,
// []leaderboard.SplitEntry or []leaderboard.LanguageEntry depending on Variant.
// TTL is how long the view stays cached.
type View struct {
	Year    int
	Variant leaderboard.Variant
	Entries any
	TTL     time.Duration
	Cached  bool
}

type LeaderboardDeps struct {
	Years          year.Repository
	Participations participation.Repository
	Store          cache.Store
	Boards         BoardSource
	Profiles       ProfileSource
	Languages      LanguageSource
	Pool           *fanout.Pool
	Metrics        LeaderboardMetrics
	Logger         *logging.Logger
}

type LeaderboardService struct {
	years          year.Repository
	participations participation.Repository
	store          cache.Store
	boards         BoardSource
	profiles       ProfileSource
	languages      LanguageSource
	pool           *fanout.Pool
	metrics        LeaderboardMetrics
	cfg            LeaderboardConfig
	logger         *logging.Logger
	now            func() time.Time
}

func NewLeaderboardService(deps LeaderboardDeps, cfg LeaderboardConfig) *LeaderboardService {
	logger := deps.Logger
	if logger == nil {
		logger = logging.Default()
	}
	metrics := deps.Metrics
	if metrics == nil {
		metrics = noopLeaderboardMetrics{}
	}
	store := deps.Store
	if store == nil {
		store = cache.NewMemoryStore()
	}

	return &LeaderboardService{
		years:          deps.Years,
		participations: deps.Participations,
		store:          store,
		boards:         deps.Boards,
		profiles:       deps.Profiles,
		languages:      deps.Languages,
		pool:           deps.Pool,
		metrics:        metrics,
		cfg:            cfg,
		logger:         logger.Named("leaderboard"),
		now:            time.Now,
	}
}

// GetLeaderboard serves the cached view for (year, variant) or rebuilds it.
// Concurrent misses for the same key each rebuild and the last write wins.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, yearNum int, variant leaderboard.Variant) (View, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.GetLeaderboard")
	defer span.End()

	if yearNum <= 0 {
		return View{}, fmt.Errorf("%w: year must be positive", ErrInvalidInput)
	}

	switch variant {
	case leaderboard.VariantScore:
		return serve(ctx, s, yearNum, variant, s.buildScores)
	case leaderboard.VariantSplits:
		return serve(ctx, s, yearNum, variant, s.buildSplits)
	case leaderboard.VariantLanguages:
		return serve(ctx, s, yearNum, variant, s.buildLanguages)
	default:
		return View{}, fmt.Errorf("%w: unknown leaderboard variant %q", ErrInvalidInput, variant)
	}
}

func serve[T any](
	ctx context.Context,
	s *LeaderboardService,
	yearNum int,
	variant leaderboard.Variant,
	build func(ctx context.Context, yearNum int) ([]T, error),
) (View, error) {
	key := leaderboard.CacheKey(variant, yearNum)
	if entries, remaining, ok := loadCached[T](ctx, s, variant, key); ok {
		s.metrics.CacheHit(string(variant))
		return View{Year: yearNum, Variant: variant, Entries: entries, TTL: remaining, Cached: true}, nil
	}
	s.metrics.CacheMiss(string(variant))

	started := s.now()
	entries, err := build(ctx, yearNum)
	if err != nil {
		return View{}, err
	}
	s.metrics.ObserveCompute(string(variant), s.now().Sub(started))

	ttl := s.cfg.ttl(variant)
	storeCached(ctx, s, key, entries, ttl)
	return View{Year: yearNum, Variant: variant, Entries: entries, TTL: ttl}, nil
}

func (s *LeaderboardService) buildScores(ctx context.Context, yearNum int) ([]leaderboard.ScoreEntry, error) {
	board, joined, err := s.loadBoard(ctx, yearNum)
	if err != nil {
		return nil, err
	}
	entries := leaderboard.Scores(joined, board)
	return enrichProfiles(ctx, s, leaderboard.VariantScore, entries, func(e *leaderboard.ScoreEntry) *leaderboard.Participant {
		return &e.Participant
	}), nil
}

func (s *LeaderboardService) buildSplits(ctx context.Context, yearNum int) ([]leaderboard.SplitEntry, error) {
	board, joined, err := s.loadBoard(ctx, yearNum)
	if err != nil {
		return nil, err
	}
	entries := leaderboard.Splits(joined, board, s.now())
	return enrichProfiles(ctx, s, leaderboard.VariantSplits, entries, func(e *leaderboard.SplitEntry) *leaderboard.Participant {
		return &e.Participant
	}), nil
}

// buildLanguages does not need a configured year; it only reads participations.
func (s *LeaderboardService) buildLanguages(ctx context.Context, yearNum int) ([]leaderboard.LanguageEntry, error) {
	joined, err := s.participations.ListJoinedByYear(ctx, yearNum, true)
	if err != nil {
		return nil, fmt.Errorf("list participants with repositories: %w", err)
	}

	results := fanout.Map(ctx, s.pool, joined, func(ctx context.Context, j participation.Joined) (map[string]int, error) {
		return s.languages.GetLanguages(ctx, *j.RepoSlug)
	})
	byLocalID := make(map[string]map[string]int, len(joined))
	for i, res := range results {
		if res.Err != nil {
			s.metrics.EnrichmentDropped(string(leaderboard.VariantLanguages), "github")
			s.logger.WarnContext(ctx, "repository languages lookup failed, dropping participant",
				"local_id", joined[i].LocalID,
				"repo", *joined[i].RepoSlug,
				"error", res.Err,
			)
			continue
		}
		byLocalID[joined[i].LocalID] = res.Value
	}

	entries := leaderboard.Languages(joined, byLocalID)
	return enrichProfiles(ctx, s, leaderboard.VariantLanguages, entries, func(e *leaderboard.LanguageEntry) *leaderboard.Participant {
		return &e.Participant
	}), nil
}

func (s *LeaderboardService) loadBoard(ctx context.Context, yearNum int) (leaderboard.Board, []participation.Joined, error) {
	y, exists, err := s.years.GetByYear(ctx, yearNum)
	if err != nil {
		return leaderboard.Board{}, nil, fmt.Errorf("get year: %w", err)
	}
	if !exists {
		return leaderboard.Board{}, nil, fmt.Errorf("%w: year=%d", ErrNotFound, yearNum)
	}

	board, err := s.boards.GetLeaderboard(ctx, y.Year, y.BoardNumber())
	if err != nil {
		return leaderboard.Board{}, nil, fmt.Errorf("fetch puzzle leaderboard for %d: %w", yearNum, err)
	}

	joined, err := s.participations.ListJoinedByYear(ctx, yearNum, false)
	if err != nil {
		return leaderboard.Board{}, nil, fmt.Errorf("list participants: %w", err)
	}
	return board, joined, nil
}

// enrichProfiles fills display names and avatars in place of local ids.
// Entries whose profile cannot be resolved are dropped; order is kept.
func enrichProfiles[T any](
	ctx context.Context,
	s *LeaderboardService,
	variant leaderboard.Variant,
	entries []T,
	participantOf func(*T) *leaderboard.Participant,
) []T {
	results := fanout.Map(ctx, s.pool, entries, func(ctx context.Context, entry T) (user.Principal, error) {
		return s.profiles.GetProfileByID(ctx, participantOf(&entry).LocalID)
	})

	out := make([]T, 0, len(entries))
	for i, res := range results {
		entry := entries[i]
		p := participantOf(&entry)
		if res.Err != nil {
			s.metrics.EnrichmentDropped(string(variant), "gamma")
			s.logger.WarnContext(ctx, "profile lookup failed, dropping participant",
				"local_id", p.LocalID,
				"variant", string(variant),
				"error", res.Err,
			)
			continue
		}
		p.DisplayName = res.Value.DisplayName
		p.AvatarURL = res.Value.AvatarURL
		out = append(out, entry)
	}
	return out
}
