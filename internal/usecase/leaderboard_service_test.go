package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/aoc-leaderboard/internal/domain/leaderboard"
	"github.com/riskibarqy/aoc-leaderboard/internal/domain/participation"
	"github.com/riskibarqy/aoc-leaderboard/internal/domain/user"
	"github.com/riskibarqy/aoc-leaderboard/internal/domain/year"
	participationmock "github.com/riskibarqy/aoc-leaderboard/internal/mocks/domain/participation"
	yearmock "github.com/riskibarqy/aoc-leaderboard/internal/mocks/domain/year"
	usecasemock "github.com/riskibarqy/aoc-leaderboard/internal/mocks/usecase"
	"github.com/riskibarqy/aoc-leaderboard/internal/platform/cache"
	"github.com/riskibarqy/aoc-leaderboard/internal/platform/logging"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type recordingMetrics struct {
	mu    sync.Mutex
	hits  int
	miss  int
	errs  map[string]int
	drops map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{errs: map[string]int{}, drops: map[string]int{}}
}

func (m *recordingMetrics) CacheHit(string) {
	m.mu.Lock()
	m.hits++
	m.mu.Unlock()
}

func (m *recordingMetrics) CacheMiss(string) {
	m.mu.Lock()
	m.miss++
	m.mu.Unlock()
}

func (m *recordingMetrics) CacheError(op string) {
	m.mu.Lock()
	m.errs[op]++
	m.mu.Unlock()
}

func (m *recordingMetrics) ObserveCompute(string, time.Duration) {}

func (m *recordingMetrics) EnrichmentDropped(_, source string) {
	m.mu.Lock()
	m.drops[source]++
	m.mu.Unlock()
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, time.Duration, bool, error) {
	return nil, 0, false, errors.New("dial tcp: connection refused")
}

func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("dial tcp: connection refused")
}

func (failingStore) Delete(context.Context, string) error { return nil }

type leaderboardFixture struct {
	years          *yearmock.Repository
	participations *participationmock.Repository
	boards         *usecasemock.BoardSource
	profiles       *usecasemock.ProfileSource
	languages      *usecasemock.LanguageSource
	store          cache.Store
	metrics        *recordingMetrics
	clock          *testClock
	service        *LeaderboardService
}

func newLeaderboardFixture(t *testing.T, store cache.Store, clock *testClock) *leaderboardFixture {
	t.Helper()

	if clock == nil {
		clock = &testClock{now: time.Date(2023, 12, 10, 12, 0, 0, 0, time.UTC)}
	}
	if store == nil {
		store = cache.NewMemoryStoreWithClock(clock.Now)
	}

	f := &leaderboardFixture{
		years:          yearmock.NewRepository(t),
		participations: participationmock.NewRepository(t),
		boards:         usecasemock.NewBoardSource(t),
		profiles:       usecasemock.NewProfileSource(t),
		languages:      usecasemock.NewLanguageSource(t),
		store:          store,
		metrics:        newRecordingMetrics(),
		clock:          clock,
	}
	f.service = NewLeaderboardService(LeaderboardDeps{
		Years:          f.years,
		Participations: f.participations,
		Store:          f.store,
		Boards:         f.boards,
		Profiles:       f.profiles,
		Languages:      f.languages,
		Metrics:        f.metrics,
		Logger:         logging.NewNop(),
	}, LeaderboardConfig{ScoreTTL: 60 * time.Second, SplitsTTL: 30 * time.Second, LanguageTTL: 120 * time.Second})
	f.service.now = clock.Now
	return f
}

func (f *leaderboardFixture) expectProfiles(ids ...string) {
	for _, id := range ids {
		f.profiles.
			On("GetProfileByID", mock.Anything, id).
			Return(user.Principal{LocalID: id, DisplayName: "nick-" + id, AvatarURL: "https://img/" + id}, nil)
	}
}

func joinedRows(ids ...string) []participation.Joined {
	out := make([]participation.Joined, 0, len(ids))
	for _, id := range ids {
		out = append(out, participation.Joined{LocalID: id, PuzzleID: "aoc-" + id})
	}
	return out
}

func ts(t time.Time) *time.Time { return &t }

func TestLeaderboardService_ScoresRankAndSkipAbsentMembers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newLeaderboardFixture(t, nil, nil)

	f.years.On("GetByYear", mock.Anything, 2023).Return(year.Year{Year: 2023, LeaderboardID: "123-abc"}, true, nil).Once()
	f.boards.On("GetLeaderboard", mock.Anything, 2023, "123").Return(leaderboard.Board{Members: map[string]leaderboard.Member{
		"aoc-p1": {ID: "aoc-p1", LocalScore: 50},
		"aoc-p3": {ID: "aoc-p3", LocalScore: 80},
	}}, nil).Once()
	f.participations.On("ListJoinedByYear", mock.Anything, 2023, false).Return(joinedRows("p1", "p2", "p3"), nil).Once()
	f.expectProfiles("p1", "p3")

	view, err := f.service.GetLeaderboard(ctx, 2023, leaderboard.VariantScore)
	if err != nil {
		t.Fatalf("get leaderboard: %v", err)
	}
	entries := view.Entries.([]leaderboard.ScoreEntry)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %+v", entries)
	}
	if entries[0].LocalID != "p3" || entries[0].Score != 80 || entries[1].LocalID != "p1" || entries[1].Score != 50 {
		t.Fatalf("unexpected ranking: %+v", entries)
	}
	if entries[0].DisplayName != "nick-p3" || entries[0].AvatarURL != "https://img/p3" {
		t.Fatalf("expected enriched profile, got %+v", entries[0].Participant)
	}
	if view.TTL != 60*time.Second || view.Cached {
		t.Fatalf("expected fresh view with full ttl, got ttl=%s cached=%v", view.TTL, view.Cached)
	}

	f.clock.Advance(15 * time.Second)
	again, err := f.service.GetLeaderboard(ctx, 2023, leaderboard.VariantScore)
	if err != nil {
		t.Fatalf("get cached leaderboard: %v", err)
	}
	if !again.Cached || again.TTL != 45*time.Second {
		t.Fatalf("expected cache hit with remaining ttl 45s, got cached=%v ttl=%s", again.Cached, again.TTL)
	}
	cached := again.Entries.([]leaderboard.ScoreEntry)
	if len(cached) != 2 || cached[0].LocalID != "p3" || cached[0].DisplayName != "nick-p3" {
		t.Fatalf("cached view differs from computed view: %+v", cached)
	}
	if f.metrics.hits != 1 || f.metrics.miss != 1 {
		t.Fatalf("expected 1 hit and 1 miss, got %d/%d", f.metrics.hits, f.metrics.miss)
	}
}

func TestLeaderboardService_ExpiredEntryIsRecomputed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newLeaderboardFixture(t, nil, nil)

	f.years.On("GetByYear", mock.Anything, 2023).Return(year.Year{Year: 2023, LeaderboardID: "123-abc"}, true, nil).Twice()
	f.boards.On("GetLeaderboard", mock.Anything, 2023, "123").Return(leaderboard.Board{Members: map[string]leaderboard.Member{
		"aoc-p1": {LocalScore: 10},
	}}, nil).Twice()
	f.participations.On("ListJoinedByYear", mock.Anything, 2023, false).Return(joinedRows("p1"), nil).Twice()
	f.expectProfiles("p1")

	if _, err := f.service.GetLeaderboard(ctx, 2023, leaderboard.VariantScore); err != nil {
		t.Fatalf("first call: %v", err)
	}
	f.clock.Advance(61 * time.Second)
	view, err := f.service.GetLeaderboard(ctx, 2023, leaderboard.VariantScore)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if view.Cached {
		t.Fatalf("expected recompute after ttl elapsed")
	}
}

func TestLeaderboardService_FailedProfileDropsOnlyThatParticipant(t *testing.T) {
	t.Parallel()

	f := newLeaderboardFixture(t, nil, nil)

	f.years.On("GetByYear", mock.Anything, 2023).Return(year.Year{Year: 2023, LeaderboardID: "123-abc"}, true, nil)
	f.boards.On("GetLeaderboard", mock.Anything, 2023, "123").Return(leaderboard.Board{Members: map[string]leaderboard.Member{
		"aoc-p1": {LocalScore: 50},
		"aoc-p2": {LocalScore: 40},
		"aoc-p3": {LocalScore: 80},
	}}, nil)
	f.participations.On("ListJoinedByYear", mock.Anything, 2023, false).Return(joinedRows("p1", "p2", "p3"), nil)
	f.expectProfiles("p1", "p3")
	f.profiles.On("GetProfileByID", mock.Anything, "p2").Return(user.Principal{}, ErrDependencyUnavailable)

	view, err := f.service.GetLeaderboard(context.Background(), 2023, leaderboard.VariantScore)
	if err != nil {
		t.Fatalf("enrichment failures must not fail the request: %v", err)
	}
	entries := view.Entries.([]leaderboard.ScoreEntry)
	if len(entries) != 2 || entries[0].LocalID != "p3" || entries[1].LocalID != "p1" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	if f.metrics.drops["gamma"] != 1 {
		t.Fatalf("expected one gamma drop, got %v", f.metrics.drops)
	}
}

func TestLeaderboardService_UnknownYearIsNotFound(t *testing.T) {
	t.Parallel()

	f := newLeaderboardFixture(t, nil, nil)
	f.years.On("GetByYear", mock.Anything, 1999).Return(year.Year{}, false, nil).Once()

	_, err := f.service.GetLeaderboard(context.Background(), 1999, leaderboard.VariantSplits)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLeaderboardService_UpstreamFailureIsNotCached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newLeaderboardFixture(t, nil, nil)
	f.years.On("GetByYear", mock.Anything, 2023).Return(year.Year{Year: 2023, LeaderboardID: "123-abc"}, true, nil)
	f.boards.On("GetLeaderboard", mock.Anything, 2023, "123").
		Return(leaderboard.Board{}, errors.Join(ErrDependencyUnavailable, errors.New("status 502"))).
		Twice()

	for i := 0; i < 2; i++ {
		if _, err := f.service.GetLeaderboard(ctx, 2023, leaderboard.VariantScore); !errors.Is(err, ErrDependencyUnavailable) {
			t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
		}
	}
}

func TestLeaderboardService_SplitsOrderAndDefaults(t *testing.T) {
	t.Parallel()

	f := newLeaderboardFixture(t, nil, nil)
	now := f.clock.Now()
	day1 := now.Add(-48 * time.Hour)

	f.years.On("GetByYear", mock.Anything, 2023).Return(year.Year{Year: 2023, LeaderboardID: "123-abc"}, true, nil)
	f.boards.On("GetLeaderboard", mock.Anything, 2023, "123").Return(leaderboard.Board{Members: map[string]leaderboard.Member{
		"aoc-p1": {Days: map[int]leaderboard.DayProgress{
			1: {FirstStarAt: ts(day1), SecondStarAt: ts(day1.Add(time.Hour))},
		}},
		"aoc-p2": {Days: map[int]leaderboard.DayProgress{
			2: {FirstStarAt: ts(now.Add(-2 * time.Hour))},
		}},
		"aoc-p3": {Days: map[int]leaderboard.DayProgress{}},
	}}, nil)
	f.participations.On("ListJoinedByYear", mock.Anything, 2023, false).Return(joinedRows("p3", "p2", "p1"), nil)
	f.expectProfiles("p1", "p2", "p3")

	view, err := f.service.GetLeaderboard(context.Background(), 2023, leaderboard.VariantSplits)
	if err != nil {
		t.Fatalf("get splits: %v", err)
	}
	entries := view.Entries.([]leaderboard.SplitEntry)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %+v", entries)
	}
	want := []struct {
		id      string
		seconds int64
	}{{"p1", 3600}, {"p2", 7200}, {"p3", 86400}}
	for i, w := range want {
		if entries[i].LocalID != w.id || entries[i].SplitSeconds != w.seconds {
			t.Fatalf("entry %d: want %s/%d, got %s/%d", i, w.id, w.seconds, entries[i].LocalID, entries[i].SplitSeconds)
		}
	}
	if view.TTL != 30*time.Second {
		t.Fatalf("expected splits ttl 30s, got %s", view.TTL)
	}
}

func TestLeaderboardService_LanguagesSkipYearLookup(t *testing.T) {
	t.Parallel()

	f := newLeaderboardFixture(t, nil, nil)
	slug := func(s string) *string { return &s }

	f.participations.On("ListJoinedByYear", mock.Anything, 2024, true).Return([]participation.Joined{
		{LocalID: "p1", PuzzleID: "1", RepoSlug: slug("p1/aoc")},
		{LocalID: "p2", PuzzleID: "2", RepoSlug: slug("p2/aoc")},
		{LocalID: "p3", PuzzleID: "3", RepoSlug: slug("p3/aoc")},
	}, nil).Once()
	f.languages.On("GetLanguages", mock.Anything, "p1/aoc").Return(map[string]int{"Go": 1}, nil)
	f.languages.On("GetLanguages", mock.Anything, "p2/aoc").Return(map[string]int{"Go": 500, "Rust": 200}, nil)
	f.languages.On("GetLanguages", mock.Anything, "p3/aoc").Return(nil, ErrNotFound)
	f.expectProfiles("p1", "p2")

	view, err := f.service.GetLeaderboard(context.Background(), 2024, leaderboard.VariantLanguages)
	if err != nil {
		t.Fatalf("get languages: %v", err)
	}
	entries := view.Entries.([]leaderboard.LanguageEntry)
	if len(entries) != 2 {
		t.Fatalf("expected failed repository lookup to drop p3, got %+v", entries)
	}
	if entries[0].LocalID != "p2" || entries[0].LanguageCount != 2 || entries[0].Languages[0] != "Go" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].LocalID != "p1" || entries[1].LanguageCount != 1 {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
	if f.metrics.drops["github"] != 1 {
		t.Fatalf("expected one github drop, got %v", f.metrics.drops)
	}
}

func TestLeaderboardService_UndecodablePayloadIsMiss(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newLeaderboardFixture(t, nil, nil)
	if err := f.store.Set(ctx, "leaderboard_2023", []byte("not json"), time.Minute); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	f.years.On("GetByYear", mock.Anything, 2023).Return(year.Year{Year: 2023, LeaderboardID: "123-abc"}, true, nil).Once()
	f.boards.On("GetLeaderboard", mock.Anything, 2023, "123").Return(leaderboard.Board{Members: map[string]leaderboard.Member{}}, nil).Once()
	f.participations.On("ListJoinedByYear", mock.Anything, 2023, false).Return(nil, nil).Once()

	view, err := f.service.GetLeaderboard(ctx, 2023, leaderboard.VariantScore)
	if err != nil {
		t.Fatalf("get leaderboard: %v", err)
	}
	if view.Cached {
		t.Fatalf("expected corrupt payload to be treated as miss")
	}
	if f.metrics.errs["decode"] != 1 {
		t.Fatalf("expected a decode error metric, got %v", f.metrics.errs)
	}

	again, err := f.service.GetLeaderboard(ctx, 2023, leaderboard.VariantScore)
	if err != nil || !again.Cached {
		t.Fatalf("expected recomputed payload to overwrite corrupt entry, cached=%v err=%v", again.Cached, err)
	}
	if entries := again.Entries.([]leaderboard.ScoreEntry); entries == nil || len(entries) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", entries)
	}
}

func TestLeaderboardService_CacheOutageDegradesToCompute(t *testing.T) {
	t.Parallel()

	f := newLeaderboardFixture(t, failingStore{}, nil)
	f.years.On("GetByYear", mock.Anything, 2023).Return(year.Year{Year: 2023, LeaderboardID: "123-abc"}, true, nil)
	f.boards.On("GetLeaderboard", mock.Anything, 2023, "123").Return(leaderboard.Board{Members: map[string]leaderboard.Member{
		"aoc-p1": {LocalScore: 3},
	}}, nil)
	f.participations.On("ListJoinedByYear", mock.Anything, 2023, false).Return(joinedRows("p1"), nil)
	f.expectProfiles("p1")

	view, err := f.service.GetLeaderboard(context.Background(), 2023, leaderboard.VariantScore)
	if err != nil {
		t.Fatalf("cache failures must not fail the request: %v", err)
	}
	if len(view.Entries.([]leaderboard.ScoreEntry)) != 1 {
		t.Fatalf("unexpected entries: %+v", view.Entries)
	}
	if f.metrics.errs["get"] != 1 || f.metrics.errs["set"] != 1 {
		t.Fatalf("expected get and set errors recorded, got %v", f.metrics.errs)
	}
}

func TestLeaderboardService_RejectsBadInput(t *testing.T) {
	t.Parallel()

	f := newLeaderboardFixture(t, nil, nil)
	if _, err := f.service.GetLeaderboard(context.Background(), 2023, leaderboard.Variant("weekly")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown variant, got %v", err)
	}
	if _, err := f.service.GetLeaderboard(context.Background(), 0, leaderboard.VariantScore); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for year 0, got %v", err)
	}
}
