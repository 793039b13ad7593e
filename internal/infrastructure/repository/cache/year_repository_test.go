package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/aoc-leaderboard/internal/domain/year"
	"github.com/riskibarqy/aoc-leaderboard/internal/infrastructure/repository/memory"
	basecache "github.com/riskibarqy/aoc-leaderboard/internal/platform/cache"
	"github.com/riskibarqy/aoc-leaderboard/internal/platform/logging"
)

type countingYears struct {
	year.Repository
	gets int
}

func (c *countingYears) GetByYear(ctx context.Context, y int) (year.Year, bool, error) {
	c.gets++
	return c.Repository.GetByYear(ctx, y)
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, time.Duration, bool, error) {
	return nil, 0, false, errors.New("connection refused")
}
func (brokenStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("connection refused")
}
func (brokenStore) Delete(context.Context, string) error { return errors.New("connection refused") }

func TestYearRepository_ServesRepeatLookupsFromStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := &countingYears{Repository: memory.NewYearRepository([]year.Year{{Year: 2023, LeaderboardID: "1-a"}})}
	repo := NewYearRepository(next, basecache.NewMemoryStore(), time.Minute, logging.NewNop())

	for i := 0; i < 3; i++ {
		got, ok, err := repo.GetByYear(ctx, 2023)
		if err != nil || !ok || got.LeaderboardID != "1-a" {
			t.Fatalf("unexpected lookup: %+v ok=%v err=%v", got, ok, err)
		}
	}
	if next.gets != 1 {
		t.Fatalf("expected one backing lookup, got %d", next.gets)
	}
}

func TestYearRepository_UpsertInvalidates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := &countingYears{Repository: memory.NewYearRepository([]year.Year{{Year: 2023, LeaderboardID: "1-a"}})}
	repo := NewYearRepository(next, basecache.NewMemoryStore(), time.Minute, logging.NewNop())

	if _, _, err := repo.GetByYear(ctx, 2023); err != nil {
		t.Fatalf("prime: %v", err)
	}
	if err := repo.Upsert(ctx, year.Year{Year: 2023, LeaderboardID: "2-b"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, _, _ := repo.GetByYear(ctx, 2023)
	if got.LeaderboardID != "2-b" {
		t.Fatalf("expected fresh leaderboard after upsert, got %q", got.LeaderboardID)
	}

	if removed, err := repo.Delete(ctx, 2023); err != nil || !removed {
		t.Fatalf("delete: %v %v", removed, err)
	}
	if _, ok, _ := repo.GetByYear(ctx, 2023); ok {
		t.Fatalf("expected deleted year to be absent")
	}
}

func TestYearRepository_MissesAreNotCached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := &countingYears{Repository: memory.NewYearRepository(nil)}
	repo := NewYearRepository(next, basecache.NewMemoryStore(), time.Minute, logging.NewNop())

	repo.GetByYear(ctx, 1999)
	repo.GetByYear(ctx, 1999)
	if next.gets != 2 {
		t.Fatalf("expected unknown years to hit the backing repository each time, got %d", next.gets)
	}
}

func TestYearRepository_StoreFailureFallsThrough(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := memory.NewYearRepository([]year.Year{{Year: 2023, LeaderboardID: "1-a"}})
	repo := NewYearRepository(next, brokenStore{}, time.Minute, logging.NewNop())

	got, ok, err := repo.GetByYear(ctx, 2023)
	if err != nil || !ok || got.LeaderboardID != "1-a" {
		t.Fatalf("expected fallback to backing repository: %+v ok=%v err=%v", got, ok, err)
	}
	if err := repo.Upsert(ctx, year.Year{Year: 2024, LeaderboardID: "3-c"}); err != nil {
		t.Fatalf("invalidate failures must not fail writes: %v", err)
	}
}
