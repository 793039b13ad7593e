package memory

import (
	"context"
	"testing"

	"github.com/riskibarqy/aoc-leaderboard/internal/domain/participation"
	"github.com/riskibarqy/aoc-leaderboard/internal/domain/user"
	"github.com/riskibarqy/aoc-leaderboard/internal/domain/year"
)

func strPtr(s string) *string { return &s }

func TestYearRepository_CRUD(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewYearRepository([]year.Year{{Year: 2023, LeaderboardID: "1-a"}, {Year: 2021, LeaderboardID: "2-b"}})

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 || items[0].Year != 2021 || items[1].Year != 2023 {
		t.Fatalf("expected years sorted ascending, got %+v", items)
	}

	if err := repo.Upsert(ctx, year.Year{Year: 2023, LeaderboardID: "9-z"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, ok, err := repo.GetByYear(ctx, 2023)
	if err != nil || !ok || got.LeaderboardID != "9-z" {
		t.Fatalf("unexpected year after upsert: %+v ok=%v err=%v", got, ok, err)
	}

	removed, err := repo.Delete(ctx, 2023)
	if err != nil || !removed {
		t.Fatalf("expected removal, got %v (%v)", removed, err)
	}
	removed, err = repo.Delete(ctx, 2023)
	if err != nil || removed {
		t.Fatalf("second delete must report nothing removed, got %v (%v)", removed, err)
	}
	if _, ok, _ := repo.GetByYear(ctx, 2023); ok {
		t.Fatalf("expected 2023 to be gone")
	}
}

func TestParticipationRepository_ListJoinedByYear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	users := NewUserRepository([]user.User{
		{LocalID: "carol", PuzzleID: "3"},
		{LocalID: "alice", PuzzleID: "1"},
		{LocalID: "bob", PuzzleID: "2"},
	})
	repo := NewParticipationRepository(users, []participation.Participation{
		{LocalID: "carol", Year: 2023, RepoSlug: strPtr("carol/aoc")},
		{LocalID: "alice", Year: 2023},
		{LocalID: "bob", Year: 2023, RepoSlug: strPtr("")},
		{LocalID: "dave", Year: 2023, RepoSlug: strPtr("dave/aoc")},
		{LocalID: "alice", Year: 2022, RepoSlug: strPtr("alice/old")},
	})

	joined, err := repo.ListJoinedByYear(ctx, 2023, false)
	if err != nil {
		t.Fatalf("list joined: %v", err)
	}
	if len(joined) != 3 {
		t.Fatalf("expected participants without a user row to be excluded, got %+v", joined)
	}
	if joined[0].LocalID != "alice" || joined[1].LocalID != "bob" || joined[2].LocalID != "carol" {
		t.Fatalf("expected ordering by local id, got %+v", joined)
	}
	if joined[2].PuzzleID != "3" {
		t.Fatalf("expected puzzle id from user row, got %+v", joined[2])
	}

	withRepo, err := repo.ListJoinedByYear(ctx, 2023, true)
	if err != nil {
		t.Fatalf("list joined with repo: %v", err)
	}
	if len(withRepo) != 1 || withRepo[0].LocalID != "carol" {
		t.Fatalf("expected only carol to have a repository, got %+v", withRepo)
	}
}

func TestParticipationRepository_UpsertAndDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewParticipationRepository(NewUserRepository(nil), nil)

	slug := "ada/aoc"
	if err := repo.Upsert(ctx, participation.Participation{LocalID: "ada", Year: 2023, RepoSlug: &slug}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	slug = "mutated/after"

	items, err := repo.ListByLocalID(ctx, "ada")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || *items[0].RepoSlug != "ada/aoc" {
		t.Fatalf("expected stored copy to be isolated, got %+v", items)
	}

	removed, err := repo.Delete(ctx, "ada", 2023)
	if err != nil || !removed {
		t.Fatalf("expected removal, got %v (%v)", removed, err)
	}
	if removed, _ := repo.Delete(ctx, "ada", 2023); removed {
		t.Fatalf("expected second delete to be a no-op")
	}
}
