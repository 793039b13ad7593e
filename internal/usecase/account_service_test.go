package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/aoc-leaderboard/internal/domain/participation"
	"github.com/riskibarqy/aoc-leaderboard/internal/domain/user"
	"github.com/riskibarqy/aoc-leaderboard/internal/domain/year"
	participationmock "github.com/riskibarqy/aoc-leaderboard/internal/mocks/domain/participation"
	usermock "github.com/riskibarqy/aoc-leaderboard/internal/mocks/domain/user"
	yearmock "github.com/riskibarqy/aoc-leaderboard/internal/mocks/domain/year"
)

func newAccountFixture(t *testing.T) (*AccountService, *usermock.Repository, *participationmock.Repository, *yearmock.Repository) {
	t.Helper()

	users := usermock.NewRepository(t)
	participations := participationmock.NewRepository(t)
	years := yearmock.NewRepository(t)
	return NewAccountService(users, participations, years, NewOwnerPolicy([]string{"digit"})), users, participations, years
}

func TestAccountService_PuzzleID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, users, _, _ := newAccountFixture(t)

	users.On("GetByLocalID", mock.Anything, "ada").Return(user.User{}, false, nil).Once()
	if _, err := service.GetPuzzleID(ctx, "ada"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	users.On("Upsert", mock.Anything, user.User{LocalID: "ada", PuzzleID: "42"}).Return(nil).Once()
	if err := service.SetPuzzleID(ctx, "ada", " 42 "); err != nil {
		t.Fatalf("set puzzle id: %v", err)
	}
	if err := service.SetPuzzleID(ctx, "ada", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty puzzle id, got %v", err)
	}
}

func TestAccountService_SettingsForOwner(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, users, participations, years := newAccountFixture(t)
	repo := "root/aoc"

	users.On("GetByLocalID", mock.Anything, "root").Return(user.User{LocalID: "root", PuzzleID: "7"}, true, nil).Once()
	years.On("List", mock.Anything).Return([]year.Year{{Year: 2022, LeaderboardID: "1-a"}, {Year: 2023, LeaderboardID: "2-b"}}, nil).Once()
	participations.On("ListByLocalID", mock.Anything, "root").Return([]participation.Participation{
		{LocalID: "root", Year: 2022},
		{LocalID: "root", Year: 2023, RepoSlug: &repo},
	}, nil).Once()

	got, err := service.Settings(ctx, owner)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if got.PuzzleID == nil || *got.PuzzleID != "7" {
		t.Fatalf("unexpected puzzle id %v", got.PuzzleID)
	}
	if got.CurrentYear == nil || *got.CurrentYear != 2023 || !got.IsParticipating || got.RepoSlug == nil || *got.RepoSlug != repo {
		t.Fatalf("unexpected current-year participation: %+v", got)
	}
	if !got.IsOwner || len(got.Years) != 2 {
		t.Fatalf("expected owner context with years, got %+v", got)
	}
}

func TestAccountService_SettingsForMemberWithoutYears(t *testing.T) {
	t.Parallel()

	service, users, _, years := newAccountFixture(t)

	users.On("GetByLocalID", mock.Anything, "ada").Return(user.User{}, false, nil).Once()
	years.On("List", mock.Anything).Return(nil, nil).Once()

	got, err := service.Settings(context.Background(), member)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if got.IsOwner || got.Years != nil || got.PuzzleID != nil || got.CurrentYear != nil || got.IsParticipating {
		t.Fatalf("expected empty member settings, got %+v", got)
	}
}
