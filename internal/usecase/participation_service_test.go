package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/aoc-leaderboard/internal/domain/participation"
	"github.com/riskibarqy/aoc-leaderboard/internal/domain/year"
	participationmock "github.com/riskibarqy/aoc-leaderboard/internal/mocks/domain/participation"
	yearmock "github.com/riskibarqy/aoc-leaderboard/internal/mocks/domain/year"
)

func TestParticipationService_JoinNormalizesEmptyRepo(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := participationmock.NewRepository(t)
	years := yearmock.NewRepository(t)
	service := NewParticipationService(repo, years)

	years.On("GetByYear", mock.Anything, 2023).Return(year.Year{Year: 2023, LeaderboardID: "1-a"}, true, nil).Once()
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(p participation.Participation) bool {
		return p.LocalID == "ada" && p.Year == 2023 && p.RepoSlug == nil
	})).Return(nil).Once()

	blank := "   "
	if err := service.Join(ctx, participation.Participation{LocalID: "ada", Year: 2023, RepoSlug: &blank}); err != nil {
		t.Fatalf("join: %v", err)
	}
}

func TestParticipationService_JoinRejectsBadRepoAndUnknownYear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := participationmock.NewRepository(t)
	years := yearmock.NewRepository(t)
	service := NewParticipationService(repo, years)

	bad := "not a slug"
	if err := service.Join(ctx, participation.Participation{LocalID: "ada", Year: 2023, RepoSlug: &bad}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	years.On("GetByYear", mock.Anything, 1990).Return(year.Year{}, false, nil).Once()
	if err := service.Join(ctx, participation.Participation{LocalID: "ada", Year: 1990}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestParticipationService_Leave(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := participationmock.NewRepository(t)
	service := NewParticipationService(repo, yearmock.NewRepository(t))

	repo.On("Delete", mock.Anything, "ada", 2023).Return(true, nil).Once()
	repo.On("Delete", mock.Anything, "ada", 2022).Return(false, nil).Once()

	if err := service.Leave(ctx, "ada", 2023); err != nil {
		t.Fatalf("leave: %v", err)
	}
	if err := service.Leave(ctx, "ada", 2022); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound when nothing was deleted, got %v", err)
	}
}
