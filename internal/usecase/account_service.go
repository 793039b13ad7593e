package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/aoc-leaderboard/internal/domain/participation"
	"github.com/riskibarqy/aoc-leaderboard/internal/domain/user"
	"github.com/riskibarqy/aoc-leaderboard/internal/domain/year"
)

// Settings is what the settings page needs about the caller. The current
// year is the latest configured one.
type Settings struct {
	PuzzleID        *string
	CurrentYear     *int
	RepoSlug        *string
	IsParticipating bool
	IsOwner         bool
	// Years is only filled for owners.
	Years []year.Year
}

type AccountService struct {
	users          user.Repository
	participations participation.Repository
	years          year.Repository
	owners         OwnerPolicy
}

func NewAccountService(
	users user.Repository,
	participations participation.Repository,
	years year.Repository,
	owners OwnerPolicy,
) *AccountService {
	return &AccountService{
		users:          users,
		participations: participations,
		years:          years,
		owners:         owners,
	}
}

func (s *AccountService) GetPuzzleID(ctx context.Context, localID string) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.GetPuzzleID")
	defer span.End()

	u, exists, err := s.users.GetByLocalID(ctx, localID)
	if err != nil {
		return "", fmt.Errorf("get user: %w", err)
	}
	if !exists {
		return "", fmt.Errorf("%w: no puzzle id for %s", ErrNotFound, localID)
	}
	return u.PuzzleID, nil
}

func (s *AccountService) SetPuzzleID(ctx context.Context, localID, puzzleID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.SetPuzzleID")
	defer span.End()

	u := user.User{LocalID: localID, PuzzleID: strings.TrimSpace(puzzleID)}
	if err := u.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.users.Upsert(ctx, u); err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

func (s *AccountService) Settings(ctx context.Context, principal user.Principal) (Settings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountService.Settings")
	defer span.End()

	out := Settings{IsOwner: s.owners.IsOwner(principal)}

	u, exists, err := s.users.GetByLocalID(ctx, principal.LocalID)
	if err != nil {
		return Settings{}, fmt.Errorf("get user: %w", err)
	}
	if exists {
		puzzleID := u.PuzzleID
		out.PuzzleID = &puzzleID
	}

	years, err := s.years.List(ctx)
	if err != nil {
		return Settings{}, fmt.Errorf("list years: %w", err)
	}
	if out.IsOwner {
		out.Years = years
	}

	current, ok := latestYear(years)
	if !ok {
		return out, nil
	}
	out.CurrentYear = &current

	items, err := s.participations.ListByLocalID(ctx, principal.LocalID)
	if err != nil {
		return Settings{}, fmt.Errorf("list participations: %w", err)
	}
	for _, p := range items {
		if p.Year == current {
			out.IsParticipating = true
			out.RepoSlug = p.RepoSlug
			break
		}
	}
	return out, nil
}

func latestYear(years []year.Year) (int, bool) {
	if len(years) == 0 {
		return 0, false
	}
	latest := years[0].Year
	for _, y := range years[1:] {
		if y.Year > latest {
			latest = y.Year
		}
	}
	return latest, true
}
