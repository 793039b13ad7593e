package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/aoc-leaderboard/internal/domain/user"
	"github.com/riskibarqy/aoc-leaderboard/internal/domain/year"
)

// OwnerPolicy decides who may manage years.
type OwnerPolicy struct {
	groups []string
}

func NewOwnerPolicy(groups []string) OwnerPolicy {
	out := make([]string, 0, len(groups))
	for _, g := range groups {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return OwnerPolicy{groups: out}
}

func (p OwnerPolicy) IsOwner(principal user.Principal) bool {
	return principal.InAnyGroup(p.groups)
}

type YearService struct {
	years  year.Repository
	owners OwnerPolicy
}

func NewYearService(years year.Repository, owners OwnerPolicy) *YearService {
	return &YearService{years: years, owners: owners}
}

func (s *YearService) List(ctx context.Context) ([]year.Year, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.YearService.List")
	defer span.End()

	items, err := s.years.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list years: %w", err)
	}
	return items, nil
}

func (s *YearService) Get(ctx context.Context, yearNum int) (year.Year, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.YearService.Get")
	defer span.End()

	item, exists, err := s.years.GetByYear(ctx, yearNum)
	if err != nil {
		return year.Year{}, fmt.Errorf("get year: %w", err)
	}
	if !exists {
		return year.Year{}, fmt.Errorf("%w: year=%d", ErrNotFound, yearNum)
	}
	return item, nil
}

func (s *YearService) Upsert(ctx context.Context, principal user.Principal, item year.Year) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.YearService.Upsert")
	defer span.End()

	if !s.owners.IsOwner(principal) {
		return fmt.Errorf("%w: %s may not manage years", ErrForbidden, principal.LocalID)
	}
	item.LeaderboardID = strings.TrimSpace(item.LeaderboardID)
	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.years.Upsert(ctx, item); err != nil {
		return fmt.Errorf("upsert year: %w", err)
	}
	return nil
}

func (s *YearService) Delete(ctx context.Context, principal user.Principal, yearNum int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.YearService.Delete")
	defer span.End()

	if !s.owners.IsOwner(principal) {
		return fmt.Errorf("%w: %s may not manage years", ErrForbidden, principal.LocalID)
	}

	removed, err := s.years.Delete(ctx, yearNum)
	if err != nil {
		return fmt.Errorf("delete year: %w", err)
	}
	if !removed {
		return fmt.Errorf("%w: year=%d", ErrNotFound, yearNum)
	}
	return nil
}
