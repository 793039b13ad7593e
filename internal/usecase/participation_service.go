package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/aoc-leaderboard/internal/domain/participation"
	"github.com/riskibarqy/aoc-leaderboard/internal/domain/year"
)

type ParticipationService struct {
	participations participation.Repository
	years          year.Repository
}

func NewParticipationService(participations participation.Repository, years year.Repository) *ParticipationService {
	return &ParticipationService{participations: participations, years: years}
}

func (s *ParticipationService) List(ctx context.Context, localID string) ([]participation.Participation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ParticipationService.List")
	defer span.End()

	items, err := s.participations.ListByLocalID(ctx, localID)
	if err != nil {
		return nil, fmt.Errorf("list participations: %w", err)
	}
	return items, nil
}

// Join opts the caller into a configured year. Joining again replaces the repository slug.
func (s *ParticipationService) Join(ctx context.Context, item participation.Participation) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ParticipationService.Join")
	defer span.End()

	if item.RepoSlug != nil {
		slug := strings.TrimSpace(*item.RepoSlug)
		if slug == "" {
			item.RepoSlug = nil
		} else {
			item.RepoSlug = &slug
		}
	}
	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	_, exists, err := s.years.GetByYear(ctx, item.Year)
	if err != nil {
		return fmt.Errorf("get year: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: year=%d", ErrNotFound, item.Year)
	}

	if err := s.participations.Upsert(ctx, item); err != nil {
		return fmt.Errorf("upsert participation: %w", err)
	}
	return nil
}

func (s *ParticipationService) Leave(ctx context.Context, localID string, yearNum int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ParticipationService.Leave")
	defer span.End()

	removed, err := s.participations.Delete(ctx, localID, yearNum)
	if err != nil {
		return fmt.Errorf("delete participation: %w", err)
	}
	if !removed {
		return fmt.Errorf("%w: participation=%s/%d", ErrNotFound, localID, yearNum)
	}
	return nil
}
