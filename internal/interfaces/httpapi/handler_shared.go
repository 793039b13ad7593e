package httpapi

import (
	"github.com/riskibarqy/aoc-leaderboard/internal/domain/participation"
	"github.com/riskibarqy/aoc-leaderboard/internal/domain/year"
	"github.com/riskibarqy/aoc-leaderboard/internal/usecase"
)

type upsertYearRequest struct {
	Year        int    `json:"year" validate:"required,gt=0"`
	Leaderboard string `json:"leaderboard" validate:"required,leaderboard_id"`
}

type setAoCIDRequest struct {
	AoCID string `json:"aocId" validate:"required,max=64"`
}

type joinRequest struct {
	Year   int     `json:"year" validate:"required,gt=0"`
	GitHub *string `json:"github" validate:"omitempty,repo_slug"`
}

type leaderboardDTO struct {
	Year       int    `json:"year"`
	Variant    string `json:"variant"`
	TTLSeconds int    `json:"ttlSeconds"`
	Cached     bool   `json:"cached"`
	Entries    any    `json:"entries"`
}

type yearDTO struct {
	Year        int    `json:"year"`
	Leaderboard string `json:"leaderboard"`
}

type aocIDDTO struct {
	AoCID string `json:"aocId"`
}

type participationDTO struct {
	Year   int     `json:"year"`
	GitHub *string `json:"github,omitempty"`
}

type ownerDTO struct {
	Years []yearDTO `json:"years"`
}

type settingsDTO struct {
	CurrentNick     string    `json:"currentNick"`
	AoCID           *string   `json:"aocId"`
	GitHub          *string   `json:"github"`
	Year            *int      `json:"year"`
	IsParticipating bool      `json:"isParticipating"`
	Owner           *ownerDTO `json:"owner,omitempty"`
}

func yearToDTO(y year.Year) yearDTO {
	return yearDTO{Year: y.Year, Leaderboard: y.LeaderboardID}
}

func yearsToDTO(items []year.Year) []yearDTO {
	out := make([]yearDTO, 0, len(items))
	for _, y := range items {
		out = append(out, yearToDTO(y))
	}
	return out
}

func participationsToDTO(items []participation.Participation) []participationDTO {
	out := make([]participationDTO, 0, len(items))
	for _, p := range items {
		out = append(out, participationDTO{Year: p.Year, GitHub: p.RepoSlug})
	}
	return out
}

func settingsToDTO(nick string, s usecase.Settings) settingsDTO {
	out := settingsDTO{
		CurrentNick:     nick,
		AoCID:           s.PuzzleID,
		GitHub:          s.RepoSlug,
		Year:            s.CurrentYear,
		IsParticipating: s.IsParticipating,
	}
	if s.IsOwner {
		out.Owner = &ownerDTO{Years: yearsToDTO(s.Years)}
	}
	return out
}
