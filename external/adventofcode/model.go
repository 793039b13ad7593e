package adventofcode

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/riskibarqy/aoc-leaderboard/internal/domain/leaderboard"
)

type leaderboardResponse struct {
	OwnerID flexInt                   `json:"owner_id"`
	Event   string                    `json:"event"`
	Members map[string]memberResponse `json:"members"`
}

type memberResponse struct {
	ID          flexInt                          `json:"id"`
	Name        *string                          `json:"name"`
	Stars       int                              `json:"stars"`
	LocalScore  int                              `json:"local_score"`
	GlobalScore int                              `json:"global_score"`
	LastStarTS  flexInt                          `json:"last_star_ts"`
	Completion  map[string]map[string]starRecord `json:"completion_day_level"`
}

type starRecord struct {
	GetStarTS flexInt `json:"get_star_ts"`
	StarIndex int64   `json:"star_index"`
}

// flexInt accepts a JSON number, a quoted number or null. The site has served
// timestamps and ids in both forms.
type flexInt int64

func (f *flexInt) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*f = 0
		return nil
	}
	raw = bytes.Trim(raw, `"`)
	if len(raw) == 0 {
		*f = 0
		return nil
	}

	value, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return fmt.Errorf("parse integer %q: %w", raw, err)
	}
	*f = flexInt(value)
	return nil
}

func (r leaderboardResponse) toBoard() leaderboard.Board {
	board := leaderboard.Board{
		OwnerID: strconv.FormatInt(int64(r.OwnerID), 10),
		Members: make(map[string]leaderboard.Member, len(r.Members)),
	}

	for key, m := range r.Members {
		id := key
		if m.ID != 0 {
			id = strconv.FormatInt(int64(m.ID), 10)
		}

		name := fmt.Sprintf("(anonymous user #%s)", id)
		if m.Name != nil && *m.Name != "" {
			name = *m.Name
		}

		member := leaderboard.Member{
			ID:         id,
			Name:       name,
			LocalScore: m.LocalScore,
			Stars:      m.Stars,
			Days:       make(map[int]leaderboard.DayProgress, len(m.Completion)),
		}
		for dayKey, parts := range m.Completion {
			day, err := strconv.Atoi(dayKey)
			if err != nil || day < 1 || day > leaderboard.EventDays {
				continue
			}
			member.Days[day] = leaderboard.DayProgress{
				FirstStarAt:  parts["1"].timestamp(),
				SecondStarAt: parts["2"].timestamp(),
			}
		}

		board.Members[id] = member
	}

	return board
}

func (s starRecord) timestamp() *time.Time {
	if s.GetStarTS <= 0 {
		return nil
	}
	ts := time.Unix(int64(s.GetStarTS), 0).UTC()
	return &ts
}
