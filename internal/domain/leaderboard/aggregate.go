package leaderboard

import (
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/aoc-leaderboard/internal/domain/participation"
)

// Scores ranks joined participants by local score, highest first. Participants
// missing from the board are skipped. Ties keep join order.
func Scores(joined []participation.Joined, board Board) []ScoreEntry {
	out := make([]ScoreEntry, 0, len(joined))
	for _, j := range joined {
		member, ok := board.Members[j.PuzzleID]
		if !ok {
			continue
		}
		out = append(out, ScoreEntry{
			Participant: participantOf(j),
			Score:       member.LocalScore,
		})
	}

	sort.SliceStable(out, func(i, k int) bool {
		return out[i].Score > out[k].Score
	})
	return out
}

// Splits ranks joined participants by mean time between first and second
// star, fastest first. Ties keep join order.
func Splits(joined []participation.Joined, board Board, now time.Time) []SplitEntry {
	out := make([]SplitEntry, 0, len(joined))
	for _, j := range joined {
		member, ok := board.Members[j.PuzzleID]
		if !ok {
			continue
		}
		mean, days := MeanSplit(member, now)
		out = append(out, SplitEntry{
			Participant:  participantOf(j),
			SplitSeconds: int64(mean / time.Second),
			Split:        FormatSplit(mean),
			Days:         days,
		})
	}

	sort.SliceStable(out, func(i, k int) bool {
		return out[i].SplitSeconds < out[k].SplitSeconds
	})
	return out
}

// DaySplit returns the split for one day and whether the day counts.
// A day with only the first star is measured against now. Splits are capped at MaxSplit.
func DaySplit(day DayProgress, now time.Time) (time.Duration, bool) {
	if day.FirstStarAt == nil {
		return 0, false
	}

	end := now
	if day.SecondStarAt != nil {
		end = *day.SecondStarAt
	}

	split := end.Sub(*day.FirstStarAt)
	if split < 0 {
		split = 0
	}
	if split > MaxSplit {
		split = MaxSplit
	}
	return split.Truncate(time.Second), true
}

// MeanSplit averages DaySplit over days 1..EventDays, rounding down to whole
// seconds. A member without any qualifying day gets MaxSplit.
func MeanSplit(member Member, now time.Time) (time.Duration, int) {
	var total time.Duration
	days := 0
	for day := 1; day <= EventDays; day++ {
		progress, ok := member.Days[day]
		if !ok {
			continue
		}
		split, counted := DaySplit(progress, now)
		if !counted {
			continue
		}
		total += split
		days++
	}

	if days == 0 {
		return MaxSplit, 0
	}
	seconds := int64(total/time.Second) / int64(days)
	return time.Duration(seconds) * time.Second, days
}

// FormatSplit renders a split as HH:MM:SS.
func FormatSplit(d time.Duration) string {
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// Languages ranks participants with a repository by the number of distinct
// languages in it, most first. Participants absent from byLocalID are skipped.
// Ties keep join order.
func Languages(joined []participation.Joined, byLocalID map[string]map[string]int) []LanguageEntry {
	out := make([]LanguageEntry, 0, len(joined))
	for _, j := range joined {
		if !j.HasRepo() {
			continue
		}
		languages, ok := byLocalID[j.LocalID]
		if !ok {
			continue
		}
		names := RankLanguages(languages)
		out = append(out, LanguageEntry{
			Participant:   participantOf(j),
			LanguageCount: len(names),
			Languages:     names,
		})
	}

	sort.SliceStable(out, func(i, k int) bool {
		return out[i].LanguageCount > out[k].LanguageCount
	})
	return out
}

// RankLanguages orders language names by byte count, largest first, then by name.
func RankLanguages(languages map[string]int) []string {
	names := make([]string, 0, len(languages))
	for name := range languages {
		names = append(names, name)
	}
	sort.Slice(names, func(i, k int) bool {
		if languages[names[i]] != languages[names[k]] {
			return languages[names[i]] > languages[names[k]]
		}
		return names[i] < names[k]
	})
	return names
}

func participantOf(j participation.Joined) Participant {
	return Participant{
		LocalID:  j.LocalID,
		RepoSlug: j.RepoSlug,
	}
}
