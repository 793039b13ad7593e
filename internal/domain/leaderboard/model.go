package leaderboard

import (
	"fmt"
	"time"
)

// Variant names a leaderboard view. Its value doubles as the cache key prefix.
type Variant string

const (
	VariantScore     Variant = "leaderboard"
	VariantSplits    Variant = "leaderboard_splits"
	VariantLanguages Variant = "leaderboard_languages"
)

const (
	// EventDays is the number of puzzle days in one event.
	EventDays = 25
	// MaxSplit caps a single day's split and is the value of a participant with no qualifying days.
	MaxSplit = 24 * time.Hour
)

func (v Variant) Valid() bool {
	switch v {
	case VariantScore, VariantSplits, VariantLanguages:
		return true
	default:
		return false
	}
}

// CacheKey is the cache key for one variant and year, e.g. "leaderboard_splits_2023".
func CacheKey(v Variant, year int) string {
	return fmt.Sprintf("%s_%d", v, year)
}

// DayProgress holds star timestamps for one day. A nil field means the star is not earned.
type DayProgress struct {
	FirstStarAt  *time.Time
	SecondStarAt *time.Time
}

// Member is one entry of the puzzle site's private leaderboard.
type Member struct {
	ID         string
	Name       string
	LocalScore int
	Stars      int
	Days       map[int]DayProgress
}

// Board is a private leaderboard snapshot keyed by puzzle-site member id.
type Board struct {
	OwnerID string
	Members map[string]Member
}

// Participant carries identity fields shared by every entry type.
type Participant struct {
	LocalID     string  `json:"localId"`
	DisplayName string  `json:"displayName"`
	AvatarURL   string  `json:"avatarUrl,omitempty"`
	RepoSlug    *string `json:"github,omitempty"`
}

type ScoreEntry struct {
	Participant
	Score int `json:"score"`
}

type SplitEntry struct {
	Participant
	SplitSeconds int64  `json:"splitSeconds"`
	Split        string `json:"split"`
	// Days counts the days that contributed to the mean.
	Days int `json:"days"`
}

type LanguageEntry struct {
	Participant
	LanguageCount int      `json:"languageCount"`
	Languages     []string `json:"languages"`
}
