package year

import (
	"fmt"
	"regexp"
)

var leaderboardIDPattern = regexp.MustCompile(`^[0-9]+-[A-Za-z0-9]+$`)

// Year binds an event year to the private leaderboard that tracks it.
type Year struct {
	Year int
	// LeaderboardID is the invite code, e.g. "123456-abcdef". The numeric
	// prefix addresses the leaderboard on the puzzle site.
	LeaderboardID string
}

// ValidLeaderboardID reports whether id has the "<digits>-<alphanumerics>" shape.
func ValidLeaderboardID(id string) bool {
	return leaderboardIDPattern.MatchString(id)
}

// BoardNumber is the part of the invite code used in puzzle-site URLs.
func (y Year) BoardNumber() string {
	for i := 0; i < len(y.LeaderboardID); i++ {
		if y.LeaderboardID[i] == '-' {
			return y.LeaderboardID[:i]
		}
	}
	return y.LeaderboardID
}

func (y Year) Validate() error {
	if y.Year <= 0 {
		return fmt.Errorf("year must be positive")
	}
	if !ValidLeaderboardID(y.LeaderboardID) {
		return fmt.Errorf("leaderboard id %q must look like 123-abc", y.LeaderboardID)
	}
	return nil
}
