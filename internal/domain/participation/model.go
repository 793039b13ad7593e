package participation

import (
	"fmt"
	"regexp"
	"strings"
)

var repoSlugPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)

// Participation opts a local user into one year's leaderboards.
type Participation struct {
	LocalID string
	Year    int
	// RepoSlug is an optional "owner/repo" reference to the user's solutions.
	RepoSlug *string
}

// Joined is a participation inner-joined with its user row.
type Joined struct {
	LocalID  string
	PuzzleID string
	RepoSlug *string
}

// HasRepo reports whether a non-empty repository slug is present.
func (j Joined) HasRepo() bool {
	return j.RepoSlug != nil && strings.TrimSpace(*j.RepoSlug) != ""
}

func ValidRepoSlug(slug string) bool {
	return repoSlugPattern.MatchString(slug)
}

func (p Participation) Validate() error {
	if strings.TrimSpace(p.LocalID) == "" {
		return fmt.Errorf("local id is required")
	}
	if p.Year <= 0 {
		return fmt.Errorf("year must be positive")
	}
	if p.RepoSlug != nil && *p.RepoSlug != "" && !ValidRepoSlug(*p.RepoSlug) {
		return fmt.Errorf("repository %q must look like owner/repo", *p.RepoSlug)
	}
	return nil
}
