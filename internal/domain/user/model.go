package user

import (
	"fmt"
	"strings"
)

// User links a local account to its identity on the puzzle site.
type User struct {
	LocalID  string
	PuzzleID string
}

func (u User) Validate() error {
	if strings.TrimSpace(u.LocalID) == "" {
		return fmt.Errorf("local id is required")
	}
	if strings.TrimSpace(u.PuzzleID) == "" {
		return fmt.Errorf("puzzle id is required")
	}
	return nil
}

// Principal is the authenticated caller as described by the identity provider.
type Principal struct {
	LocalID     string
	DisplayName string
	AvatarURL   string
	Groups      []string
}

// InAnyGroup reports whether the principal belongs to one of the given groups.
func (p Principal) InAnyGroup(groups []string) bool {
	for _, want := range groups {
		for _, have := range p.Groups {
			if strings.EqualFold(have, want) {
				return true
			}
		}
	}
	return false
}
