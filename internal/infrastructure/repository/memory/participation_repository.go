package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/riskibarqy/aoc-leaderboard/internal/domain/participation"
)

type participationKey struct {
	localID string
	year    int
}

type ParticipationRepository struct {
	mu    sync.RWMutex
	items map[participationKey]participation.Participation
	users *UserRepository
}

// NewParticipationRepository joins against users the way the participants
// table joins the users table.
func NewParticipationRepository(users *UserRepository, items []participation.Participation) *ParticipationRepository {
	r := &ParticipationRepository{
		items: make(map[participationKey]participation.Participation, len(items)),
		users: users,
	}
	for _, p := range items {
		r.items[participationKey{localID: p.LocalID, year: p.Year}] = cloneParticipation(p)
	}
	return r
}

func (r *ParticipationRepository) ListByLocalID(_ context.Context, localID string) ([]participation.Participation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]participation.Participation, 0)
	for key, p := range r.items {
		if key.localID == localID {
			out = append(out, cloneParticipation(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out, nil
}

func (r *ParticipationRepository) Upsert(_ context.Context, p participation.Participation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[participationKey{localID: p.LocalID, year: p.Year}] = cloneParticipation(p)
	return nil
}

func (r *ParticipationRepository) Delete(_ context.Context, localID string, year int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := participationKey{localID: localID, year: year}
	if _, ok := r.items[key]; !ok {
		return false, nil
	}
	delete(r.items, key)
	return true, nil
}

func (r *ParticipationRepository) ListJoinedByYear(_ context.Context, year int, withRepoOnly bool) ([]participation.Joined, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]participation.Joined, 0)
	for key, p := range r.items {
		if key.year != year {
			continue
		}
		if withRepoOnly && (p.RepoSlug == nil || strings.TrimSpace(*p.RepoSlug) == "") {
			continue
		}
		if r.users == nil {
			continue
		}
		u, ok := r.users.lookup(p.LocalID)
		if !ok {
			continue
		}
		out = append(out, participation.Joined{
			LocalID:  p.LocalID,
			PuzzleID: u.PuzzleID,
			RepoSlug: cloneString(p.RepoSlug),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LocalID < out[j].LocalID })
	return out, nil
}

func cloneParticipation(p participation.Participation) participation.Participation {
	p.RepoSlug = cloneString(p.RepoSlug)
	return p
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	out := *value
	return &out
}
