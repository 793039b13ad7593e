package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/aoc-leaderboard/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	items map[string]user.User
}

func NewUserRepository(users []user.User) *UserRepository {
	items := make(map[string]user.User, len(users))
	for _, u := range users {
		items[u.LocalID] = u
	}
	return &UserRepository{items: items}
}

func (r *UserRepository) GetByLocalID(_ context.Context, localID string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[localID]
	return u, ok, nil
}

func (r *UserRepository) Upsert(_ context.Context, u user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[u.LocalID] = u
	return nil
}

// lookup is used by ParticipationRepository to emulate the users join.
func (r *UserRepository) lookup(localID string) (user.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[localID]
	return u, ok
}
