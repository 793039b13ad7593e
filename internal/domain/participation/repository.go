package participation

import "context"

type Repository interface {
	ListByLocalID(ctx context.Context, localID string) ([]Participation, error)
	Upsert(ctx context.Context, p Participation) error
	Delete(ctx context.Context, localID string, year int) (bool, error)
	// ListJoinedByYear returns participants that also have a user row, ordered
	// by local id. withRepoOnly drops rows without a repository slug.
	ListJoinedByYear(ctx context.Context, year int, withRepoOnly bool) ([]Joined, error)
}
