package user

import "context"

type Repository interface {
	GetByLocalID(ctx context.Context, localID string) (User, bool, error)
	Upsert(ctx context.Context, u User) error
}
