package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/aoc-leaderboard/internal/domain/user"
	qb "github.com/riskibarqy/aoc-leaderboard/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByLocalID(ctx context.Context, localID string) (user.User, bool, error) {
	query, args, err := qb.Select("cid", "aoc_id").From("users").
		Where(qb.Eq("cid", localID)).
		ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build get user query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user %s: %w", localID, err)
	}

	return user.User{LocalID: row.CID, PuzzleID: row.AoCID}, true, nil
}

func (r *UserRepository) Upsert(ctx context.Context, u user.User) error {
	query, args, err := qb.UpsertModel("users", userTableModel{CID: u.LocalID, AoCID: u.PuzzleID}, "cid")
	if err != nil {
		return fmt.Errorf("build upsert user query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert user %s: %w", u.LocalID, err)
	}
	return nil
}
