package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/aoc-leaderboard/internal/domain/participation"
	qb "github.com/riskibarqy/aoc-leaderboard/internal/platform/querybuilder"
)

type ParticipationRepository struct {
	db *sqlx.DB
}

func NewParticipationRepository(db *sqlx.DB) *ParticipationRepository {
	return &ParticipationRepository{db: db}
}

func (r *ParticipationRepository) ListByLocalID(ctx context.Context, localID string) ([]participation.Participation, error) {
	query, args, err := qb.Select("cid", "year", "github").From("participants").
		Where(qb.Eq("cid", localID)).
		OrderBy("year").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select participations query: %w", err)
	}

	var rows []participationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select participations for %s: %w", localID, err)
	}

	out := make([]participation.Participation, 0, len(rows))
	for _, row := range rows {
		out = append(out, participation.Participation{
			LocalID:  row.CID,
			Year:     row.Year,
			RepoSlug: ptrFromNullString(row.GitHub),
		})
	}
	return out, nil
}

func (r *ParticipationRepository) Upsert(ctx context.Context, p participation.Participation) error {
	query, args, err := qb.UpsertModel("participants", participationTableModel{
		CID:    p.LocalID,
		Year:   p.Year,
		GitHub: nullStringFromPtr(p.RepoSlug),
	}, "cid", "year")
	if err != nil {
		return fmt.Errorf("build upsert participation query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert participation %s/%d: %w", p.LocalID, p.Year, err)
	}
	return nil
}

func (r *ParticipationRepository) Delete(ctx context.Context, localID string, year int) (bool, error) {
	query, args, err := qb.DeleteFrom("participants").
		Where(qb.Eq("cid", localID), qb.Eq("year", year)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete participation query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete participation %s/%d: %w", localID, year, err)
	}
	return rowsAffected(result)
}

func (r *ParticipationRepository) ListJoinedByYear(ctx context.Context, year int, withRepoOnly bool) ([]participation.Joined, error) {
	query, args, err := joinedByYearQuery(year, withRepoOnly).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select joined participants query: %w", err)
	}

	var rows []joinedParticipantModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select joined participants for %d: %w", year, err)
	}

	out := make([]participation.Joined, 0, len(rows))
	for _, row := range rows {
		out = append(out, participation.Joined{
			LocalID:  row.CID,
			PuzzleID: row.AoCID,
			RepoSlug: ptrFromNullString(row.GitHub),
		})
	}
	return out, nil
}

func joinedByYearQuery(year int, withRepoOnly bool) *qb.SelectBuilder {
	conditions := []qb.Condition{qb.Eq("p.year", year)}
	if withRepoOnly {
		conditions = append(conditions, qb.IsNotNull("p.github"), qb.Expr("p.github <> ''"))
	}
	return qb.Select("p.cid", "u.aoc_id", "p.github").
		From("participants p").
		InnerJoin("users u", "u.cid = p.cid").
		Where(conditions...).
		OrderBy("p.cid")
}
