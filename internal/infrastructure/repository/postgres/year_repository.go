package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/aoc-leaderboard/internal/domain/year"
	qb "github.com/riskibarqy/aoc-leaderboard/internal/platform/querybuilder"
)

type YearRepository struct {
	db *sqlx.DB
}

func NewYearRepository(db *sqlx.DB) *YearRepository {
	return &YearRepository{db: db}
}

func (r *YearRepository) List(ctx context.Context) ([]year.Year, error) {
	query, args, err := qb.Select("year", "leaderboard").From("years").
		OrderBy("year").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select years query: %w", err)
	}

	var rows []yearTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select years: %w", err)
	}

	out := make([]year.Year, 0, len(rows))
	for _, row := range rows {
		out = append(out, yearFromRow(row))
	}
	return out, nil
}

func (r *YearRepository) GetByYear(ctx context.Context, y int) (year.Year, bool, error) {
	query, args, err := qb.Select("year", "leaderboard").From("years").
		Where(qb.Eq("year", y)).
		ToSQL()
	if err != nil {
		return year.Year{}, false, fmt.Errorf("build get year query: %w", err)
	}

	var row yearTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return year.Year{}, false, nil
		}
		return year.Year{}, false, fmt.Errorf("get year %d: %w", y, err)
	}

	return yearFromRow(row), true, nil
}

func (r *YearRepository) Upsert(ctx context.Context, y year.Year) error {
	query, args, err := qb.UpsertModel("years", yearTableModel{
		Year:        y.Year,
		Leaderboard: y.LeaderboardID,
	}, "year")
	if err != nil {
		return fmt.Errorf("build upsert year query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert year %d: %w", y.Year, err)
	}
	return nil
}

func (r *YearRepository) Delete(ctx context.Context, y int) (bool, error) {
	query, args, err := qb.DeleteFrom("years").Where(qb.Eq("year", y)).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete year query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete year %d: %w", y, err)
	}
	return rowsAffected(result)
}

func yearFromRow(row yearTableModel) year.Year {
	return year.Year{Year: row.Year, LeaderboardID: row.Leaderboard}
}
