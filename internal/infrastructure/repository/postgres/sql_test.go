package postgres

import (
	"database/sql"
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get user: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to be not found")
	}
	if isNotFound(fmt.Errorf("connection reset")) {
		t.Fatalf("unexpected not found for unrelated error")
	}
}

type fakeResult struct {
	n   int64
	err error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.n, r.err }

func TestRowsAffected(t *testing.T) {
	removed, err := rowsAffected(fakeResult{n: 1})
	if err != nil || !removed {
		t.Fatalf("expected removed=true, got %v (%v)", removed, err)
	}
	removed, err = rowsAffected(fakeResult{n: 0})
	if err != nil || removed {
		t.Fatalf("expected removed=false, got %v (%v)", removed, err)
	}
	if _, err := rowsAffected(fakeResult{err: fmt.Errorf("driver does not support")}); err == nil {
		t.Fatalf("expected error to propagate")
	}
}

func TestNullStringRoundTrip(t *testing.T) {
	if got := nullStringFromPtr(nil); got.Valid {
		t.Fatalf("nil pointer must map to NULL")
	}
	slug := "ada/aoc-2023"
	if got := ptrFromNullString(nullStringFromPtr(&slug)); got == nil || *got != slug {
		t.Fatalf("unexpected slug %v", got)
	}
	if got := ptrFromNullString(sql.NullString{}); got != nil {
		t.Fatalf("NULL must map to nil pointer")
	}
}

func TestJoinedByYearQuery(t *testing.T) {
	query, args, err := joinedByYearQuery(2023, false).ToSQL()
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	want := "SELECT p.cid, u.aoc_id, p.github FROM participants p INNER JOIN users u ON u.cid = p.cid WHERE p.year = $1 ORDER BY p.cid"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 1 || args[0] != 2023 {
		t.Fatalf("unexpected args: %+v", args)
	}

	query, _, err = joinedByYearQuery(2023, true).ToSQL()
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	want = "SELECT p.cid, u.aoc_id, p.github FROM participants p INNER JOIN users u ON u.cid = p.cid WHERE p.year = $1 AND p.github IS NOT NULL AND p.github <> '' ORDER BY p.cid"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
}
