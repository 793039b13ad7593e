package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func rowsAffected(result sql.Result) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read rows affected: %w", err)
	}
	return n > 0, nil
}

func nullStringFromPtr(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func ptrFromNullString(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	out := strings.TrimSpace(value.String)
	return &out
}
