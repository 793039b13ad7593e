package postgres

import "database/sql"

type participationTableModel struct {
	CID    string         `db:"cid"`
	Year   int            `db:"year"`
	GitHub sql.NullString `db:"github"`
}

type joinedParticipantModel struct {
	CID    string         `db:"cid"`
	AoCID  string         `db:"aoc_id"`
	GitHub sql.NullString `db:"github"`
}
