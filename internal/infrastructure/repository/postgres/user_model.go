package postgres

type userTableModel struct {
	CID   string `db:"cid"`
	AoCID string `db:"aoc_id"`
}
