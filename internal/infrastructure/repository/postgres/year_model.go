package postgres

type yearTableModel struct {
	Year        int    `db:"year"`
	Leaderboard string `db:"leaderboard"`
}
