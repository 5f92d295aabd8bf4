// internal/daily/store.go
//
// Daily results: one row per owner per UTC date (table daily_results).
// The first finished daily round of the day counts; later inserts are ignored.

package daily

import (
	"context"
	"database/sql"
)

// Result is a finished daily round.
type Result struct {
	Owner       string `json:"owner"`
	Date        string `json:"date"`
	WordIndex   int    `json:"wordIndex"`
	StartWord   string `json:"startWord"`
	Score       int    `json:"score"`
	ChainLength int    `json:"chainLength"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether owner has a result for date.
func (s *Store) AlreadyPlayed(ctx context.Context, owner, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM daily_results WHERE owner=? AND date=?",
		owner, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult stores r unless the owner already has a result that day.
// The boolean is true when a row was written.
func (s *Store) InsertResult(ctx context.Context, r Result) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(owner, date, word_index, start_word, score, chain_length)
		 VALUES(?,?,?,?,?,?)`, r.Owner, r.Date, r.WordIndex, r.StartWord, r.Score, r.ChainLength,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

type LBRow struct {
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	Score       int    `json:"score"`
	ChainLength int    `json:"chainLength"`
}

// Leaderboard returns the best results of date: score desc, then longer chain,
// then earlier submission. Name is the username for registered owners and
// empty for anonymous ones.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT d.owner, COALESCE(u.username, ''), d.score, d.chain_length
		 FROM daily_results d
		 LEFT JOIN users u ON u.id = d.owner
		 WHERE d.date=?
		 ORDER BY d.score DESC, d.chain_length DESC, d.created_at ASC, d.rowid ASC
		 LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []LBRow{}
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.Owner, &r.Name, &r.Score, &r.ChainLength); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
