// internal/history/sqlite.go
//
// SQLite-backed history Store (table game_history, see sql migrations).
// Chains are stored as JSON text; timestamps as fixed-width UTC strings so
// they sort lexically.

package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// timeLayout is fixed width so ORDER BY created_at is chronological.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLStore keeps history rows in a database/sql handle.
type SQLStore struct {
	db    *sql.DB
	limit int
}

// NewSQLStore wraps db. limit <= 0 means DefaultLimit.
func NewSQLStore(db *sql.DB, limit int) *SQLStore {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &SQLStore{db: db, limit: limit}
}

// Append inserts s and deletes the owner's rows beyond the limit, in one tx.
func (s *SQLStore) Append(ctx context.Context, sum Summary) error {
	if sum.Owner == "" {
		return ErrNoOwner
	}
	chain, err := json.Marshal(sum.Chain)
	if err != nil {
		return fmt.Errorf("encode chain: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO game_history
			(id, owner, created_at, start_word, score, chain, missed_word, missed_definition, reason, mode)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sum.ID, sum.Owner, sum.Timestamp.UTC().Format(timeLayout), sum.StartWord, sum.Score,
		string(chain), sum.MissedWord, sum.MissedDefinition, sum.Reason, sum.Mode,
	); err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM game_history
		WHERE owner = ? AND id NOT IN (
			SELECT id FROM game_history WHERE owner = ?
			ORDER BY created_at DESC, rowid DESC
			LIMIT ?
		)`, sum.Owner, sum.Owner, s.limit,
	); err != nil {
		return fmt.Errorf("trim history: %w", err)
	}
	return tx.Commit()
}

// List returns the owner's summaries, newest first.
func (s *SQLStore) List(ctx context.Context, owner string) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner, created_at, start_word, score, chain, missed_word, missed_definition, reason, mode
		FROM game_history
		WHERE owner = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, owner, s.limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Summary{}
	for rows.Next() {
		var sum Summary
		var created, chain string
		if err := rows.Scan(&sum.ID, &sum.Owner, &created, &sum.StartWord, &sum.Score, &chain,
			&sum.MissedWord, &sum.MissedDefinition, &sum.Reason, &sum.Mode); err != nil {
			return nil, err
		}
		sum.Timestamp, _ = time.Parse(timeLayout, created)
		if err := json.Unmarshal([]byte(chain), &sum.Chain); err != nil {
			return nil, fmt.Errorf("decode chain %s: %w", sum.ID, err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Clear deletes every row of the owner.
func (s *SQLStore) Clear(ctx context.Context, owner string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM game_history WHERE owner = ?`, owner)
	return err
}

// Claim reassigns from's rows to to and re-applies the limit.
func (s *SQLStore) Claim(ctx context.Context, from, to string) error {
	if from == "" || to == "" || from == to {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `UPDATE game_history SET owner = ? WHERE owner = ?`, to, from); err != nil {
		return fmt.Errorf("claim history: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM game_history
		WHERE owner = ? AND id NOT IN (
			SELECT id FROM game_history WHERE owner = ?
			ORDER BY created_at DESC, rowid DESC
			LIMIT ?
		)`, to, to, s.limit,
	); err != nil {
		return fmt.Errorf("trim history: %w", err)
	}
	return tx.Commit()
}
