package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// UpsertAttempt folds one practice outcome into the record for
// (userID, syllable). The insert-or-increment decision happens inside
// a single statement so SQLite serializes it; two concurrent first
// attempts cannot both create a record, and no increment is lost.
func (s *SQLiteStore) UpsertAttempt(ctx context.Context, userID, syllable string, correct bool, ts time.Time) (bool, error) {
	if userID == "" {
		return false, errors.New("user_id is required")
	}
	if syllable == "" {
		return false, errors.New("syllable is required")
	}

	correctInit := 0
	incorrectInit := 0
	if correct {
		correctInit = 1
	} else {
		incorrectInit = 1
	}

	counter := "incorrect_count"
	if correct {
		counter = "correct_count"
	}

	// RETURNING the combined total distinguishes creation (total 1)
	// from increment without a second round trip.
	query := fmt.Sprintf(`
		INSERT INTO pronunciation_attempts (user_id, syllable, correct_count, incorrect_count, last_updated)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, syllable) DO UPDATE SET
			%s = %s + 1,
			last_updated = excluded.last_updated
		RETURNING correct_count + incorrect_count
	`, counter, counter)

	var total int
	err := s.db.QueryRowContext(ctx, query,
		userID, syllable, correctInit, incorrectInit, ts.UnixMilli(),
	).Scan(&total)
	if err != nil {
		return false, fmt.Errorf("failed to upsert attempt: %w", err)
	}

	return total == 1, nil
}

// GetAttempt returns the record for (userID, syllable).
// Returns ErrNotFound if the pair has never been attempted.
func (s *SQLiteStore) GetAttempt(ctx context.Context, userID, syllable string) (*AttemptRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, syllable, correct_count, incorrect_count, last_updated
		FROM pronunciation_attempts
		WHERE user_id = ? AND syllable = ?
	`, userID, syllable)

	var rec AttemptRecord
	err := row.Scan(
		&rec.UserID,
		&rec.Syllable,
		&rec.CorrectCount,
		&rec.IncorrectCount,
		&rec.LastUpdatedMs,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get attempt record: %w", err)
	}

	return &rec, nil
}

// ListAttempts returns all records for a user, most recently updated first.
func (s *SQLiteStore) ListAttempts(ctx context.Context, userID string) ([]AttemptRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, syllable, correct_count, incorrect_count, last_updated
		FROM pronunciation_attempts
		WHERE user_id = ?
		ORDER BY last_updated DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempt records: %w", err)
	}
	defer rows.Close()

	return scanAttemptRecords(rows)
}

// ListAllAttempts returns every record in the store.
func (s *SQLiteStore) ListAllAttempts(ctx context.Context) ([]AttemptRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, syllable, correct_count, incorrect_count, last_updated
		FROM pronunciation_attempts
		ORDER BY last_updated DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempt records: %w", err)
	}
	defer rows.Close()

	return scanAttemptRecords(rows)
}

func scanAttemptRecords(rows *sql.Rows) ([]AttemptRecord, error) {
	var records []AttemptRecord
	for rows.Next() {
		var rec AttemptRecord
		if err := rows.Scan(
			&rec.UserID,
			&rec.Syllable,
			&rec.CorrectCount,
			&rec.IncorrectCount,
			&rec.LastUpdatedMs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attempt record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attempt records: %w", err)
	}
	return records, nil
}
