// Package history persists past scoring runs per user.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Result is one stored scoring run.
type Result struct {
	ID          int64           `json:"id"`
	UserID      string          `json:"user_id"`
	Submission  json.RawMessage `json:"submission_data"`
	Result      json.RawMessage `json:"result_data"`
	SubmittedAt time.Time       `json:"submitted_at"`
}

// Store wraps a PostgreSQL connection pool for result history.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a history store on an existing connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// SaveResult stores one scoring run's submission and result payloads.
func (s *Store) SaveResult(ctx context.Context, userID string, submission, result any) error {
	submissionJSON, err := json.Marshal(submission)
	if err != nil {
		return fmt.Errorf("failed to marshal submission: %w", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO user_results (user_id, submission_data, result_data)
		 VALUES ($1, $2, $3)`,
		userID, submissionJSON, resultJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save result for user %s: %w", userID, err)
	}
	return nil
}

// ListResults returns a user's stored runs, newest first.
func (s *Store) ListResults(ctx context.Context, userID string) ([]Result, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, submission_data, result_data, submitted_at
		 FROM user_results
		 WHERE user_id = $1
		 ORDER BY submitted_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list results for user %s: %w", userID, err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.ID, &r.UserID, &r.Submission, &r.Result, &r.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read results: %w", err)
	}
	return results, nil
}
