// Package catalog provides read-only PostgreSQL access to the position and
// prerequisite catalog.
package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/traintrack/traintrack-api/internal/engine"
)

// AttributeName labels a prerequisite id for display.
type AttributeName struct {
	ID       int64
	Name     string
	Category string
}

// Store wraps a PostgreSQL connection pool for catalog reads.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the catalog database.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to catalog database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping catalog database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Pool exposes the underlying pool for collaborators sharing the connection.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// FetchRequirements returns every position/prerequisite edge joined with the
// prerequisite's category and the position's minimum fit score. The engine's
// index builder decides which rows are scorable.
func (s *Store) FetchRequirements(ctx context.Context) ([]engine.RequirementRow, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT pos.id, pos.name, pos.min_fit_score,
		        pre.id, pre.name, pre.type, pp.weight
		 FROM positions pos
		 JOIN position_prerequisites pp ON pp.position_id = pos.id
		 JOIN prerequisites pre ON pre.id = pp.prerequisite_id
		 ORDER BY pos.id, pre.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch requirements: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var requirements []engine.RequirementRow
	for rows.Next() {
		var row engine.RequirementRow
		if err := rows.Scan(
			&row.PositionID, &row.PositionName, &row.MinFitScore,
			&row.AttributeID, &row.AttributeName, &row.Category, &row.Weight,
		); err != nil {
			return nil, fmt.Errorf("%w: failed to scan requirement row: %v", ErrUnavailable, err)
		}
		requirements = append(requirements, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read requirements: %v", ErrUnavailable, err)
	}

	return requirements, nil
}

// FetchAttributeNames resolves display names and categories for the given
// prerequisite ids. Unknown ids are simply absent from the result.
func (s *Store) FetchAttributeNames(ctx context.Context, ids []int64) ([]AttributeName, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, name, type FROM prerequisites WHERE id = ANY($1) ORDER BY id`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch attribute names: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	var names []AttributeName
	for rows.Next() {
		var n AttributeName
		if err := rows.Scan(&n.ID, &n.Name, &n.Category); err != nil {
			return nil, fmt.Errorf("%w: failed to scan attribute name: %v", ErrUnavailable, err)
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read attribute names: %v", ErrUnavailable, err)
	}

	return names, nil
}
