package helpers

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresRepository reads helper profiles from the relational database.
type PostgresRepository struct {
	db querier
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(db querier) *PostgresRepository {
	if db == nil {
		panic("helpers: database handle required")
	}
	return &PostgresRepository{db: db}
}

// SearchByName returns helpers matching the partial name, best-rated first.
func (r *PostgresRepository) SearchByName(ctx context.Context, partial string) ([]Helper, error) {
	query := `
		SELECT id, full_name, COALESCE(profile_image_url, ''), COALESCE(specialty_names, '{}'),
		       COALESCE(rating, 0), COALESCE(total_jobs_completed, 0)
		FROM users
		WHERE role = 'helper' AND full_name ILIKE '%' || $1 || '%'
		ORDER BY rating DESC NULLS LAST, total_jobs_completed DESC
		LIMIT 10
	`
	rows, err := r.db.Query(ctx, query, partial)
	if err != nil {
		return nil, fmt.Errorf("helpers: search by name failed: %w", err)
	}
	defer rows.Close()

	var out []Helper
	for rows.Next() {
		var h Helper
		if err := rows.Scan(&h.ID, &h.FullName, &h.ProfileImageURL, &h.Specialties, &h.Rating, &h.CompletedJobs); err != nil {
			return nil, fmt.Errorf("helpers: scan helper failed: %w", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("helpers: iterate helpers failed: %w", err)
	}
	return out, nil
}
