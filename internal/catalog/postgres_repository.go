package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// querier is the subset of pgxpool.Pool the repository needs. pgxmock
// satisfies it in tests.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresRepository reads reference data from the relational database.
type PostgresRepository struct {
	db querier
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(db querier) *PostgresRepository {
	if db == nil {
		panic("catalog: database handle required")
	}
	return &PostgresRepository{db: db}
}

// ListActiveCategories returns active categories ordered by name.
func (r *PostgresRepository) ListActiveCategories(ctx context.Context) ([]Category, error) {
	query := `
		SELECT id, name, description, default_hourly_rate
		FROM job_categories
		WHERE is_active = TRUE
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("catalog: list categories failed: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.DefaultHourlyRate); err != nil {
			return nil, fmt.Errorf("catalog: scan category failed: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: iterate categories failed: %w", err)
	}
	return categories, nil
}

// ListCategoryQuestions returns a category's active questions in display order.
func (r *PostgresRepository) ListCategoryQuestions(ctx context.Context, categoryID string) ([]Question, error) {
	query := `
		SELECT id, question_text, question_type, is_required, placeholder_text, question_order
		FROM job_category_questions
		WHERE category_id = $1 AND is_active = TRUE
		ORDER BY question_order
	`
	rows, err := r.db.Query(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("catalog: list questions failed: %w", err)
	}
	defer rows.Close()

	var questions []Question
	for rows.Next() {
		var q Question
		if err := rows.Scan(&q.ID, &q.Text, &q.Type, &q.Required, &q.Placeholder, &q.Order); err != nil {
			return nil, fmt.Errorf("catalog: scan question failed: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: iterate questions failed: %w", err)
	}
	return questions, nil
}
