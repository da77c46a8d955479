package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresRepositoryListActiveCategories(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"id", "name", "description", "default_hourly_rate"}).
		AddRow("c1", "Cooking", "Meal preparation", 30.0).
		AddRow("c2", "Gardening", "Yard upkeep", 27.0)
	mock.ExpectQuery("SELECT id, name, description, default_hourly_rate").WillReturnRows(rows)

	repo := NewPostgresRepository(mock)
	got, err := repo.ListActiveCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Cooking", got[0].Name)
	assert.Equal(t, 27.0, got[1].DefaultHourlyRate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryListActiveCategoriesError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT id, name, description, default_hourly_rate").
		WillReturnError(errors.New("connection refused"))

	repo := NewPostgresRepository(mock)
	_, err = repo.ListActiveCategories(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list categories failed")
}

func TestPostgresRepositoryListCategoryQuestions(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"id", "question_text", "question_type", "is_required", "placeholder_text", "question_order"}).
		AddRow("q1", "How many rooms need cleaning?", "text", true, "e.g. 3 bedrooms", 1).
		AddRow("q2", "Any pets in the home?", "text", false, "", 2)
	mock.ExpectQuery("SELECT id, question_text, question_type").
		WithArgs("c1").
		WillReturnRows(rows)

	repo := NewPostgresRepository(mock)
	got, err := repo.ListCategoryQuestions(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].Required)
	assert.False(t, got[1].Required)
	assert.NoError(t, mock.ExpectationsWereMet())
}
