package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepositoryOrdersCategoriesByName(t *testing.T) {
	repo := NewInMemoryRepository([]Category{
		{ID: "c2", Name: "Tutoring"},
		{ID: "c1", Name: "Cooking"},
		{ID: "c3", Name: "Gardening"},
	}, nil)

	got, err := repo.ListActiveCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Cooking", got[0].Name)
	assert.Equal(t, "Gardening", got[1].Name)
	assert.Equal(t, "Tutoring", got[2].Name)
}

func TestInMemoryRepositoryOrdersQuestions(t *testing.T) {
	repo := NewInMemoryRepository(nil, map[string][]Question{
		"c1": {
			{ID: "q2", Text: "Second", Order: 2},
			{ID: "q1", Text: "First", Order: 1},
		},
	})

	got, err := repo.ListCategoryQuestions(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "First", got[0].Text)
	assert.Equal(t, "Second", got[1].Text)
}

func TestInMemoryRepositoryUnknownCategory(t *testing.T) {
	repo := NewInMemoryRepository(DefaultCategories(), DefaultQuestions())

	got, err := repo.ListCategoryQuestions(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestInMemoryRepositoryReturnsCopies(t *testing.T) {
	repo := NewInMemoryRepository(DefaultCategories(), DefaultQuestions())

	first, err := repo.ListActiveCategories(context.Background())
	require.NoError(t, err)
	first[0].Name = "mutated"

	second, err := repo.ListActiveCategories(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", second[0].Name)
}
