package catalog

import (
	"context"
	"sort"
	"sync"
)

// Repository defines read access to job category reference data.
type Repository interface {
	ListActiveCategories(ctx context.Context) ([]Category, error)
	ListCategoryQuestions(ctx context.Context, categoryID string) ([]Question, error)
}

// InMemoryRepository serves reference data from memory, for tests and
// database-less development runs.
type InMemoryRepository struct {
	mu         sync.RWMutex
	categories []Category
	questions  map[string][]Question
}

// NewInMemoryRepository creates an in-memory repository with the given data.
func NewInMemoryRepository(categories []Category, questions map[string][]Question) *InMemoryRepository {
	sorted := make([]Category, len(categories))
	copy(sorted, categories)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	byCategory := make(map[string][]Question, len(questions))
	for id, qs := range questions {
		qsCopy := make([]Question, len(qs))
		copy(qsCopy, qs)
		sort.Slice(qsCopy, func(i, j int) bool { return qsCopy[i].Order < qsCopy[j].Order })
		byCategory[id] = qsCopy
	}

	return &InMemoryRepository{categories: sorted, questions: byCategory}
}

// ListActiveCategories returns all categories ordered by name.
func (r *InMemoryRepository) ListActiveCategories(ctx context.Context) ([]Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Category, len(r.categories))
	copy(out, r.categories)
	return out, nil
}

// ListCategoryQuestions returns the questions for one category ordered by display order.
func (r *InMemoryRepository) ListCategoryQuestions(ctx context.Context, categoryID string) ([]Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	qs := r.questions[categoryID]
	out := make([]Question, len(qs))
	copy(out, qs)
	return out, nil
}
