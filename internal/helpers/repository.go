package helpers

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// maxSearchResults caps a name search so the chat response stays scannable.
const maxSearchResults = 10

// Repository defines read access to helper profiles.
type Repository interface {
	SearchByName(ctx context.Context, partial string) ([]Helper, error)
}

// InMemoryRepository serves helper profiles from memory, for tests and
// database-less development runs.
type InMemoryRepository struct {
	mu      sync.RWMutex
	helpers []Helper
}

// NewInMemoryRepository creates an in-memory repository with the given profiles.
func NewInMemoryRepository(helpers []Helper) *InMemoryRepository {
	sorted := make([]Helper, len(helpers))
	copy(sorted, helpers)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Rating != sorted[j].Rating {
			return sorted[i].Rating > sorted[j].Rating
		}
		return sorted[i].CompletedJobs > sorted[j].CompletedJobs
	})
	return &InMemoryRepository{helpers: sorted}
}

// SearchByName returns helpers whose full name contains the partial match,
// best-rated first, capped at ten results.
func (r *InMemoryRepository) SearchByName(ctx context.Context, partial string) ([]Helper, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(partial))
	if needle == "" {
		return nil, nil
	}

	var out []Helper
	for _, h := range r.helpers {
		if strings.Contains(strings.ToLower(h.FullName), needle) {
			out = append(out, h)
			if len(out) == maxSearchResults {
				break
			}
		}
	}
	return out, nil
}
