package memory

import (
	"context"
	"sort"
	"sync"

	"alchm-engine/internal/domain"
	"alchm-engine/internal/storage"
)

// RecipeStore is an in-memory implementation of storage.RecipeStore.
type RecipeStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Recipe // keyed by recipe_id
}

// NewRecipeStore creates a new in-memory recipe store.
func NewRecipeStore() *RecipeStore {
	return &RecipeStore{
		data: make(map[string]*domain.Recipe),
	}
}

// Insert adds a new recipe profile. Returns ErrDuplicateKey if recipe_id exists.
func (s *RecipeStore) Insert(_ context.Context, r *domain.Recipe) error {
	if r == nil || r.RecipeID == "" || r.Name == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[r.RecipeID]; exists {
		return storage.ErrDuplicateKey
	}

	rCopy := *r
	s.data[r.RecipeID] = &rCopy
	return nil
}

// GetByID retrieves a recipe by its ID. Returns ErrNotFound if not exists.
func (s *RecipeStore) GetByID(_ context.Context, recipeID string) (*domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, exists := s.data[recipeID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	rCopy := *r
	return &rCopy, nil
}

// GetByCuisine retrieves all recipes of a cuisine, ordered by name ASC.
func (s *RecipeStore) GetByCuisine(_ context.Context, cuisine string) ([]*domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Recipe
	for _, r := range s.data {
		if r.Cuisine == cuisine {
			rCopy := *r
			result = append(result, &rCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].RecipeID < result[j].RecipeID
	})

	return result, nil
}

// ListCuisines retrieves distinct cuisine names, ordered ASC.
func (s *RecipeStore) ListCuisines(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	for _, r := range s.data {
		seen[r.Cuisine] = true
	}

	result := make([]string, 0, len(seen))
	for cuisine := range seen {
		result = append(result, cuisine)
	}
	sort.Strings(result)

	return result, nil
}

// Verify interface compliance at compile time.
var _ storage.RecipeStore = (*RecipeStore)(nil)
