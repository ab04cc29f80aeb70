package memory

import (
	"context"
	"sort"
	"sync"

	"alchm-engine/internal/domain"
	"alchm-engine/internal/storage"
)

// IngredientStore is an in-memory implementation of storage.IngredientStore.
type IngredientStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Ingredient // keyed by ingredient_id
}

// NewIngredientStore creates a new in-memory ingredient store.
func NewIngredientStore() *IngredientStore {
	return &IngredientStore{
		data: make(map[string]*domain.Ingredient),
	}
}

// Insert adds a new ingredient. Returns ErrDuplicateKey if ingredient_id exists.
func (s *IngredientStore) Insert(_ context.Context, ing *domain.Ingredient) error {
	if ing == nil || ing.IngredientID == "" || ing.Name == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[ing.IngredientID]; exists {
		return storage.ErrDuplicateKey
	}

	// Store a copy to prevent external mutation
	ingCopy := *ing
	s.data[ing.IngredientID] = &ingCopy
	return nil
}

// GetByID retrieves an ingredient by its ID. Returns ErrNotFound if not exists.
func (s *IngredientStore) GetByID(_ context.Context, ingredientID string) (*domain.Ingredient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ing, exists := s.data[ingredientID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	ingCopy := *ing
	return &ingCopy, nil
}

// GetByCategory retrieves all ingredients of a category, ordered by name ASC.
func (s *IngredientStore) GetByCategory(_ context.Context, category string) ([]*domain.Ingredient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Ingredient
	for _, ing := range s.data {
		if ing.Category == category {
			ingCopy := *ing
			result = append(result, &ingCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result, nil
}

// List retrieves all ingredients, ordered by name ASC.
func (s *IngredientStore) List(_ context.Context) ([]*domain.Ingredient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Ingredient, 0, len(s.data))
	for _, ing := range s.data {
		ingCopy := *ing
		result = append(result, &ingCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result, nil
}

// Verify interface compliance at compile time.
var _ storage.IngredientStore = (*IngredientStore)(nil)
