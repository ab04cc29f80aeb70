package memory

import (
	"context"
	"sync"

	"alchm-engine/internal/domain"
	"alchm-engine/internal/storage"
)

// ProfileArchive is an in-memory implementation of storage.ProfileArchive.
// Like its ClickHouse counterpart it is append-only and does not enforce
// uniqueness.
type ProfileArchive struct {
	mu       sync.RWMutex
	recipes  []*domain.Recipe
	cuisines []*domain.CuisineProfile
}

// NewProfileArchive creates a new in-memory profile archive.
func NewProfileArchive() *ProfileArchive {
	return &ProfileArchive{}
}

// InsertRecipes appends computed recipe profiles.
func (a *ProfileArchive) InsertRecipes(_ context.Context, recipes []*domain.Recipe) error {
	for _, r := range recipes {
		if r == nil || r.RecipeID == "" {
			return storage.ErrInvalidInput
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for _, r := range recipes {
		rCopy := *r
		a.recipes = append(a.recipes, &rCopy)
	}
	return nil
}

// InsertCuisines appends computed cuisine profiles.
func (a *ProfileArchive) InsertCuisines(_ context.Context, profiles []*domain.CuisineProfile) error {
	for _, p := range profiles {
		if p == nil || p.Cuisine == "" {
			return storage.ErrInvalidInput
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for _, p := range profiles {
		pCopy := *p
		pCopy.Signatures = append([]domain.SignatureElement(nil), p.Signatures...)
		a.cuisines = append(a.cuisines, &pCopy)
	}
	return nil
}

// RecipeCountByCuisine returns the archived recipe count per cuisine.
func (a *ProfileArchive) RecipeCountByCuisine(_ context.Context) (map[string]int, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	counts := make(map[string]int)
	for _, r := range a.recipes {
		counts[r.Cuisine]++
	}
	return counts, nil
}

// Verify interface compliance at compile time.
var _ storage.ProfileArchive = (*ProfileArchive)(nil)
