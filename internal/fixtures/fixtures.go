// Package fixtures provides a small built-in ingredient catalog and recipe
// set for demo runs and end-to-end tests without a populated database.
package fixtures

import (
	"context"
	"errors"
	"fmt"

	"alchm-engine/internal/domain"
	"alchm-engine/internal/orchestrator"
	"alchm-engine/internal/storage"
)

// Ingredients returns the built-in ingredient catalog.
func Ingredients() []*domain.Ingredient {
	return []*domain.Ingredient{
		{
			IngredientID: "ing-chili", Name: "chili", Category: "spice",
			Elemental:      domain.ElementalProperties{Fire: 0.85, Water: 0.05, Earth: 0.05, Air: 0.05},
			QuantityWeight: 1,
		},
		{
			IngredientID: "ing-ginger", Name: "ginger", Category: "spice",
			Elemental:      domain.ElementalProperties{Fire: 0.6, Water: 0.1, Earth: 0.2, Air: 0.1},
			QuantityWeight: 0.5,
		},
		{
			IngredientID: "ing-turmeric", Name: "turmeric", Category: "spice",
			Elemental:      domain.ElementalProperties{Fire: 0.5, Water: 0.05, Earth: 0.35, Air: 0.1},
			QuantityWeight: 0.25,
		},
		{
			IngredientID: "ing-rice", Name: "rice", Category: "grain",
			Elemental:      domain.ElementalProperties{Fire: 0.1, Water: 0.2, Earth: 0.6, Air: 0.1},
			QuantityWeight: 2,
		},
		{
			IngredientID: "ing-lentils", Name: "lentils", Category: "legume",
			Elemental:      domain.ElementalProperties{Fire: 0.1, Water: 0.15, Earth: 0.65, Air: 0.1},
			QuantityWeight: 1.5,
		},
		{
			IngredientID: "ing-coconut", Name: "coconut milk", Category: "dairy-alternative",
			Elemental:      domain.ElementalProperties{Fire: 0.05, Water: 0.65, Earth: 0.2, Air: 0.1},
			QuantityWeight: 1,
		},
		{
			IngredientID: "ing-fish-sauce", Name: "fish sauce", Category: "condiment",
			Elemental:      domain.ElementalProperties{Fire: 0.1, Water: 0.7, Earth: 0.1, Air: 0.1},
			QuantityWeight: 0.25,
		},
		{
			IngredientID: "ing-basil", Name: "basil", Category: "herb",
			Elemental:      domain.ElementalProperties{Fire: 0.2, Water: 0.15, Earth: 0.15, Air: 0.5},
			QuantityWeight: 0.25,
		},
		{
			IngredientID: "ing-lime", Name: "lime", Category: "fruit",
			Elemental:      domain.ElementalProperties{Fire: 0.15, Water: 0.45, Earth: 0.1, Air: 0.3},
			QuantityWeight: 0.25,
		},
		{
			IngredientID: "ing-tomato", Name: "tomato", Category: "vegetable",
			Elemental:      domain.ElementalProperties{Fire: 0.25, Water: 0.5, Earth: 0.15, Air: 0.1},
			QuantityWeight: 1,
		},
		{
			IngredientID: "ing-olive-oil", Name: "olive oil", Category: "oil",
			Elemental:      domain.ElementalProperties{Fire: 0.35, Water: 0.15, Earth: 0.35, Air: 0.15},
			QuantityWeight: 0.5,
		},
		{
			IngredientID: "ing-pasta", Name: "pasta", Category: "grain",
			Elemental:      domain.ElementalProperties{Fire: 0.15, Water: 0.2, Earth: 0.55, Air: 0.1},
			QuantityWeight: 2,
		},
	}
}

// Recipes returns the built-in recipe set spread across three cuisines.
func Recipes() []orchestrator.RecipeInput {
	return []orchestrator.RecipeInput{
		{Name: "vindaloo", Cuisine: "indian", IngredientIDs: []string{"ing-chili", "ing-ginger", "ing-turmeric", "ing-rice"}},
		{Name: "dal", Cuisine: "indian", IngredientIDs: []string{"ing-lentils", "ing-turmeric", "ing-rice"}},
		{Name: "korma", Cuisine: "indian", IngredientIDs: []string{"ing-coconut", "ing-ginger", "ing-rice"}},
		{Name: "pho", Cuisine: "vietnamese", IngredientIDs: []string{"ing-fish-sauce", "ing-basil", "ing-lime", "ing-rice"}},
		{Name: "green curry", Cuisine: "vietnamese", IngredientIDs: []string{"ing-coconut", "ing-chili", "ing-basil", "ing-rice"}},
		{Name: "arrabbiata", Cuisine: "italian", IngredientIDs: []string{"ing-tomato", "ing-chili", "ing-olive-oil", "ing-pasta"}},
		{Name: "pomodoro", Cuisine: "italian", IngredientIDs: []string{"ing-tomato", "ing-basil", "ing-olive-oil", "ing-pasta"}},
	}
}

// SeedIngredients inserts the catalog into the store, skipping entries
// that already exist.
func SeedIngredients(ctx context.Context, store storage.IngredientStore) error {
	for _, ing := range Ingredients() {
		if err := store.Insert(ctx, ing); err != nil {
			if errors.Is(err, storage.ErrDuplicateKey) {
				continue
			}
			return fmt.Errorf("seed ingredient %s: %w", ing.IngredientID, err)
		}
	}
	return nil
}
