// Package profile builds computed recipe profiles and aggregates them
// hierarchically into cuisine statistics.
package profile

import (
	"errors"
	"fmt"

	"alchm-engine/internal/alchemy"
	"alchm-engine/internal/domain"
	"alchm-engine/internal/idhash"
)

var (
	// ErrNoSnapshot indicates a recipe build without a position snapshot.
	ErrNoSnapshot = errors.New("profile: position snapshot required")

	// ErrNoRecipes indicates a cuisine aggregation over zero recipes.
	ErrNoRecipes = errors.New("profile: no recipes to aggregate")
)

// BuildRecipe computes one recipe profile: ingredient aggregation blended
// with the snapshot's zodiac profile (seasonal and lunar modifiers
// applied), ESMS derived from the same snapshot, and thermodynamics from
// the pair. The recipe ID is deterministic over name, cuisine, snapshot
// day and the ingredient set regardless of order.
func BuildRecipe(
	name, cuisine string,
	ingredients []domain.Ingredient,
	snapshot *domain.PositionSnapshot,
	season domain.Season,
	phase domain.LunarPhase,
) (domain.Recipe, error) {
	if snapshot == nil {
		return domain.Recipe{}, ErrNoSnapshot
	}
	if err := snapshot.Validate(); err != nil {
		return domain.Recipe{}, fmt.Errorf("profile: %w", err)
	}

	zodiac := alchemy.BaseElemental(snapshot)
	zodiac = alchemy.ApplySeasonal(zodiac, season)
	zodiac = alchemy.ApplyLunarPhase(zodiac, phase)

	ingredientTotal := alchemy.AggregateIngredients(ingredients)
	blended := alchemy.BlendWithZodiac(ingredientTotal, zodiac)

	esms := alchemy.DeriveESMS(snapshot)
	thermo := alchemy.ComputeThermodynamics(esms, blended)

	ids := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		id := ing.IngredientID
		if id == "" {
			id = idhash.ComputeIngredientID(ing.Name, ing.Category)
		}
		ids = append(ids, id)
	}

	return domain.Recipe{
		RecipeID:      idhash.ComputeRecipeID(name, cuisine, snapshot.DateKey, ids),
		Name:          name,
		Cuisine:       cuisine,
		Elemental:     blended,
		Alchemical:    esms,
		Thermodynamic: thermo,
		SnapshotDate:  snapshot.DateKey,
		Season:        season,
		LunarPhase:    phase,
	}, nil
}
