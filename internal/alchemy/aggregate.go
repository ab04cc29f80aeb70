package alchemy

import "alchm-engine/internal/domain"

// Blend weights for combining ingredient and zodiac elemental totals at the
// recipe tier.
const (
	IngredientBlendWeight = 0.7
	ZodiacBlendWeight     = 0.3
)

// AggregateIngredients sums ingredient elemental profiles scaled by their
// quantity weights. The sum is commutative and associative; no
// normalization is applied.
func AggregateIngredients(ingredients []domain.Ingredient) domain.ElementalProperties {
	var total domain.ElementalProperties
	for _, ing := range ingredients {
		total = total.Add(ing.Elemental.Scale(ing.QuantityWeight))
	}
	return total
}

// BlendWithZodiac combines an ingredient aggregate with a zodiac aggregate
// as 0.7*ingredient + 0.3*zodiac. The result stays raw.
func BlendWithZodiac(ingredientTotal, zodiacTotal domain.ElementalProperties) domain.ElementalProperties {
	return ingredientTotal.Scale(IngredientBlendWeight).
		Add(zodiacTotal.Scale(ZodiacBlendWeight))
}

// NormalizedElementalProperties holds display-only proportions summing to
// 1.0. Never feed these back into calculations; all downstream math uses
// raw values.
type NormalizedElementalProperties struct {
	Fire  float64
	Water float64
	Earth float64
	Air   float64
}

// NormalizeForDisplay divides each axis by the raw total. A zero total
// yields the uniform distribution {0.25, 0.25, 0.25, 0.25}.
func NormalizeForDisplay(raw domain.ElementalProperties) NormalizedElementalProperties {
	total := raw.Total()
	if total == 0 {
		return NormalizedElementalProperties{Fire: 0.25, Water: 0.25, Earth: 0.25, Air: 0.25}
	}
	return NormalizedElementalProperties{
		Fire:  raw.Fire / total,
		Water: raw.Water / total,
		Earth: raw.Earth / total,
		Air:   raw.Air / total,
	}
}
