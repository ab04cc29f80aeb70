package alchemy

import (
	"math"
	"testing"

	"alchm-engine/internal/domain"
)

func TestAggregateIngredients_RawSum(t *testing.T) {
	ingredients := []domain.Ingredient{
		{
			Name:           "chili",
			Elemental:      domain.ElementalProperties{Fire: 2.5},
			QuantityWeight: 1.0,
		},
		{
			Name:           "ginger",
			Elemental:      domain.ElementalProperties{Fire: 0.3},
			QuantityWeight: 1.0,
		},
	}

	total := AggregateIngredients(ingredients)
	if math.Abs(total.Fire-2.8) > 1e-12 {
		t.Errorf("expected raw Fire 2.8, got %v", total.Fire)
	}
}

func TestAggregateIngredients_QuantityWeights(t *testing.T) {
	ingredients := []domain.Ingredient{
		{Elemental: domain.ElementalProperties{Water: 1.0, Earth: 0.5}, QuantityWeight: 2.0},
		{Elemental: domain.ElementalProperties{Water: 0.5}, QuantityWeight: 0.5},
	}

	total := AggregateIngredients(ingredients)
	if math.Abs(total.Water-2.25) > 1e-12 {
		t.Errorf("expected Water 2.25, got %v", total.Water)
	}
	if math.Abs(total.Earth-1.0) > 1e-12 {
		t.Errorf("expected Earth 1.0, got %v", total.Earth)
	}
}

func TestAggregateIngredients_OrderIndependent(t *testing.T) {
	a := domain.Ingredient{Elemental: domain.ElementalProperties{Fire: 1.1, Air: 0.2}, QuantityWeight: 1.5}
	b := domain.Ingredient{Elemental: domain.ElementalProperties{Water: 0.7}, QuantityWeight: 0.3}
	c := domain.Ingredient{Elemental: domain.ElementalProperties{Earth: 2.0, Fire: 0.1}, QuantityWeight: 1.0}

	forward := AggregateIngredients([]domain.Ingredient{a, b, c})
	reversed := AggregateIngredients([]domain.Ingredient{c, b, a})

	for _, e := range domain.Elements {
		if math.Abs(forward.Get(e)-reversed.Get(e)) > 1e-9 {
			t.Errorf("%s differs by order: %v vs %v", e, forward.Get(e), reversed.Get(e))
		}
	}
}

func TestAggregateIngredients_Empty(t *testing.T) {
	if total := AggregateIngredients(nil); total.Total() != 0 {
		t.Errorf("expected zero profile, got %+v", total)
	}
}

func TestBlendWithZodiac(t *testing.T) {
	ingredient := domain.ElementalProperties{Fire: 1.0, Water: 2.0}
	zodiac := domain.ElementalProperties{Fire: 3.0, Air: 1.0}

	blended := BlendWithZodiac(ingredient, zodiac)
	if math.Abs(blended.Fire-(0.7*1.0+0.3*3.0)) > 1e-12 {
		t.Errorf("unexpected Fire: %v", blended.Fire)
	}
	if math.Abs(blended.Water-0.7*2.0) > 1e-12 {
		t.Errorf("unexpected Water: %v", blended.Water)
	}
	if math.Abs(blended.Air-0.3*1.0) > 1e-12 {
		t.Errorf("unexpected Air: %v", blended.Air)
	}
}

func TestNormalizeForDisplay(t *testing.T) {
	raw := domain.ElementalProperties{Fire: 3, Water: 1, Earth: 4, Air: 2}
	norm := NormalizeForDisplay(raw)

	sum := norm.Fire + norm.Water + norm.Earth + norm.Air
	if math.Abs(sum-1.0) > 1e-6 {
		t.Errorf("normalized sum must be 1.0, got %v", sum)
	}
	if math.Abs(norm.Fire-0.3) > 1e-12 {
		t.Errorf("expected Fire 0.3, got %v", norm.Fire)
	}
}

func TestNormalizeForDisplay_ZeroTotal(t *testing.T) {
	norm := NormalizeForDisplay(domain.ElementalProperties{})
	if norm.Fire != 0.25 || norm.Water != 0.25 || norm.Earth != 0.25 || norm.Air != 0.25 {
		t.Errorf("expected uniform distribution, got %+v", norm)
	}
}
