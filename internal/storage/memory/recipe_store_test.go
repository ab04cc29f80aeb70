package memory

import (
	"context"
	"errors"
	"testing"

	"alchm-engine/internal/domain"
	"alchm-engine/internal/storage"
)

func testRecipe(id, name, cuisine string) *domain.Recipe {
	return &domain.Recipe{
		RecipeID:     id,
		Name:         name,
		Cuisine:      cuisine,
		Elemental:    domain.ElementalProperties{Fire: 2.0, Water: 1.0},
		Alchemical:   domain.AlchemicalProperties{Spirit: 4, Essence: 7, Matter: 6, Substance: 2},
		SnapshotDate: "2025-06-01",
		Season:       domain.SeasonSummer,
		LunarPhase:   domain.PhaseFullMoon,
	}
}

func TestRecipeStore_InsertAndGet(t *testing.T) {
	store := NewRecipeStore()
	ctx := context.Background()

	if err := store.Insert(ctx, testRecipe("r-1", "lamb curry", "indian")); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := store.GetByID(ctx, "r-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Cuisine != "indian" {
		t.Errorf("expected cuisine indian, got %s", got.Cuisine)
	}

	if err := store.Insert(ctx, testRecipe("r-1", "dup", "indian")); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
	if _, err := store.GetByID(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRecipeStore_GetByCuisine(t *testing.T) {
	store := NewRecipeStore()
	ctx := context.Background()

	for _, r := range []*domain.Recipe{
		testRecipe("r-1", "vindaloo", "indian"),
		testRecipe("r-2", "dal", "indian"),
		testRecipe("r-3", "pho", "vietnamese"),
	} {
		if err := store.Insert(ctx, r); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	indian, err := store.GetByCuisine(ctx, "indian")
	if err != nil {
		t.Fatalf("GetByCuisine: %v", err)
	}
	if len(indian) != 2 {
		t.Fatalf("expected 2 recipes, got %d", len(indian))
	}
	if indian[0].Name != "dal" || indian[1].Name != "vindaloo" {
		t.Errorf("expected name-sorted order, got %s, %s", indian[0].Name, indian[1].Name)
	}

	none, err := store.GetByCuisine(ctx, "unknown")
	if err != nil {
		t.Fatalf("GetByCuisine: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no recipes, got %d", len(none))
	}
}

func TestRecipeStore_ListCuisines(t *testing.T) {
	store := NewRecipeStore()
	ctx := context.Background()

	for _, r := range []*domain.Recipe{
		testRecipe("r-1", "vindaloo", "indian"),
		testRecipe("r-2", "dal", "indian"),
		testRecipe("r-3", "pho", "vietnamese"),
	} {
		if err := store.Insert(ctx, r); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	cuisines, err := store.ListCuisines(ctx)
	if err != nil {
		t.Fatalf("ListCuisines: %v", err)
	}
	if len(cuisines) != 2 || cuisines[0] != "indian" || cuisines[1] != "vietnamese" {
		t.Errorf("expected [indian vietnamese], got %v", cuisines)
	}
}
